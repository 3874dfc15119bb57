package scope

import "github.com/goliatone/go-l10nmgr/internal/domain"

// RefSet is a set of record refs that remembers first-insertion order.
type RefSet struct {
	order []domain.RecordRef
	index map[domain.RecordRef]struct{}
}

func NewRefSet(refs ...domain.RecordRef) *RefSet {
	set := &RefSet{index: make(map[domain.RecordRef]struct{}, len(refs))}
	for _, ref := range refs {
		set.Add(ref)
	}
	return set
}

// Add inserts ref and reports whether it was new.
func (s *RefSet) Add(ref domain.RecordRef) bool {
	if _, ok := s.index[ref]; ok {
		return false
	}
	s.index[ref] = struct{}{}
	s.order = append(s.order, ref)
	return true
}

func (s *RefSet) Has(ref domain.RecordRef) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[ref]
	return ok
}

func (s *RefSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Refs returns the members in insertion order.
func (s *RefSet) Refs() []domain.RecordRef {
	if s == nil {
		return nil
	}
	return append([]domain.RecordRef(nil), s.order...)
}

// Reset replaces the members with refs.
func (s *RefSet) Reset(refs ...domain.RecordRef) {
	s.order = s.order[:0]
	s.index = make(map[domain.RecordRef]struct{}, len(refs))
	for _, ref := range refs {
		s.Add(ref)
	}
}

// Sets holds the working membership sets of one engine run.
type Sets struct {
	Exclude       *RefSet
	Include       *RefSet
	UIDConstraint *RefSet
}

// NewSets seeds the exclude and uid-constraint sets from the job. The include
// set starts empty; the inclusion expander fills it after the walk.
func NewSets(exclude, uidConstraint []domain.RecordRef) *Sets {
	return &Sets{
		Exclude:       NewRefSet(exclude...),
		Include:       NewRefSet(),
		UIDConstraint: NewRefSet(uidConstraint...),
	}
}

// Accepts reports whether a non-page record passes the exclude and
// uid-constraint gates. The constraint set overrides exclusion.
func (s *Sets) Accepts(ref domain.RecordRef) bool {
	return s.UIDConstraint.Has(ref) || !s.Exclude.Has(ref)
}
