package scope

import (
	"context"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/logging"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// DefaultMaxDepth caps include-descendants expansion.
const DefaultMaxDepth = 100

// Expander computes the floating include set after the tree walk.
type Expander struct {
	store    interfaces.RecordStore
	sets     *Sets
	doktypes Doktypes
	maxDepth int
	logger   interfaces.Logger
}

func NewExpander(store interfaces.RecordStore, sets *Sets, doktypes Doktypes, maxDepth int, logger interfaces.Logger) *Expander {
	if maxDepth <= 0 || maxDepth > DefaultMaxDepth {
		maxDepth = DefaultMaxDepth
	}
	return &Expander{
		store:    store,
		sets:     sets,
		doktypes: doktypes,
		maxDepth: maxDepth,
		logger:   logging.Ensure(logger),
	}
}

// Expand rebuilds the include set from include, resets the exclude set to the
// job's own exclude list, then adds pages marked Include and the descendants
// of pages that propagate Include.
func (e *Expander) Expand(ctx context.Context, include, exclude []domain.RecordRef) error {
	e.sets.Include.Reset(include...)
	e.sets.Exclude.Reset(exclude...)

	explicit, err := e.store.PagesByOwnMode(ctx, domain.ScopeInclude)
	if err != nil {
		return domain.WrapCollaborator(domain.CollaboratorStore, "pages_by_own_mode", domain.RecordRef{}, err)
	}
	for _, page := range explicit {
		ref := domain.PageRef(page.UID)
		if e.sets.Exclude.Has(ref) || !e.doktypes.Allowed(page.String(domain.FieldDoktype)) {
			continue
		}
		e.sets.Include.Add(ref)
	}

	parents, err := e.store.PagesByPropagationMode(ctx, domain.PropagateInclude)
	if err != nil {
		return domain.WrapCollaborator(domain.CollaboratorStore, "pages_by_propagation_mode", domain.RecordRef{}, err)
	}
	for _, parent := range parents {
		if err := e.expandSubtree(ctx, parent.UID); err != nil {
			return err
		}
	}
	return nil
}

type expansionFrame struct {
	children []*domain.Row
	next     int
	depth    int
}

// expandSubtree visits the descendants of root depth-first. Children of a
// page popped at depth d are fetched only when d+1 is below the depth cap,
// which keeps descendants at levels 1 through maxDepth-1.
func (e *Expander) expandSubtree(ctx context.Context, root int64) error {
	var stack []expansionFrame

	descend := func(pageID int64, depth int) error {
		depth++
		if depth >= e.maxDepth {
			e.logger.Debug("scope.expand.depth_limit", "page_id", pageID, "depth", depth)
			return nil
		}
		if pageID <= 0 {
			return nil
		}
		children, err := e.store.ChildrenOf(ctx, pageID)
		if err != nil {
			return domain.WrapCollaborator(domain.CollaboratorStore, "children_of", domain.PageRef(pageID), err)
		}
		if len(children) > 0 {
			stack = append(stack, expansionFrame{children: children, depth: depth})
		}
		return nil
	}

	if err := descend(root, 0); err != nil {
		return err
	}
	for len(stack) > 0 {
		top := len(stack) - 1
		frame := &stack[top]
		if frame.next >= len(frame.children) {
			stack = stack[:top]
			continue
		}
		child := frame.children[frame.next]
		frame.next++
		depth := frame.depth

		if child.ScopeMode() == domain.ScopeDefault {
			e.sets.Include.Add(domain.PageRef(child.UID))
		}
		switch child.PropagationMode() {
		case domain.PropagateDefault, domain.PropagateInclude:
			if err := descend(child.UID, depth); err != nil {
				return err
			}
		}
	}
	return nil
}
