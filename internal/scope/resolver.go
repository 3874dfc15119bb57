package scope

import (
	"context"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/logging"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// Doktypes is the set of page content-type codes that are never translated.
type Doktypes map[string]struct{}

func NewDoktypes(codes ...string) Doktypes {
	set := make(Doktypes, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}

// Allowed reports whether doktype may be translated.
func (d Doktypes) Allowed(doktype string) bool {
	_, disallowed := d[doktype]
	return !disallowed
}

// Resolver decides per tree page whether the page is in scope. Pages found
// out of scope are recorded in the exclude set.
type Resolver struct {
	sets     *Sets
	filter   *RestrictionFilter
	doktypes Doktypes
	logger   interfaces.Logger
}

func NewResolver(sets *Sets, filter *RestrictionFilter, doktypes Doktypes, logger interfaces.Logger) *Resolver {
	return &Resolver{
		sets:     sets,
		filter:   filter,
		doktypes: doktypes,
		logger:   logging.Ensure(logger),
	}
}

// InScope resolves node and reports whether it gets a bucket.
func (r *Resolver) InScope(ctx context.Context, node domain.PageNode) (bool, error) {
	ref := node.Ref()
	switch node.Mode {
	case domain.ScopeDefault:
		if inherited := nearestPropagation(node); inherited == domain.PropagateExclude {
			r.exclude(ref, "inherited_exclude")
		}
	case domain.ScopeExclude:
		r.exclude(ref, "own_exclude")
	}

	restricted, err := r.filter.PageRestricted(ctx, node)
	if err != nil {
		return false, err
	}
	if restricted {
		r.exclude(ref, "language_restricted")
	}

	if r.sets.Exclude.Has(ref) {
		return false, nil
	}
	if !r.doktypes.Allowed(node.Doktype) {
		r.logger.Debug("scope.page.doktype_disallowed", "page_id", node.ID, "doktype", node.Doktype)
		return false, nil
	}
	return true, nil
}

func (r *Resolver) exclude(ref domain.RecordRef, reason string) {
	if r.sets.Exclude.Add(ref) {
		r.logger.Debug("scope.page.excluded", "page_id", ref.UID, "reason", reason)
	}
}

// nearestPropagation walks the rootline from the page upward and returns the
// first non-default propagation mode, or PropagateDefault.
func nearestPropagation(node domain.PageNode) domain.PropagationMode {
	rootline := node.Rootline
	if len(rootline) == 0 || rootline[0].ID != node.ID {
		self := domain.RootlineEntry{ID: node.ID, Mode: node.Mode, Propagation: node.Propagation}
		rootline = append([]domain.RootlineEntry{self}, rootline...)
	}
	for _, entry := range rootline {
		if entry.Propagation != domain.PropagateDefault {
			return entry.Propagation
		}
	}
	return domain.PropagateDefault
}
