package scope

import (
	"context"
	"strings"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// RestrictionFilter decides whether a record carrying a language restriction
// payload is barred from the target language. Service answers are memoized
// per table for the lifetime of the filter.
type RestrictionFilter struct {
	service  interfaces.RestrictionService
	language int
	memo     map[string]bool
}

func NewRestrictionFilter(service interfaces.RestrictionService, targetLanguage int) *RestrictionFilter {
	return &RestrictionFilter{
		service:  service,
		language: targetLanguage,
		memo:     make(map[string]bool),
	}
}

// RowRestricted checks a record row.
func (f *RestrictionFilter) RowRestricted(ctx context.Context, row *domain.Row) (bool, error) {
	if row == nil || !row.NonEmpty(domain.FieldRestriction) {
		return false, nil
	}
	return f.restricted(ctx, row.Table, row.Ref())
}

// PageRestricted checks a tree node.
func (f *RestrictionFilter) PageRestricted(ctx context.Context, node domain.PageNode) (bool, error) {
	payload := strings.TrimSpace(node.Restriction)
	if payload == "" || payload == "0" {
		return false, nil
	}
	return f.restricted(ctx, domain.TablePages, node.Ref())
}

func (f *RestrictionFilter) restricted(ctx context.Context, table string, ref domain.RecordRef) (bool, error) {
	if f == nil || f.service == nil {
		return false, nil
	}
	if answer, ok := f.memo[table]; ok {
		return answer, nil
	}
	answer, err := f.service.IsRestricted(ctx, f.language, table, domain.FieldRestriction)
	if err != nil {
		return false, domain.WrapCollaborator(domain.CollaboratorRestrictions, "is_restricted", ref, err)
	}
	f.memo[table] = answer
	return answer, nil
}
