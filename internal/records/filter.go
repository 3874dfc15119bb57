package records

import (
	"slices"
	"sort"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/runtimeconfig"
)

// sourceLanguages are the language ids of records that act as translation
// sources.
var sourceLanguages = []int64{domain.DefaultLanguageID, domain.AllLanguagesID}

func isDeleted(opts runtimeconfig.TableOptions, row *domain.Row) bool {
	if opts.DeleteField == "" {
		return false
	}
	return row.NonEmpty(opts.DeleteField)
}

func isSourceLanguage(opts runtimeconfig.TableOptions, row *domain.Row) bool {
	if opts.LanguageField == "" {
		return true
	}
	return slices.Contains(sourceLanguages, row.IntOr(opts.LanguageField, domain.DefaultLanguageID))
}

func isDefaultLanguage(opts runtimeconfig.TableOptions, row *domain.Row) bool {
	if opts.LanguageField == "" {
		return true
	}
	return row.IntOr(opts.LanguageField, domain.DefaultLanguageID) == domain.DefaultLanguageID
}

func sortByUID(rows []*domain.Row) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].UID < rows[j].UID })
}

func sortByField(rows []*domain.Row, field string) {
	sort.SliceStable(rows, func(i, j int) bool {
		left, right := rows[i].IntOr(field, 0), rows[j].IntOr(field, 0)
		if left != right {
			return left < right
		}
		return rows[i].UID < rows[j].UID
	})
}
