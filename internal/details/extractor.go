package details

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// DefaultFields lists the translatable text columns of the stock tables.
func DefaultFields() map[string][]string {
	return map[string][]string{
		domain.TablePages:         {"title", "subtitle", "nav_title", "abstract", "description"},
		"tt_content":              {"header", "subheader", "bodytext"},
		domain.TableFileReference: {"title", "alternative", "description"},
		domain.TableFileMetadata:  {"title", "alternative", "description"},
	}
}

// FieldListExtractor builds translation details from a fixed list of text
// columns per table. Empty columns are skipped.
type FieldListExtractor struct {
	fields map[string][]string
}

// Option configures the extractor.
type Option func(*FieldListExtractor)

// WithTableFields replaces the column list of one table.
func WithTableFields(table string, fields ...string) Option {
	return func(e *FieldListExtractor) {
		e.fields[table] = append([]string(nil), fields...)
	}
}

func NewFieldListExtractor(opts ...Option) *FieldListExtractor {
	extractor := &FieldListExtractor{fields: maps.Clone(DefaultFields())}
	for _, opt := range opts {
		if opt != nil {
			opt(extractor)
		}
	}
	return extractor
}

// Detail implements interfaces.DetailExtractor. Rows shown in all languages
// only yield fields when the job includes them with the default language.
// The diff payload, shaped table -> uid -> field -> previous text, fills
// PreviousDefault where the text changed since the last export.
func (e *FieldListExtractor) Detail(ctx context.Context, req interfaces.DetailRequest) (*domain.TranslationDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Row == nil {
		return nil, fmt.Errorf("details: %s row is nil", req.Table)
	}
	detail := &domain.TranslationDetail{Table: req.Table, UID: req.Row.UID}

	if req.Row.IntOr(domain.FieldLanguage, domain.DefaultLanguageID) == domain.AllLanguagesID && !req.IncludeFCEWithDefaultLanguage {
		return detail, nil
	}

	texts := req.Previous
	if texts == nil && len(req.Diff) > 0 {
		decoded, err := domain.DecodePreviousTexts(req.Diff)
		if err != nil {
			return nil, fmt.Errorf("details: %w", err)
		}
		texts = decoded
	}
	previous := texts.For(req.Table, req.Row.UID)

	for _, field := range e.fields[req.Table] {
		value := strings.TrimSpace(req.Row.String(field))
		if value == "" {
			continue
		}
		entry := domain.FieldEntry{
			Key:          req.Table + ":" + strconv.FormatInt(req.Row.UID, 10) + ":" + field,
			Field:        field,
			DefaultValue: value,
		}
		if old, ok := previous[field]; ok && old != value {
			entry.PreviousDefault = old
		}
		detail.Fields = append(detail.Fields, entry)
	}
	return detail, nil
}

var _ interfaces.DetailExtractor = (*FieldListExtractor)(nil)
