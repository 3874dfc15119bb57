package accumulator

import "github.com/goliatone/go-l10nmgr/internal/domain"

// Counters are the running totals of one computation.
type Counters struct {
	FieldCount int `json:"field_count"`
	WordCount  int `json:"word_count"`
}

// Add counts the fields and default-value words of detail.
func (c *Counters) Add(detail *domain.TranslationDetail) {
	if detail == nil {
		return
	}
	c.FieldCount += len(detail.Fields)
	c.WordCount += detail.WordCount()
}
