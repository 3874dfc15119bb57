package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// PreviousTexts is a decoded field diff: table -> uid -> field -> the
// default language text at the last export.
type PreviousTexts map[string]map[string]map[string]string

// DecodePreviousTexts decodes one language's diff payload. An empty payload
// yields nil.
func DecodePreviousTexts(raw json.RawMessage) (PreviousTexts, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var texts PreviousTexts
	if err := json.Unmarshal(raw, &texts); err != nil {
		return nil, fmt.Errorf("domain: decode diff payload: %w", err)
	}
	return texts, nil
}

// For returns the previous texts of one record, nil when none were stored.
func (p PreviousTexts) For(table string, uid int64) map[string]string {
	return p[table][strconv.FormatInt(uid, 10)]
}
