package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidTableName reports whether name is usable as a table identifier.
func ValidTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}

// ParseRecordRef parses "table:uid".
func ParseRecordRef(value string) (RecordRef, error) {
	trimmed := strings.TrimSpace(value)
	table, rawUID, ok := strings.Cut(trimmed, recordRefSeparator)
	if !ok {
		return RecordRef{}, fmt.Errorf("%w: %q is not table:uid", ErrInvalidRecordRef, value)
	}
	table = strings.TrimSpace(table)
	if !ValidTableName(table) {
		return RecordRef{}, fmt.Errorf("%w: invalid table in %q", ErrInvalidRecordRef, value)
	}
	uid, err := strconv.ParseInt(strings.TrimSpace(rawUID), 10, 64)
	if err != nil || uid <= 0 {
		return RecordRef{}, fmt.Errorf("%w: invalid uid in %q", ErrInvalidRecordRef, value)
	}
	return RecordRef{Table: table, UID: uid}, nil
}

// ParseRecordRefList parses a comma separated list of refs. Blank entries are
// skipped; duplicates keep their first position.
func ParseRecordRefList(raw string) ([]RecordRef, error) {
	parts := SplitList(raw)
	if len(parts) == 0 {
		return nil, nil
	}
	seen := make(map[RecordRef]struct{}, len(parts))
	out := make([]RecordRef, 0, len(parts))
	for _, part := range parts {
		ref, err := ParseRecordRef(part)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out, nil
}

// FormatRecordRefList renders refs as a comma separated list.
func FormatRecordRefList(refs []RecordRef) string {
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		parts = append(parts, ref.String())
	}
	return strings.Join(parts, ",")
}

// SplitList trims and splits a comma separated list, dropping blanks.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	fields := strings.Split(raw, ",")
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
