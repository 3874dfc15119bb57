package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Table names the engine treats specially.
const (
	TablePages         = "pages"
	TableFileReference = "sys_file_reference"
	TableFileMetadata  = "sys_file_metadata"
)

// Column names read by the engine and the default collaborators.
const (
	FieldUID             = "uid"
	FieldPID             = "pid"
	FieldTitle           = "title"
	FieldDoktype         = "doktype"
	FieldScopeMode       = "l10nmgr_configuration"
	FieldPropagationMode = "l10nmgr_configuration_next_level"
	FieldRestriction     = "l10nmgr_language_restriction"
	FieldFileLocal       = "uid_local"
	FieldFile            = "file"
	FieldLanguage        = "sys_language_uid"
)

const (
	// FloatingBucketID keys records that are not anchored to a tree page.
	FloatingBucketID int64 = -1
	// DefaultLanguageID is the source language of every record.
	DefaultLanguageID = 0
	// AllLanguagesID marks records shown in every language.
	AllLanguagesID = -1
)

const recordRefSeparator = ":"

// ScopeMode is a page's own translation-job override.
type ScopeMode int

const (
	ScopeDefault ScopeMode = 0
	ScopeNone    ScopeMode = 1
	ScopeExclude ScopeMode = 2
	ScopeInclude ScopeMode = 3
)

func (m ScopeMode) String() string {
	switch m {
	case ScopeDefault:
		return "default"
	case ScopeNone:
		return "none"
	case ScopeExclude:
		return "exclude"
	case ScopeInclude:
		return "include"
	default:
		return "unknown(" + strconv.Itoa(int(m)) + ")"
	}
}

// PropagationMode is the policy a page hands down to descendants that keep
// their own mode at ScopeDefault.
type PropagationMode int

const (
	PropagateDefault PropagationMode = 0
	PropagateNone    PropagationMode = 1
	PropagateExclude PropagationMode = 2
	PropagateInclude PropagationMode = 3
)

func (m PropagationMode) String() string {
	return ScopeMode(m).String()
}

// RecordRef identifies a record by table and uid.
type RecordRef struct {
	Table string
	UID   int64
}

// Ref builds a RecordRef.
func Ref(table string, uid int64) RecordRef {
	return RecordRef{Table: table, UID: uid}
}

// PageRef builds the RecordRef of a page.
func PageRef(id int64) RecordRef {
	return RecordRef{Table: TablePages, UID: id}
}

// String renders the ref as "table:uid".
func (r RecordRef) String() string {
	return r.Table + recordRefSeparator + strconv.FormatInt(r.UID, 10)
}

// IsZero reports whether the ref is unset.
func (r RecordRef) IsZero() bool {
	return r.Table == "" && r.UID == 0
}

// Row is one record: its table, identity and raw column values.
type Row struct {
	Table  string
	UID    int64
	PID    int64
	Fields map[string]any
}

// NewRow builds a row and lifts uid/pid out of the field map when present.
func NewRow(table string, fields map[string]any) *Row {
	row := &Row{Table: table, Fields: fields}
	if row.Fields == nil {
		row.Fields = map[string]any{}
	}
	if uid, ok := row.Int(FieldUID); ok {
		row.UID = uid
	}
	if pid, ok := row.Int(FieldPID); ok {
		row.PID = pid
	}
	return row
}

// Ref returns the row's RecordRef.
func (r *Row) Ref() RecordRef {
	if r == nil {
		return RecordRef{}
	}
	return RecordRef{Table: r.Table, UID: r.UID}
}

// Value returns a raw column value.
func (r *Row) Value(field string) (any, bool) {
	if r == nil || r.Fields == nil {
		return nil, false
	}
	value, ok := r.Fields[field]
	return value, ok
}

// Int converts a column value to int64. Drivers return ints, floats, strings
// or byte slices depending on the dialect, so all of them are accepted.
func (r *Row) Int(field string) (int64, bool) {
	value, ok := r.Value(field)
	if !ok || value == nil {
		return 0, false
	}
	return toInt64(value)
}

// IntOr returns the integer value of field or fallback.
func (r *Row) IntOr(field string, fallback int64) int64 {
	if value, ok := r.Int(field); ok {
		return value
	}
	return fallback
}

// String returns the textual value of field ("" when missing or nil).
func (r *Row) String(field string) string {
	value, ok := r.Value(field)
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return typed
	case []byte:
		return string(typed)
	default:
		return fmt.Sprint(typed)
	}
}

// NonEmpty mirrors a loose emptiness check: nil, "", "0", 0 and false are empty.
func (r *Row) NonEmpty(field string) bool {
	value, ok := r.Value(field)
	if !ok || value == nil {
		return false
	}
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		trimmed := strings.TrimSpace(typed)
		return trimmed != "" && trimmed != "0"
	case []byte:
		trimmed := strings.TrimSpace(string(typed))
		return trimmed != "" && trimmed != "0"
	}
	if n, ok := toInt64(value); ok {
		return n != 0
	}
	return true
}

// ScopeMode reads the page's own mode column.
func (r *Row) ScopeMode() ScopeMode {
	return ScopeMode(r.IntOr(FieldScopeMode, int64(ScopeDefault)))
}

// PropagationMode reads the page's descendant policy column.
func (r *Row) PropagationMode() PropagationMode {
	return PropagationMode(r.IntOr(FieldPropagationMode, int64(PropagateDefault)))
}

// Clone returns a shallow copy with an independent field map.
func (r *Row) Clone() *Row {
	if r == nil {
		return nil
	}
	fields := make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return &Row{Table: r.Table, UID: r.UID, PID: r.PID, Fields: fields}
}

// RootlineEntry is one ancestor in a page's rootline.
type RootlineEntry struct {
	ID          int64
	Mode        ScopeMode
	Propagation PropagationMode
}

// PageNode is one node of the page tree handed to the engine.
type PageNode struct {
	ID          int64
	Title       string
	Icon        string
	Doktype     string
	Mode        ScopeMode
	Propagation PropagationMode
	Restriction string
	// Rootline runs from the page (or its parent) up to the root.
	Rootline []RootlineEntry
}

// Ref returns the page's RecordRef.
func (n PageNode) Ref() RecordRef {
	return PageRef(n.ID)
}

// FieldEntry is one translatable field of a record.
type FieldEntry struct {
	Key             string `json:"key"`
	Field           string `json:"field"`
	DefaultValue    string `json:"default_value"`
	PreviewValue    string `json:"preview_value,omitempty"`
	PreviousDefault string `json:"previous_default,omitempty"`
	Translation     string `json:"translation,omitempty"`
}

// TranslationDetail is the per-record extraction result.
type TranslationDetail struct {
	Table  string       `json:"table"`
	UID    int64        `json:"uid"`
	Fields []FieldEntry `json:"fields"`
}

// WordCount counts whitespace-delimited words across default values.
func (d *TranslationDetail) WordCount() int {
	if d == nil {
		return 0
	}
	total := 0
	for _, field := range d.Fields {
		total += len(strings.Fields(field.DefaultValue))
	}
	return total
}

// toInt64 converts a column value to int64. Values that do not fit exactly,
// such as fractional floats or unsigned values above MaxInt64, are rejected.
func toInt64(value any) (int64, bool) {
	switch typed := value.(type) {
	case int:
		return int64(typed), true
	case int8:
		return int64(typed), true
	case int16:
		return int64(typed), true
	case int32:
		return int64(typed), true
	case int64:
		return typed, true
	case uint:
		return fromUint64(uint64(typed))
	case uint8:
		return int64(typed), true
	case uint16:
		return int64(typed), true
	case uint32:
		return int64(typed), true
	case uint64:
		return fromUint64(typed)
	case float32:
		return fromFloat64(float64(typed))
	case float64:
		return fromFloat64(typed)
	case bool:
		if typed {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		return n, err == nil
	case []byte:
		n, err := strconv.ParseInt(strings.TrimSpace(string(typed)), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func fromUint64(value uint64) (int64, bool) {
	if value > math.MaxInt64 {
		return 0, false
	}
	return int64(value), true
}

// fromFloat64 accepts whole numbers in [MinInt64, MaxInt64]. 2^63 itself is
// exactly representable as a float64 and out of range.
func fromFloat64(value float64) (int64, bool) {
	if math.Trunc(value) != value || value < math.MinInt64 || value >= math.MaxInt64 {
		return 0, false
	}
	return int64(value), true
}
