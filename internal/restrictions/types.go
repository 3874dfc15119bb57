package restrictions

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Rule marks one field of one table as not translatable into a language.
type Rule struct {
	bun.BaseModel `bun:"table:l10n_language_restrictions,alias:lr"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	LanguageID int       `bun:"language_id,notnull" json:"language_id"`
	TableName  string    `bun:"table_name,notnull" json:"table_name"`
	FieldName  string    `bun:"field_name,notnull" json:"field_name"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

type ruleKey struct {
	language int
	table    string
	field    string
}

func keyOf(languageID int, table, field string) ruleKey {
	return ruleKey{language: languageID, table: table, field: field}
}
