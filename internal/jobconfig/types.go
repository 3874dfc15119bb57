package jobconfig

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-l10nmgr/internal/domain"
)

// Configuration is one localization job configuration as stored. List
// fields keep their raw comma separated form; Compile turns them into refs.
type Configuration struct {
	bun.BaseModel `bun:"table:l10n_configurations,alias:lc"`

	ID                            uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Key                           string    `bun:"key,notnull,unique" json:"key"`
	Title                         string    `bun:"title" json:"title"`
	Description                   string    `bun:"description" json:"description,omitempty"`
	DescriptionHTML               string    `bun:"-" json:"description_html,omitempty"`
	TableList                     string    `bun:"tablelist,notnull" json:"tablelist"`
	Exclude                       string    `bun:"exclude" json:"exclude,omitempty"`
	Include                       string    `bun:"include" json:"include,omitempty"`
	TableUIDConstraint            string    `bun:"table_uid_constraint" json:"table_uid_constraint,omitempty"`
	IncludeFCEWithDefaultLanguage bool      `bun:"incfcewithdefaultlanguage" json:"incfcewithdefaultlanguage"`
	SortExports                   bool      `bun:"sortexports" json:"sortexports"`
	DiffPayload                   string    `bun:"flexformdiff" json:"flexformdiff,omitempty"`
	CreatedAt                     time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt                     time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Compiled is a configuration resolved for one target language.
type Compiled struct {
	Key                           string
	Tables                        []string
	Exclude                       []domain.RecordRef
	Include                       []domain.RecordRef
	UIDConstraint                 []domain.RecordRef
	IncludeFCEWithDefaultLanguage bool
	SortExports                   bool
	// Diff is the opaque field-diff payload of the target language, nil
	// when the configuration carries none for it.
	Diff json.RawMessage
}

// HasTable reports whether table is enabled.
func (c *Compiled) HasTable(table string) bool {
	if c == nil {
		return false
	}
	return slices.Contains(c.Tables, table)
}

// Clone returns a deep copy.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return nil
	}
	cloned := *c
	return &cloned
}
