package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-l10nmgr/internal/domain"
)

// MaxExpansionDepth is the hard ceiling for include-descendants expansion.
const MaxExpansionDepth = 100

var (
	ErrExpansionDepthInvalid   = errors.New("l10n config: expansion depth must be between 1 and 100")
	ErrStorageProviderUnknown  = errors.New("l10n config: storage provider is invalid")
	ErrStorageDialectUnknown   = errors.New("l10n config: storage dialect is invalid")
	ErrReferenceTablesRequired = errors.New("l10n config: file reference and metadata tables are required")
	ErrTableNameInvalid        = errors.New("l10n config: table name is invalid")
	ErrLoggingProviderRequired = errors.New("l10n config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown  = errors.New("l10n config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("l10n config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("l10n config: logging format is invalid")
	ErrActivityChannelRequired = errors.New("l10n config: activity channel is required when activity feature is enabled")
	ErrCacheTTLInvalid         = errors.New("l10n config: cache ttl must be positive when cache is enabled")
)

// Config aggregates the settings the engine and its default collaborators
// read. Host applications build one explicitly; nothing is read from
// process-wide state.
type Config struct {
	// DisallowedDoktypes lists page content-type codes that are never
	// translated (dividers, recycler).
	DisallowedDoktypes []string
	Expansion          ExpansionConfig
	Tables             TablesConfig
	Storage            StorageConfig
	Cache              CacheConfig
	Features           Features
	Logging            LoggingConfig
	Activity           ActivityConfig
}

// ExpansionConfig bounds include-descendants expansion.
type ExpansionConfig struct {
	MaxDepth int
}

// TablesConfig names the tables with special handling and carries per-table
// column hints for the default stores.
type TablesConfig struct {
	FileReference string
	FileMetadata  string
	Options       map[string]TableOptions
}

// TableOptions tells stores which columns drive sorting and filtering.
type TableOptions struct {
	SortField     string
	LanguageField string
	DeleteField   string
}

// StorageConfig selects the record store backend.
type StorageConfig struct {
	Provider string
	Dialect  string
}

// CacheConfig toggles cached repositories.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Features toggles optional behaviour.
type Features struct {
	Logger   bool
	Activity bool
}

// LoggingConfig captures provider options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// ActivityConfig configures activity records emitted after each run.
type ActivityConfig struct {
	Channel string
}

// DefaultConfig returns the defaults of a stock installation.
func DefaultConfig() Config {
	return Config{
		DisallowedDoktypes: []string{"--div--", "255"},
		Expansion: ExpansionConfig{
			MaxDepth: MaxExpansionDepth,
		},
		Tables: TablesConfig{
			FileReference: domain.TableFileReference,
			FileMetadata:  domain.TableFileMetadata,
			Options:       DefaultTableOptions(),
		},
		Storage: StorageConfig{
			Provider: "memory",
			Dialect:  "sqlite",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
		Activity: ActivityConfig{
			Channel: "l10n",
		},
	}
}

// DefaultTableOptions returns column hints for the stock content tables.
func DefaultTableOptions() map[string]TableOptions {
	return map[string]TableOptions{
		domain.TablePages: {
			SortField:   "sorting",
			DeleteField: "deleted",
		},
		"tt_content": {
			SortField:     "sorting",
			LanguageField: domain.FieldLanguage,
			DeleteField:   "deleted",
		},
		domain.TableFileReference: {
			SortField:     "sorting_foreign",
			LanguageField: domain.FieldLanguage,
			DeleteField:   "deleted",
		},
		domain.TableFileMetadata: {
			LanguageField: domain.FieldLanguage,
		},
	}
}

// TableOption returns the options of table, or zero options.
func (cfg Config) TableOption(table string) TableOptions {
	if cfg.Tables.Options == nil {
		return TableOptions{}
	}
	return cfg.Tables.Options[table]
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if cfg.Expansion.MaxDepth < 1 || cfg.Expansion.MaxDepth > MaxExpansionDepth {
		return fmt.Errorf("%w: %d", ErrExpansionDepthInvalid, cfg.Expansion.MaxDepth)
	}
	if strings.TrimSpace(cfg.Tables.FileReference) == "" || strings.TrimSpace(cfg.Tables.FileMetadata) == "" {
		return ErrReferenceTablesRequired
	}
	for _, table := range []string{cfg.Tables.FileReference, cfg.Tables.FileMetadata} {
		if !domain.ValidTableName(table) {
			return fmt.Errorf("%w: %s", ErrTableNameInvalid, table)
		}
	}
	for table := range cfg.Tables.Options {
		if !domain.ValidTableName(table) {
			return fmt.Errorf("%w: %s", ErrTableNameInvalid, table)
		}
	}
	switch normalize(cfg.Storage.Provider) {
	case "memory", "bun":
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if normalize(cfg.Storage.Provider) == "bun" {
		switch normalize(cfg.Storage.Dialect) {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	if cfg.Features.Activity && strings.TrimSpace(cfg.Activity.Channel) == "" {
		return ErrActivityChannelRequired
	}
	return nil
}

// DisallowedDoktypeSet returns the disallowed doktypes as a lookup set.
func (cfg Config) DisallowedDoktypeSet() map[string]struct{} {
	out := make(map[string]struct{}, len(cfg.DisallowedDoktypes))
	for _, doktype := range cfg.DisallowedDoktypes {
		if trimmed := strings.TrimSpace(doktype); trimmed != "" {
			out[trimmed] = struct{}{}
		}
	}
	return out
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
