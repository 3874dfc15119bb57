package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-l10nmgr"
	"github.com/goliatone/go-l10nmgr/internal/di"
	"github.com/goliatone/go-l10nmgr/internal/logging"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// Options captures configuration for l10nscope CLI bootstraps.
type Options struct {
	// DSN selects a database; empty keeps every store in memory.
	DSN            string
	Dialect        string
	ConfigDir      string
	Pattern        string
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the l10n module, its logger and the database it owns.
type Module struct {
	Module *l10nmgr.Module
	Logger interfaces.Logger
	db     *bun.DB
}

// Close releases the database handle, if any.
func (m *Module) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}

// BuildModule constructs a module, applies migrations when a database is
// configured, and loads configuration documents from opts.ConfigDir.
func BuildModule(ctx context.Context, opts Options) (*Module, error) {
	cfg := l10nmgr.DefaultConfig()
	cfg.Features.Logger = opts.LoggerProvider == nil
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Format = format
	}

	var diOpts []di.Option
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	var db *bun.DB
	if dsn := strings.TrimSpace(opts.DSN); dsn != "" {
		cfg.Storage.Provider = "bun"
		if dialect := strings.TrimSpace(opts.Dialect); dialect != "" {
			cfg.Storage.Dialect = dialect
		}
		opened, err := di.OpenBunDB(cfg.Storage.Dialect, dsn)
		if err != nil {
			return nil, err
		}
		if err := l10nmgr.ApplyMigrations(ctx, opened); err != nil {
			_ = opened.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		db = opened
		diOpts = append(diOpts, di.WithBunDB(db))
	}

	module, err := l10nmgr.New(cfg, diOpts...)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("initialise l10n module: %w", err)
	}

	out := &Module{
		Module: module,
		Logger: logging.ModuleLogger(module.Container().LoggerProvider(), "l10n.cli"),
		db:     db,
	}
	if dir := strings.TrimSpace(opts.ConfigDir); dir != "" {
		if _, err := LoadConfigurations(ctx, module.Configurations(), dir, opts.Pattern); err != nil {
			_ = out.Close()
			return nil, err
		}
	}
	return out, nil
}

// LoadConfigurations parses every configuration document in dir matching
// pattern and stores it, replacing configurations with the same key. It
// returns the stored keys in file name order.
func LoadConfigurations(ctx context.Context, repo l10nmgr.ConfigurationRepository, dir, pattern string) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob configuration documents: %w", err)
	}
	sort.Strings(files)

	keys := make([]string, 0, len(files))
	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		job, err := l10nmgr.ParseJobDocument(source)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		if err := upsert(ctx, repo, job); err != nil {
			return nil, fmt.Errorf("store %s: %w", file, err)
		}
		keys = append(keys, job.Key)
	}
	return keys, nil
}

func upsert(ctx context.Context, repo l10nmgr.ConfigurationRepository, job *l10nmgr.JobConfiguration) error {
	existing, err := repo.GetByKey(ctx, job.Key)
	switch {
	case errors.Is(err, l10nmgr.ErrConfigurationNotFound):
		_, err = repo.Create(ctx, job)
		return err
	case err != nil:
		return err
	}
	job.ID = existing.ID
	job.CreatedAt = existing.CreatedAt
	_, err = repo.Update(ctx, job)
	return err
}

// SplitLanguages parses a comma separated list of language ids.
func SplitLanguages(value string) ([]int, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	languages := make([]int, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		id, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("invalid language id %q", trimmed)
		}
		languages = append(languages, id)
	}
	return languages, nil
}

// ParseUUIDPointer returns a pointer to the parsed UUID, or nil when the value is empty.
func ParseUUIDPointer(value string) (*uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
