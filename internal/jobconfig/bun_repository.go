package jobconfig

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-l10nmgr/internal/identity"
)

// BunRepository persists configurations through go-repository-bun.
type BunRepository struct {
	repo         repository.Repository[*Configuration]
	cacheService cache.CacheService
	cachePrefix  string
}

const configurationNamespace = "l10n_configuration"

// NewConfigurationRepository builds the generic bun repository for
// configurations, identified by key.
func NewConfigurationRepository(db *bun.DB) repository.Repository[*Configuration] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Configuration]{
		NewRecord: func() *Configuration { return &Configuration{} },
		GetID: func(c *Configuration) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Configuration, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(c *Configuration) string {
			return c.Key
		},
	})
}

// NewBunRepository constructs an uncached repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a repository with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewConfigurationRepository(db)
	repo := &BunRepository{}
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
		repo.cacheService = cacheService
		repo.cachePrefix = configurationNamespace + cache.KeySeparator
	}
	repo.repo = base
	return repo
}

// InvalidateCache drops cached configuration lookups.
func (r *BunRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func (r *BunRepository) Create(ctx context.Context, record *Configuration) (*Configuration, error) {
	if record == nil || strings.TrimSpace(record.Key) == "" {
		return nil, ErrKeyRequired
	}
	stored := record.Clone()
	if stored.ID == uuid.Nil {
		stored.ID = identity.ConfigurationUUID(stored.Key)
	}
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	created, err := r.repo.Create(ctx, stored)
	if err != nil {
		return nil, mapRepositoryError(err, stored.Key)
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunRepository) Update(ctx context.Context, record *Configuration) (*Configuration, error) {
	if record == nil {
		return nil, ErrKeyRequired
	}
	record.UpdatedAt = time.Now().UTC()
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"key",
			"title",
			"description",
			"tablelist",
			"exclude",
			"include",
			"table_uid_constraint",
			"incfcewithdefaultlanguage",
			"sortexports",
			"flexformdiff",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, record.Key)
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Configuration, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) GetByKey(ctx context.Context, key string) (*Configuration, error) {
	record, err := r.repo.GetByIdentifier(ctx, strings.TrimSpace(key))
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Configuration, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.key ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return records, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseDuplicate) {
		return fmt.Errorf("%w: %s", ErrConfigurationExists, key)
	}
	return fmt.Errorf("configuration repository error: %w", err)
}
