package restrictions

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-l10nmgr/internal/identity"
)

// BunRepository stores rules through go-repository-bun. Lookups go by the
// deterministic rule id so the optional cache can serve them.
type BunRepository struct {
	repo repository.Repository[*Rule]
}

func NewRuleRepository(db *bun.DB) repository.Repository[*Rule] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Rule]{
		NewRecord: func() *Rule { return &Rule{} },
		GetID: func(r *Rule) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Rule, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *Rule) string {
			return r.ID.String()
		},
	})
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewRuleRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunRepository{repo: base}
}

func (r *BunRepository) Create(ctx context.Context, rule *Rule) (*Rule, error) {
	if err := normalizeRule(rule); err != nil {
		return nil, err
	}
	exists, err := r.Exists(ctx, rule.LanguageID, rule.TableName, rule.FieldName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRuleExists
	}
	created, err := r.repo.Create(ctx, rule)
	if err != nil {
		return nil, fmt.Errorf("restriction repository error: %w", err)
	}
	return created, nil
}

func (r *BunRepository) Exists(ctx context.Context, languageID int, table, field string) (bool, error) {
	id := identity.RestrictionRuleUUID(languageID, table, field)
	if _, err := r.repo.GetByID(ctx, id.String()); err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("restriction repository error: %w", err)
	}
	return true, nil
}

func (r *BunRepository) ListByLanguage(ctx context.Context, languageID int) ([]*Rule, error) {
	rules, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.language_id = ?", languageID).
				OrderExpr("?TableAlias.table_name ASC").
				OrderExpr("?TableAlias.field_name ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("restriction repository error: %w", err)
	}
	return rules, nil
}
