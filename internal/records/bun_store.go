package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/logging"
	"github.com/goliatone/go-l10nmgr/internal/runtimeconfig"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// BunStore reads records from SQL tables whose names come from job
// configurations. Rows are scanned into column maps so any table layout
// works as long as it carries uid and pid columns.
type BunStore struct {
	db     bun.IDB
	cfg    runtimeconfig.Config
	logger interfaces.Logger
}

// BunStoreOption configures the store.
type BunStoreOption func(*BunStore)

// WithStoreLogger sets the store logger.
func WithStoreLogger(logger interfaces.Logger) BunStoreOption {
	return func(s *BunStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewBunStore(db bun.IDB, cfg runtimeconfig.Config, opts ...BunStoreOption) *BunStore {
	store := &BunStore{db: db, cfg: cfg, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

func (s *BunStore) RowsForTable(ctx context.Context, table string, pageID int64, sorted bool) ([]*domain.Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	opts := s.cfg.TableOption(table)
	q := s.selectLive(table).
		Where("? = ?", bun.Ident(domain.FieldPID), pageID)
	if opts.LanguageField != "" {
		q = q.Where("? IN (?)", bun.Ident(opts.LanguageField), bun.In(sourceLanguages))
	}
	if sorted && opts.SortField != "" {
		q = q.OrderExpr("? ASC", bun.Ident(opts.SortField))
	}
	q = q.OrderExpr("? ASC", bun.Ident(domain.FieldUID))
	return s.scan(ctx, table, q)
}

func (s *BunStore) RowForID(ctx context.Context, table string, id int64) (*domain.Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	q := s.selectLive(table).
		Where("? = ?", bun.Ident(domain.FieldUID), id).
		Limit(1)
	rows, err := s.scan(ctx, table, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &domain.RecordNotFoundError{Ref: domain.Ref(table, id)}
	}
	return rows[0], nil
}

func (s *BunStore) PagesByOwnMode(ctx context.Context, mode domain.ScopeMode) ([]*domain.Row, error) {
	q := s.selectPages().
		Where("? = ?", bun.Ident(domain.FieldScopeMode), int(mode)).
		OrderExpr("? ASC", bun.Ident(domain.FieldUID))
	return s.scan(ctx, domain.TablePages, q)
}

func (s *BunStore) PagesByPropagationMode(ctx context.Context, mode domain.PropagationMode) ([]*domain.Row, error) {
	q := s.selectPages().
		Where("? = ?", bun.Ident(domain.FieldPropagationMode), int(mode)).
		OrderExpr("? ASC", bun.Ident(domain.FieldUID))
	return s.scan(ctx, domain.TablePages, q)
}

func (s *BunStore) ChildrenOf(ctx context.Context, pageID int64) ([]*domain.Row, error) {
	q := s.selectPages().
		Where("? = ?", bun.Ident(domain.FieldPID), pageID).
		OrderExpr("? ASC", bun.Ident(domain.FieldUID))
	return s.scan(ctx, domain.TablePages, q)
}

func (s *BunStore) MetadataByFileIDs(ctx context.Context, fileIDs []int64) ([]*domain.Row, error) {
	if len(fileIDs) == 0 {
		return nil, nil
	}
	table := s.cfg.Tables.FileMetadata
	if err := checkTable(table); err != nil {
		return nil, err
	}
	opts := s.cfg.TableOption(table)
	q := s.selectLive(table).
		Where("? IN (?)", bun.Ident(domain.FieldFile), bun.In(fileIDs))
	if opts.LanguageField != "" {
		q = q.Where("? = ?", bun.Ident(opts.LanguageField), domain.DefaultLanguageID)
	}
	q = q.OrderExpr("? ASC", bun.Ident(domain.FieldUID))
	return s.scan(ctx, table, q)
}

func (s *BunStore) selectLive(table string) *bun.SelectQuery {
	q := s.db.NewSelect().
		ColumnExpr("*").
		TableExpr("?", bun.Ident(table))
	if field := s.cfg.TableOption(table).DeleteField; field != "" {
		q = q.Where("? = 0", bun.Ident(field))
	}
	return q
}

func (s *BunStore) selectPages() *bun.SelectQuery {
	q := s.selectLive(domain.TablePages)
	if field := s.cfg.TableOption(domain.TablePages).LanguageField; field != "" {
		q = q.Where("? = ?", bun.Ident(field), domain.DefaultLanguageID)
	}
	return q
}

func (s *BunStore) scan(ctx context.Context, table string, q *bun.SelectQuery) ([]*domain.Row, error) {
	var raw []map[string]any
	if err := q.Scan(ctx, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("records: query %s: %w", table, err)
	}
	rows := make([]*domain.Row, 0, len(raw))
	for _, fields := range raw {
		rows = append(rows, domain.NewRow(table, fields))
	}
	s.logger.Trace("l10n.store.query", "table", table, "rows", len(rows))
	return rows, nil
}

func checkTable(table string) error {
	if !domain.ValidTableName(table) {
		return fmt.Errorf("records: invalid table name %q", table)
	}
	return nil
}

var _ interfaces.RecordStore = (*BunStore)(nil)
