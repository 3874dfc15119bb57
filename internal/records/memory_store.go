package records

import (
	"context"
	"slices"
	"sync"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/runtimeconfig"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// MemoryStore keeps rows in memory, keyed by table and uid.
type MemoryStore struct {
	mu     sync.RWMutex
	cfg    runtimeconfig.Config
	tables map[string]map[int64]*domain.Row
}

func NewMemoryStore(cfg runtimeconfig.Config) *MemoryStore {
	return &MemoryStore{
		cfg:    cfg,
		tables: make(map[string]map[int64]*domain.Row),
	}
}

// Put stores copies of rows, replacing rows with the same ref.
func (s *MemoryStore) Put(rows ...*domain.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		if row == nil || row.Table == "" {
			continue
		}
		table, ok := s.tables[row.Table]
		if !ok {
			table = make(map[int64]*domain.Row)
			s.tables[row.Table] = table
		}
		stored := row.Clone()
		stored.Fields[domain.FieldUID] = stored.UID
		stored.Fields[domain.FieldPID] = stored.PID
		table[stored.UID] = stored
	}
}

// Remove drops a row.
func (s *MemoryStore) Remove(ref domain.RecordRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables[ref.Table], ref.UID)
}

func (s *MemoryStore) RowsForTable(ctx context.Context, table string, pageID int64, sorted bool) ([]*domain.Row, error) {
	opts := s.cfg.TableOption(table)
	rows, err := s.filter(ctx, table, func(row *domain.Row) bool {
		return row.PID == pageID && isSourceLanguage(opts, row)
	})
	if err != nil {
		return nil, err
	}
	if sorted && opts.SortField != "" {
		sortByField(rows, opts.SortField)
	}
	return rows, nil
}

func (s *MemoryStore) RowForID(ctx context.Context, table string, id int64) (*domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.tables[table][id]
	if !ok || isDeleted(s.cfg.TableOption(table), row) {
		return nil, &domain.RecordNotFoundError{Ref: domain.Ref(table, id)}
	}
	return row.Clone(), nil
}

func (s *MemoryStore) PagesByOwnMode(ctx context.Context, mode domain.ScopeMode) ([]*domain.Row, error) {
	opts := s.cfg.TableOption(domain.TablePages)
	return s.filter(ctx, domain.TablePages, func(row *domain.Row) bool {
		return row.ScopeMode() == mode && isDefaultLanguage(opts, row)
	})
}

func (s *MemoryStore) PagesByPropagationMode(ctx context.Context, mode domain.PropagationMode) ([]*domain.Row, error) {
	opts := s.cfg.TableOption(domain.TablePages)
	return s.filter(ctx, domain.TablePages, func(row *domain.Row) bool {
		return row.PropagationMode() == mode && isDefaultLanguage(opts, row)
	})
}

func (s *MemoryStore) ChildrenOf(ctx context.Context, pageID int64) ([]*domain.Row, error) {
	opts := s.cfg.TableOption(domain.TablePages)
	return s.filter(ctx, domain.TablePages, func(row *domain.Row) bool {
		return row.PID == pageID && isDefaultLanguage(opts, row)
	})
}

func (s *MemoryStore) MetadataByFileIDs(ctx context.Context, fileIDs []int64) ([]*domain.Row, error) {
	if len(fileIDs) == 0 {
		return nil, nil
	}
	table := s.cfg.Tables.FileMetadata
	opts := s.cfg.TableOption(table)
	return s.filter(ctx, table, func(row *domain.Row) bool {
		return slices.Contains(fileIDs, row.IntOr(domain.FieldFile, 0)) && isDefaultLanguage(opts, row)
	})
}

// filter returns live rows of table matching keep, ordered by uid.
func (s *MemoryStore) filter(ctx context.Context, table string, keep func(*domain.Row) bool) ([]*domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := s.cfg.TableOption(table)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domain.Row
	for _, row := range s.tables[table] {
		if isDeleted(opts, row) || !keep(row) {
			continue
		}
		out = append(out, row.Clone())
	}
	sortByUID(out)
	return out, nil
}

var _ interfaces.RecordStore = (*MemoryStore)(nil)
