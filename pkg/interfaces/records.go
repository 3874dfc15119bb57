package interfaces

import (
	"context"
	"encoding/json"

	"github.com/goliatone/go-l10nmgr/internal/domain"
)

// TreeProvider supplies the page tree in walk order, already filtered by the
// caller's permissions.
type TreeProvider interface {
	Pages(ctx context.Context) ([]domain.PageNode, error)
}

// RecordStore is the read side of the persistent record store.
//
// RowForID reports a miss with an error wrapping domain.ErrRecordNotFound.
type RecordStore interface {
	RowsForTable(ctx context.Context, table string, pageID int64, sorted bool) ([]*domain.Row, error)
	RowForID(ctx context.Context, table string, id int64) (*domain.Row, error)
	PagesByOwnMode(ctx context.Context, mode domain.ScopeMode) ([]*domain.Row, error)
	PagesByPropagationMode(ctx context.Context, mode domain.PropagationMode) ([]*domain.Row, error)
	ChildrenOf(ctx context.Context, pageID int64) ([]*domain.Row, error)
	MetadataByFileIDs(ctx context.Context, fileIDs []int64) ([]*domain.Row, error)
}

// WorkspaceOverlay resolves the effective version of a row. A nil row with a
// nil error means the record has no effective version and must be skipped.
type WorkspaceOverlay interface {
	Resolve(ctx context.Context, table string, row *domain.Row) (*domain.Row, error)
}

// PermissionChecker answers whether the current actor may edit a record.
type PermissionChecker interface {
	CanEdit(ctx context.Context, table string, row *domain.Row) (bool, error)
}

// RestrictionService reports whether a language restriction rule exists for
// the given language, table and field.
type RestrictionService interface {
	IsRestricted(ctx context.Context, languageID int, table, field string) (bool, error)
}

// DetailRequest carries the inputs of one detail extraction.
type DetailRequest struct {
	Table                         string
	Row                           *domain.Row
	TargetLanguageID              int
	PreviewLanguageID             int
	Diff                          json.RawMessage
	// Previous is Diff already decoded by the caller. Extractors use it
	// instead of decoding Diff again.
	Previous                      domain.PreviousTexts
	IncludeFCEWithDefaultLanguage bool
}

// DetailExtractor converts a record into its field-level translation detail.
type DetailExtractor interface {
	Detail(ctx context.Context, req DetailRequest) (*domain.TranslationDetail, error)
}

// ActorContext describes the backend actor a computation runs for.
type ActorContext interface {
	PreviewLanguages() []int
}
