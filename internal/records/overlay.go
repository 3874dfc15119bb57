package records

import (
	"context"
	"sync"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// LiveOverlay returns every row unchanged. It serves installations without
// workspaces.
type LiveOverlay struct{}

func (LiveOverlay) Resolve(ctx context.Context, _ string, row *domain.Row) (*domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return row, nil
}

// WorkspaceOverlay swaps rows for their staged workspace version. Staged
// versions keep the live uid; hidden rows have no effective version.
type WorkspaceOverlay struct {
	mu       sync.RWMutex
	versions map[domain.RecordRef]*domain.Row
	hidden   map[domain.RecordRef]struct{}
}

func NewWorkspaceOverlay() *WorkspaceOverlay {
	return &WorkspaceOverlay{
		versions: make(map[domain.RecordRef]*domain.Row),
		hidden:   make(map[domain.RecordRef]struct{}),
	}
}

// Stage registers the workspace version of a live record.
func (o *WorkspaceOverlay) Stage(version *domain.Row) {
	if version == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.versions[version.Ref()] = version.Clone()
	delete(o.hidden, version.Ref())
}

// Hide marks a live record as removed in the workspace.
func (o *WorkspaceOverlay) Hide(ref domain.RecordRef) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hidden[ref] = struct{}{}
	delete(o.versions, ref)
}

func (o *WorkspaceOverlay) Resolve(ctx context.Context, _ string, row *domain.Row) (*domain.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	if _, ok := o.hidden[row.Ref()]; ok {
		return nil, nil
	}
	if version, ok := o.versions[row.Ref()]; ok {
		resolved := version.Clone()
		resolved.UID = row.UID
		resolved.PID = row.PID
		return resolved, nil
	}
	return row, nil
}

var (
	_ interfaces.WorkspaceOverlay = LiveOverlay{}
	_ interfaces.WorkspaceOverlay = (*WorkspaceOverlay)(nil)
)
