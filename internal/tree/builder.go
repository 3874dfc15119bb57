package tree

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/runtimeconfig"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

const (
	defaultIcon = "apps-pagetree-page-default"
	// maxRootlineLength bounds the upward walk above the start page.
	maxRootlineLength = 100
)

var ErrRootNotFound = errors.New("tree: root page not found")

// Builder materializes the page tree below a start page, depth-first in
// sorting order, with the rootline of every node.
type Builder struct {
	store       interfaces.RecordStore
	permissions interfaces.PermissionChecker
	root        int64
	depth       int
	sortField   string
}

type Option func(*Builder)

// WithDepth limits how many levels below the root are visited. Zero means
// unlimited.
func WithDepth(depth int) Option {
	return func(b *Builder) {
		if depth >= 0 {
			b.depth = depth
		}
	}
}

// WithPermissions drops pages (and their subtrees) the actor may not edit.
func WithPermissions(checker interfaces.PermissionChecker) Option {
	return func(b *Builder) {
		b.permissions = checker
	}
}

func NewBuilder(store interfaces.RecordStore, cfg runtimeconfig.Config, root int64, opts ...Option) *Builder {
	builder := &Builder{
		store:     store,
		root:      root,
		sortField: cfg.TableOption(domain.TablePages).SortField,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(builder)
		}
	}
	return builder
}

type visit struct {
	row      *domain.Row
	level    int
	rootline []domain.RootlineEntry
}

// Pages implements interfaces.TreeProvider.
func (b *Builder) Pages(ctx context.Context) ([]domain.PageNode, error) {
	rootRow, err := b.store.RowForID(ctx, domain.TablePages, b.root)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrRootNotFound, b.root)
		}
		return nil, err
	}
	ancestors, err := b.ancestors(ctx, rootRow)
	if err != nil {
		return nil, err
	}

	var nodes []domain.PageNode
	visited := make(map[int64]struct{})
	stack := []visit{{row: rootRow, rootline: ancestors}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[current.row.UID]; ok {
			continue
		}
		visited[current.row.UID] = struct{}{}

		allowed, err := b.allowed(ctx, current.row)
		if err != nil {
			return nil, err
		}
		if !allowed {
			continue
		}

		rootline := append([]domain.RootlineEntry{entryOf(current.row)}, current.rootline...)
		nodes = append(nodes, nodeOf(current.row, rootline))

		if b.depth > 0 && current.level >= b.depth {
			continue
		}
		children, err := b.store.ChildrenOf(ctx, current.row.UID)
		if err != nil {
			return nil, err
		}
		b.sortChildren(children)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, visit{row: children[i], level: current.level + 1, rootline: rootline})
		}
	}
	return nodes, nil
}

// ancestors returns the rootline above row, nearest first.
func (b *Builder) ancestors(ctx context.Context, row *domain.Row) ([]domain.RootlineEntry, error) {
	var out []domain.RootlineEntry
	seen := map[int64]struct{}{row.UID: {}}
	pid := row.PID
	for pid > 0 && len(out) < maxRootlineLength {
		if _, loop := seen[pid]; loop {
			break
		}
		seen[pid] = struct{}{}
		parent, err := b.store.RowForID(ctx, domain.TablePages, pid)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				break
			}
			return nil, err
		}
		out = append(out, entryOf(parent))
		pid = parent.PID
	}
	return out, nil
}

func (b *Builder) allowed(ctx context.Context, row *domain.Row) (bool, error) {
	if b.permissions == nil {
		return true, nil
	}
	return b.permissions.CanEdit(ctx, domain.TablePages, row)
}

func (b *Builder) sortChildren(children []*domain.Row) {
	if b.sortField == "" {
		return
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].IntOr(b.sortField, 0) < children[j].IntOr(b.sortField, 0)
	})
}

func entryOf(row *domain.Row) domain.RootlineEntry {
	return domain.RootlineEntry{
		ID:          row.UID,
		Mode:        row.ScopeMode(),
		Propagation: row.PropagationMode(),
	}
}

func nodeOf(row *domain.Row, rootline []domain.RootlineEntry) domain.PageNode {
	icon := row.String("nav_icon")
	if icon == "" {
		icon = defaultIcon
	}
	return domain.PageNode{
		ID:          row.UID,
		Title:       row.String(domain.FieldTitle),
		Icon:        icon,
		Doktype:     row.String(domain.FieldDoktype),
		Mode:        row.ScopeMode(),
		Propagation: row.PropagationMode(),
		Restriction: row.String(domain.FieldRestriction),
		Rootline:    slices.Clone(rootline),
	}
}

// Static serves a pre-built tree.
type Static []domain.PageNode

func (s Static) Pages(context.Context) ([]domain.PageNode, error) {
	return slices.Clone(s), nil
}

var (
	_ interfaces.TreeProvider = (*Builder)(nil)
	_ interfaces.TreeProvider = Static(nil)
)
