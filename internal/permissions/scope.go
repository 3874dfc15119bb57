package permissions

import (
	"context"
	"strconv"
	"strings"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// Strategy expands a permission into the candidate tokens checked for one
// record, in order.
type Strategy interface {
	Resolve(permission string, uid int64) []string
}

// StrategyFunc adapts a function into a Strategy.
type StrategyFunc func(permission string, uid int64) []string

func (fn StrategyFunc) Resolve(permission string, uid int64) []string {
	if fn == nil {
		return nil
	}
	return fn(permission, uid)
}

var (
	// RecordFirstStrategy checks "table:update@uid" before "table:update".
	RecordFirstStrategy Strategy = StrategyFunc(func(permission string, uid int64) []string {
		if permission == "" {
			return nil
		}
		if uid <= 0 {
			return []string{permission}
		}
		return []string{scopePermission(permission, uid), permission}
	})
	// TableOnlyStrategy ignores record scoped grants.
	TableOnlyStrategy Strategy = StrategyFunc(func(permission string, _ int64) []string {
		if permission == "" {
			return nil
		}
		return []string{permission}
	})
)

// RecordChecker answers CanEdit from permission tokens. Without a checker on
// the context or a fallback checker every record is editable.
type RecordChecker struct {
	fallback Checker
	strategy Strategy
}

// Option configures a RecordChecker.
type Option func(*RecordChecker)

// WithFallback sets the checker used when the context carries none.
func WithFallback(checker Checker) Option {
	return func(c *RecordChecker) {
		c.fallback = checker
	}
}

// WithStrategy overrides the record scope strategy.
func WithStrategy(strategy Strategy) Option {
	return func(c *RecordChecker) {
		if strategy != nil {
			c.strategy = strategy
		}
	}
}

func NewRecordChecker(opts ...Option) *RecordChecker {
	checker := &RecordChecker{strategy: RecordFirstStrategy}
	for _, opt := range opts {
		if opt != nil {
			opt(checker)
		}
	}
	return checker
}

// CanEdit reports whether "table:update" (optionally scoped to the row uid)
// is granted.
func (c *RecordChecker) CanEdit(ctx context.Context, table string, row *domain.Row) (bool, error) {
	checker := CheckerFromContext(ctx)
	if checker == nil {
		checker = c.fallback
	}
	if checker == nil {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	permission := Join(table, ActionUpdate)
	if permission == "" {
		return false, nil
	}
	var uid int64
	if row != nil {
		uid = row.UID
	}
	for _, candidate := range c.strategy.Resolve(permission, uid) {
		if checker.Allowed(candidate) {
			return true, nil
		}
	}
	return false, nil
}

// Require returns an Error when the table action is not granted.
func (c *RecordChecker) Require(ctx context.Context, table string, row *domain.Row) error {
	allowed, err := c.CanEdit(ctx, table, row)
	if err != nil {
		return err
	}
	if !allowed {
		return Error{Permission: Join(table, ActionUpdate)}
	}
	return nil
}

func splitRecordScope(permission string) (string, string) {
	if permission == "" {
		return "", ""
	}
	parts := strings.SplitN(permission, "@", 2)
	if len(parts) == 2 {
		if scope := strings.TrimSpace(parts[1]); scope != "" {
			return parts[0], scope
		}
	}
	return permission, ""
}

func scopePermission(permission string, uid int64) string {
	if permission == "" || uid <= 0 || strings.Contains(permission, "@") {
		return permission
	}
	return permission + "@" + strconv.FormatInt(uid, 10)
}

var _ interfaces.PermissionChecker = (*RecordChecker)(nil)
