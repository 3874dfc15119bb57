package permissions

import (
	"context"
	"errors"
	"strings"
)

// Action is the verb half of a "table:action" grant.
type Action string

// ActionUpdate is the grant an editor needs before a record enters an export.
const ActionUpdate Action = "update"

var ErrPermissionDenied = errors.New("permissions: denied")

// Error names the grant that was missing. It matches ErrPermissionDenied.
type Error struct {
	Permission string
}

func (e Error) Error() string {
	if e.Permission == "" {
		return "permissions: denied"
	}
	return "permissions: denied " + e.Permission
}

func (e Error) Unwrap() error {
	return ErrPermissionDenied
}

// Join builds the grant token for an action on a table, or "" when either
// half is blank.
func Join(table string, action Action) string {
	table = normalize(table)
	verb := normalize(string(action))
	if table == "" || verb == "" {
		return ""
	}
	return table + ":" + verb
}

// Checker answers whether a grant token is held.
type Checker interface {
	Allowed(permission string) bool
}

type CheckerFunc func(permission string) bool

func (fn CheckerFunc) Allowed(permission string) bool {
	return fn(permission)
}

// Set is a static grant list. Tokens are matched case-insensitively;
// "pages:update@4" grants one record, "pages:*" every action on a table and
// "*" everything.
type Set map[string]struct{}

func NewSet(grants ...string) Set {
	set := make(Set, len(grants))
	for _, grant := range grants {
		if token := normalize(grant); token != "" {
			set[token] = struct{}{}
		}
	}
	return set
}

func (s Set) Allowed(permission string) bool {
	for _, candidate := range grantCandidates(normalize(permission)) {
		if _, ok := s[candidate]; ok {
			return true
		}
	}
	return false
}

// grantCandidates lists the tokens that would satisfy permission, most
// specific first.
func grantCandidates(permission string) []string {
	if permission == "" {
		return nil
	}
	candidates := []string{permission}
	base, _ := splitRecordScope(permission)
	if base != permission {
		candidates = append(candidates, base)
	}
	if table, _, ok := strings.Cut(base, ":"); ok && table != "" {
		candidates = append(candidates, table+":*")
	}
	return append(candidates, "*")
}

type checkerKey struct{}

// WithChecker stores the actor's checker on the context. Record checkers
// prefer it over their fallback.
func WithChecker(ctx context.Context, checker Checker) context.Context {
	if ctx == nil || checker == nil {
		return ctx
	}
	return context.WithValue(ctx, checkerKey{}, checker)
}

// WithPermissions stores a static grant list on the context.
func WithPermissions(ctx context.Context, grants ...string) context.Context {
	if len(grants) == 0 {
		return ctx
	}
	return WithChecker(ctx, NewSet(grants...))
}

func CheckerFromContext(ctx context.Context) Checker {
	if ctx == nil {
		return nil
	}
	checker, _ := ctx.Value(checkerKey{}).(Checker)
	return checker
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
