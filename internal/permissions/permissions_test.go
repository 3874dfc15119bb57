package permissions

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-l10nmgr/internal/domain"
)

type recordingChecker struct {
	allowed map[string]bool
	calls   []string
}

func newRecordingChecker(allowed ...string) *recordingChecker {
	set := make(map[string]bool, len(allowed))
	for _, perm := range allowed {
		set[perm] = true
	}
	return &recordingChecker{allowed: set}
}

func (c *recordingChecker) Allowed(permission string) bool {
	c.calls = append(c.calls, permission)
	return c.allowed[permission]
}

func TestCanEdit_RecordFirstStrategy(t *testing.T) {
	checker := newRecordingChecker("pages:update")
	ctx := WithChecker(context.Background(), checker)

	allowed, err := NewRecordChecker().CanEdit(ctx, "pages", &domain.Row{Table: "pages", UID: 7})
	if err != nil || !allowed {
		t.Fatalf("expected edit allowed, got %v (%v)", allowed, err)
	}
	expected := []string{"pages:update@7", "pages:update"}
	if !reflect.DeepEqual(checker.calls, expected) {
		t.Fatalf("expected checks %v, got %v", expected, checker.calls)
	}
}

func TestCanEdit_TableOnlyStrategy(t *testing.T) {
	checker := newRecordingChecker("pages:update@7")
	ctx := WithChecker(context.Background(), checker)

	allowed, err := NewRecordChecker(WithStrategy(TableOnlyStrategy)).CanEdit(ctx, "pages", &domain.Row{UID: 7})
	if err != nil {
		t.Fatalf("can edit: %v", err)
	}
	if allowed {
		t.Fatalf("expected record scoped grant to be ignored")
	}
}

func TestCanEdit_Defaults(t *testing.T) {
	rc := NewRecordChecker()
	allowed, err := rc.CanEdit(context.Background(), "pages", &domain.Row{UID: 1})
	if err != nil || !allowed {
		t.Fatalf("expected edit allowed without checker, got %v (%v)", allowed, err)
	}

	rc = NewRecordChecker(WithFallback(NewSet("tt_content:*")))
	allowed, _ = rc.CanEdit(context.Background(), "pages", &domain.Row{UID: 1})
	if allowed {
		t.Fatalf("expected pages edit denied by fallback set")
	}
	if err := rc.Require(context.Background(), "pages", &domain.Row{UID: 1}); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	allowed, _ = rc.CanEdit(context.Background(), "tt_content", &domain.Row{UID: 3})
	if !allowed {
		t.Fatalf("expected wildcard grant on tt_content")
	}
}

func TestSetAllowed(t *testing.T) {
	cases := []struct {
		grants     []string
		permission string
		want       bool
	}{
		{grants: []string{"pages:update"}, permission: "PAGES:update", want: true},
		{grants: []string{"pages:update"}, permission: "pages:update@9", want: true},
		{grants: []string{"pages:update@9"}, permission: "pages:update@8", want: false},
		{grants: []string{"*"}, permission: "tt_content:update", want: true},
		{grants: nil, permission: "pages:update", want: false},
	}
	for _, tc := range cases {
		if got := NewSet(tc.grants...).Allowed(tc.permission); got != tc.want {
			t.Fatalf("grants %v permission %q: expected %v, got %v", tc.grants, tc.permission, tc.want, got)
		}
	}
}
