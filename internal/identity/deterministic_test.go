package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsStable(t *testing.T) {
	first := ConfigurationUUID("News Pages")
	second := ConfigurationUUID(" news pages ")
	if first == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected normalized keys to match: %s vs %s", first, second)
	}
}

func TestRestrictionRuleUUIDDistinguishesLanguages(t *testing.T) {
	a := RestrictionRuleUUID(2, "pages", "l10nmgr_language_restriction")
	b := RestrictionRuleUUID(3, "pages", "l10nmgr_language_restriction")
	if a == b {
		t.Fatal("expected different ids per language")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if UUID("  ") != uuid.Nil {
		t.Fatal("expected nil uuid for empty key")
	}
}
