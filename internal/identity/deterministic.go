package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by entity type to avoid cross-entity collisions.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ConfigurationUUID identifies a localization job configuration by key.
func ConfigurationUUID(key string) uuid.UUID {
	return UUID("l10n:configuration:" + strings.ToLower(strings.TrimSpace(key)))
}

// RestrictionRuleUUID identifies the language restriction rule for one
// (language, table, field) triple.
func RestrictionRuleUUID(languageID int, table, field string) uuid.UUID {
	return UUID("l10n:restriction:" + strconv.Itoa(languageID) + ":" + strings.TrimSpace(table) + ":" + strings.TrimSpace(field))
}
