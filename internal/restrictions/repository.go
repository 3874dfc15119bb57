package restrictions

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-l10nmgr/internal/identity"
)

// Repository persists restriction rules.
type Repository interface {
	Create(ctx context.Context, rule *Rule) (*Rule, error)
	Exists(ctx context.Context, languageID int, table, field string) (bool, error)
	ListByLanguage(ctx context.Context, languageID int) ([]*Rule, error)
}

// MemoryRepository stores rules in memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	rules map[ruleKey]*Rule
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rules: make(map[ruleKey]*Rule)}
}

func (m *MemoryRepository) Create(_ context.Context, rule *Rule) (*Rule, error) {
	if err := normalizeRule(rule); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := keyOf(rule.LanguageID, rule.TableName, rule.FieldName)
	if _, exists := m.rules[key]; exists {
		return nil, ErrRuleExists
	}
	stored := *rule
	m.rules[key] = &stored
	out := stored
	return &out, nil
}

func (m *MemoryRepository) Exists(_ context.Context, languageID int, table, field string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rules[keyOf(languageID, table, field)]
	return ok, nil
}

func (m *MemoryRepository) ListByLanguage(_ context.Context, languageID int) ([]*Rule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Rule
	for key, rule := range m.rules {
		if key.language != languageID {
			continue
		}
		copied := *rule
		out = append(out, &copied)
	}
	sortRules(out)
	return out, nil
}

func normalizeRule(rule *Rule) error {
	if rule == nil {
		return ErrRuleInvalid
	}
	rule.TableName = strings.TrimSpace(rule.TableName)
	rule.FieldName = strings.TrimSpace(rule.FieldName)
	if rule.LanguageID <= 0 || rule.TableName == "" || rule.FieldName == "" {
		return ErrRuleInvalid
	}
	rule.ID = identity.RestrictionRuleUUID(rule.LanguageID, rule.TableName, rule.FieldName)
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now().UTC()
	}
	return nil
}

func sortRules(rules []*Rule) {
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].TableName != rules[j].TableName {
			return rules[i].TableName < rules[j].TableName
		}
		return rules[i].FieldName < rules[j].FieldName
	})
}
