package restrictions

import (
	"context"

	"github.com/goliatone/go-l10nmgr/internal/logging"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// Service answers whether a field may be translated into a language. Every
// answer comes from the repository; per run caching belongs to the caller.
type Service struct {
	repo   Repository
	logger interfaces.Logger
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	svc := &Service{
		repo:   repo,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// IsRestricted reports whether a rule exists for the triple.
func (s *Service) IsRestricted(ctx context.Context, languageID int, table, field string) (bool, error) {
	return s.repo.Exists(ctx, languageID, table, field)
}

// Restrict stores a rule for the triple.
func (s *Service) Restrict(ctx context.Context, languageID int, table, field string) (*Rule, error) {
	rule, err := s.repo.Create(ctx, &Rule{LanguageID: languageID, TableName: table, FieldName: field})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("l10n.restrictions.rule_added",
		"language_id", rule.LanguageID,
		"table", rule.TableName,
		"field", rule.FieldName,
	)
	return rule, nil
}

// Rules lists the rules of a language.
func (s *Service) Rules(ctx context.Context, languageID int) ([]*Rule, error) {
	return s.repo.ListByLanguage(ctx, languageID)
}

var _ interfaces.RestrictionService = (*Service)(nil)
