package l10nmgr

import (
	"context"

	"github.com/goliatone/go-l10nmgr/internal/accumulator"
	accumulatecmd "github.com/goliatone/go-l10nmgr/internal/commands/accumulate"
	"github.com/goliatone/go-l10nmgr/internal/di"
	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/jobconfig"
	"github.com/goliatone/go-l10nmgr/internal/restrictions"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// Engine exports the accumulation engine.
type Engine = accumulator.Engine

// EngineOption configures an engine.
type EngineOption = accumulator.Option

// Result exports the accumulated per-page translation details.
type Result = accumulator.Result

// Bucket exports one page bucket of a result.
type Bucket = accumulator.Bucket

// Header exports the page header of a bucket.
type Header = accumulator.Header

// JobConfiguration exports the stored localization job configuration.
type JobConfiguration = jobconfig.Configuration

// ConfigurationError reports a malformed job configuration.
type ConfigurationError = jobconfig.ConfigurationError

// ConfigurationRepository exports the job configuration repository contract.
type ConfigurationRepository = jobconfig.Repository

// RestrictionService exports the language restriction service.
type RestrictionService = *restrictions.Service

// AccumulateCommand exports the accumulate command message.
type AccumulateCommand = accumulatecmd.AccumulateCommand

// RecordRef identifies one record by table and uid.
type RecordRef = domain.RecordRef

// TranslationDetail exports the field-level detail of one record.
type TranslationDetail = domain.TranslationDetail

// Option overrides a default collaborator of the module.
type Option = di.Option

var (
	ErrEngineFailed          = accumulator.ErrEngineFailed
	ErrInvalidConfiguration  = jobconfig.ErrInvalidConfiguration
	ErrConfigurationNotFound = jobconfig.ErrConfigurationNotFound
	ErrBunDBRequired         = di.ErrBunDBRequired
)

var (
	WithBunDB                   = di.WithBunDB
	WithCache                   = di.WithCache
	WithLoggerProvider          = di.WithLoggerProvider
	WithActivitySink            = di.WithActivitySink
	WithActivityHooks           = di.WithActivityHooks
	WithRecordStore             = di.WithRecordStore
	WithWorkspaceOverlay        = di.WithWorkspaceOverlay
	WithPermissionChecker       = di.WithPermissionChecker
	WithDetailExtractor         = di.WithDetailExtractor
	WithConfigurationRepository = di.WithConfigurationRepository
	WithForcedPreviewLanguage   = accumulator.WithForcedPreviewLanguage
)

// ParseJobDocument reads a Markdown job configuration document.
func ParseJobDocument(source []byte) (*JobConfiguration, error) {
	return jobconfig.ParseDocument(source)
}

// Module represents the top level l10n runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Configurations returns the job configuration repository.
func (m *Module) Configurations() ConfigurationRepository {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Configurations()
}

// Restrictions returns the language restriction service.
func (m *Module) Restrictions() RestrictionService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Restrictions()
}

// NewEngine builds an engine for job rooted at rootPageID.
func (m *Module) NewEngine(job *JobConfiguration, targetLanguage int, rootPageID int64, actor interfaces.ActorContext, opts ...EngineOption) (*Engine, error) {
	return m.container.NewEngine(job, targetLanguage, rootPageID, actor, opts...)
}

// Accumulate runs the accumulate command and returns its result.
func (m *Module) Accumulate(ctx context.Context, msg AccumulateCommand) (*Result, error) {
	var result *Result
	handler := m.container.AccumulateHandler(func(_ context.Context, _ AccumulateCommand, computed *Result) error {
		result = computed
		return nil
	})
	if err := handler.Execute(ctx, msg); err != nil {
		return nil, err
	}
	return result, nil
}
