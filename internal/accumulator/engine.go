package accumulator

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/jobconfig"
	"github.com/goliatone/go-l10nmgr/internal/logging"
	"github.com/goliatone/go-l10nmgr/internal/runtimeconfig"
	"github.com/goliatone/go-l10nmgr/internal/scope"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// Dependencies are the collaborators of an engine. Tree, Store and Details
// are required; the rest fall back to pass-through behaviour.
type Dependencies struct {
	Tree         interfaces.TreeProvider
	Store        interfaces.RecordStore
	Overlay      interfaces.WorkspaceOverlay
	Permissions  interfaces.PermissionChecker
	Restrictions interfaces.RestrictionService
	Details      interfaces.DetailExtractor
	Actor        interfaces.ActorContext
}

// Option configures an engine.
type Option func(*Engine)

// WithForcedPreviewLanguage overrides the actor's preview language.
func WithForcedPreviewLanguage(languageID int) Option {
	return func(e *Engine) {
		e.forcedPreview = &languageID
	}
}

// WithLogger sets the engine logger. Run context fields are added by New.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine computes the accumulated translation scope of one job for one
// target language. The computation runs at most once; every read after the
// first returns the same result or the same failure.
type Engine struct {
	job            *jobconfig.Compiled
	targetLanguage int
	forcedPreview  *int
	deps           Dependencies
	cfg            runtimeconfig.Config
	logger         interfaces.Logger

	mu    sync.Mutex
	state state
}

// New validates the settings, compiles the job for targetLanguage and
// returns an unresolved engine. Malformed jobs fail here with a
// *jobconfig.ConfigurationError.
func New(job *jobconfig.Configuration, targetLanguage int, deps Dependencies, cfg runtimeconfig.Config, opts ...Option) (*Engine, error) {
	if job == nil {
		return nil, ErrJobRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case deps.Tree == nil:
		return nil, fmt.Errorf("%w: tree provider", ErrMissingDependency)
	case deps.Store == nil:
		return nil, fmt.Errorf("%w: record store", ErrMissingDependency)
	case deps.Details == nil:
		return nil, fmt.Errorf("%w: detail extractor", ErrMissingDependency)
	}

	compiled, err := job.Compile(targetLanguage)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		job:            compiled,
		targetLanguage: targetLanguage,
		deps:           deps,
		cfg:            cfg,
		logger:         logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(engine)
		}
	}
	if engine.deps.Overlay == nil {
		engine.deps.Overlay = passthroughOverlay{}
	}
	if engine.deps.Permissions == nil {
		engine.deps.Permissions = allowAll{}
	}
	engine.logger = logging.WithRunContext(engine.logger, compiled.Key, targetLanguage)
	return engine, nil
}

// Result computes the accumulated result on first use and returns it on
// every later call. A failed computation is never retried: later calls
// return ErrEngineFailed joined with the original error.
func (e *Engine) Result(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.phase == phaseUnresolved {
		result, err := e.compute(ctx)
		if err != nil {
			e.logger.Error("accumulator.failed", "error", err)
			e.state.fail(err)
		} else {
			e.state.resolve(result)
		}
	}
	return e.state.read()
}

// FieldCount returns the number of translatable fields in the result.
func (e *Engine) FieldCount(ctx context.Context) (int, error) {
	result, err := e.Result(ctx)
	if err != nil {
		return 0, err
	}
	return result.FieldCount, nil
}

// WordCount returns the number of default-language words in the result.
func (e *Engine) WordCount(ctx context.Context) (int, error) {
	result, err := e.Result(ctx)
	if err != nil {
		return 0, err
	}
	return result.WordCount, nil
}

// Settings returns the runtime settings the engine was built with.
func (e *Engine) Settings() runtimeconfig.Config {
	return e.cfg
}

// TargetLanguage returns the language the engine accumulates for.
func (e *Engine) TargetLanguage() int {
	return e.targetLanguage
}

// PreviewLanguage returns the forced preview language, else the actor's
// first additional preview language, else 0.
func (e *Engine) PreviewLanguage() int {
	if e.forcedPreview != nil {
		return *e.forcedPreview
	}
	if e.deps.Actor != nil {
		if languages := e.deps.Actor.PreviewLanguages(); len(languages) > 0 {
			return languages[0]
		}
	}
	return 0
}

func (e *Engine) compute(ctx context.Context) (*Result, error) {
	doktypes := scope.NewDoktypes(e.cfg.DisallowedDoktypes...)
	sets := scope.NewSets(e.job.Exclude, e.job.UIDConstraint)
	filter := scope.NewRestrictionFilter(e.deps.Restrictions, e.targetLanguage)

	r := &run{
		engine:   e,
		sets:     sets,
		filter:   filter,
		resolver: scope.NewResolver(sets, filter, doktypes, e.logger),
		expander: scope.NewExpander(e.deps.Store, sets, doktypes, e.cfg.Expansion.MaxDepth, e.logger),
		result:   newResult(e.job.Key, e.targetLanguage, e.PreviewLanguage()),
		include:  append([]domain.RecordRef(nil), e.job.Include...),
		placed:   make(map[domain.RecordRef]int64),
	}
	if previous, err := domain.DecodePreviousTexts(e.job.Diff); err == nil {
		r.previous = previous
	} else {
		e.logger.Debug("accumulator.diff.opaque", "error", err)
	}
	if err := r.walk(ctx); err != nil {
		return nil, err
	}
	if err := r.expander.Expand(ctx, r.include, e.job.Exclude); err != nil {
		return nil, err
	}
	if err := r.floating(ctx); err != nil {
		return nil, err
	}

	e.logger.Info("accumulator.completed",
		"buckets", len(r.result.Buckets),
		"items", r.result.Len(),
		"field_count", r.result.FieldCount,
		"word_count", r.result.WordCount,
	)
	return r.result, nil
}

type passthroughOverlay struct{}

func (passthroughOverlay) Resolve(_ context.Context, _ string, row *domain.Row) (*domain.Row, error) {
	return row, nil
}

type allowAll struct{}

func (allowAll) CanEdit(context.Context, string, *domain.Row) (bool, error) {
	return true, nil
}
