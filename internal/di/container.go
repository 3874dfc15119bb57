package di

import (
	"errors"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-l10nmgr/internal/accumulator"
	accumulatecmd "github.com/goliatone/go-l10nmgr/internal/commands/accumulate"
	"github.com/goliatone/go-l10nmgr/internal/details"
	"github.com/goliatone/go-l10nmgr/internal/jobconfig"
	"github.com/goliatone/go-l10nmgr/internal/logging"
	"github.com/goliatone/go-l10nmgr/internal/logging/gologger"
	"github.com/goliatone/go-l10nmgr/internal/permissions"
	"github.com/goliatone/go-l10nmgr/internal/records"
	"github.com/goliatone/go-l10nmgr/internal/restrictions"
	"github.com/goliatone/go-l10nmgr/internal/runtimeconfig"
	"github.com/goliatone/go-l10nmgr/internal/tree"
	"github.com/goliatone/go-l10nmgr/pkg/activity"
	"github.com/goliatone/go-l10nmgr/pkg/activity/usersink"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// ErrBunDBRequired is returned when the bun storage provider is selected
// without a database handle.
var ErrBunDBRequired = errors.New("di: bun storage provider requires a database")

// Container wires the default collaborators of the engine.
type Container struct {
	Config runtimeconfig.Config

	bunDB          *bun.DB
	cacheTTL       time.Duration
	cacheService   repocache.CacheService
	keySerializer  repocache.KeySerializer
	loggerProvider interfaces.LoggerProvider
	activitySink   interfaces.ActivitySink
	activityHooks  []activity.Hook

	store       interfaces.RecordStore
	memoryStore *records.MemoryStore
	overlay     interfaces.WorkspaceOverlay
	permissions interfaces.PermissionChecker
	details     interfaces.DetailExtractor

	configRepo      jobconfig.Repository
	restrictionRepo restrictions.Repository
	restrictionSvc  *restrictions.Service
	emitter         *activity.Emitter
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB backs the record store and repositories with a database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service used by cached repositories.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithActivitySink forwards activity events to a go-users sink.
func WithActivitySink(sink interfaces.ActivitySink) Option {
	return func(c *Container) {
		c.activitySink = sink
	}
}

// WithActivityHooks registers additional activity hooks.
func WithActivityHooks(hooks ...activity.Hook) Option {
	return func(c *Container) {
		c.activityHooks = append(c.activityHooks, hooks...)
	}
}

// WithRecordStore overrides the record store.
func WithRecordStore(store interfaces.RecordStore) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithWorkspaceOverlay overrides the workspace overlay.
func WithWorkspaceOverlay(overlay interfaces.WorkspaceOverlay) Option {
	return func(c *Container) {
		c.overlay = overlay
	}
}

// WithPermissionChecker overrides the permission checker.
func WithPermissionChecker(checker interfaces.PermissionChecker) Option {
	return func(c *Container) {
		c.permissions = checker
	}
}

// WithDetailExtractor overrides the detail extractor.
func WithDetailExtractor(extractor interfaces.DetailExtractor) Option {
	return func(c *Container) {
		c.details = extractor
	}
}

// WithConfigurationRepository overrides the job configuration repository.
func WithConfigurationRepository(repo jobconfig.Repository) Option {
	return func(c *Container) {
		c.configRepo = repo
	}
}

// NewContainer validates cfg and wires every collaborator not supplied
// through options.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureRepositories(); err != nil {
		return nil, err
	}
	c.configureCollaborators()
	c.configureActivity()
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.ConfigFrom(c.Config.Logging))
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		} else {
			c.Logger("l10n.di").Warn("di.cache.disabled", "error", err)
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() error {
	if c.bunDB == nil {
		if strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), "bun") {
			return ErrBunDBRequired
		}
		if c.store == nil {
			c.memoryStore = records.NewMemoryStore(c.Config)
			c.store = c.memoryStore
		}
		if c.configRepo == nil {
			c.configRepo = jobconfig.NewMemoryRepository()
		}
		c.restrictionRepo = restrictions.NewMemoryRepository()
		return nil
	}

	if c.store == nil {
		c.store = records.NewBunStore(c.bunDB, c.Config, records.WithStoreLogger(logging.StoreLogger(c.loggerProvider)))
	}
	cached := c.cacheService != nil && c.keySerializer != nil
	if c.configRepo == nil {
		if cached {
			c.configRepo = jobconfig.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		} else {
			c.configRepo = jobconfig.NewBunRepository(c.bunDB)
		}
	}
	if cached {
		c.restrictionRepo = restrictions.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	} else {
		c.restrictionRepo = restrictions.NewBunRepository(c.bunDB)
	}
	return nil
}

func (c *Container) configureCollaborators() {
	if c.overlay == nil {
		c.overlay = records.LiveOverlay{}
	}
	if c.permissions == nil {
		c.permissions = permissions.NewRecordChecker()
	}
	if c.details == nil {
		c.details = details.NewFieldListExtractor()
	}
	c.restrictionSvc = restrictions.NewService(c.restrictionRepo,
		restrictions.WithLogger(logging.ModuleLogger(c.loggerProvider, "l10n.restrictions")),
	)
}

func (c *Container) configureActivity() {
	var hooks []activity.Hook
	if c.Config.Features.Activity {
		hooks = append(hooks, c.activityHooks...)
		if c.activitySink != nil {
			hooks = append(hooks, usersink.Hook{Sink: c.activitySink})
		}
	}
	c.emitter = activity.NewEmitter(hooks, activity.WithChannel(c.Config.Activity.Channel))
}

// Logger returns a module logger from the configured provider.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// LoggerProvider returns the configured logger provider, if any.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// RecordStore returns the record store.
func (c *Container) RecordStore() interfaces.RecordStore {
	return c.store
}

// MemoryStore returns the in-memory record store, or nil when the container
// is backed by a database or a custom store.
func (c *Container) MemoryStore() *records.MemoryStore {
	return c.memoryStore
}

// Configurations returns the job configuration repository.
func (c *Container) Configurations() jobconfig.Repository {
	return c.configRepo
}

// Restrictions returns the language restriction service.
func (c *Container) Restrictions() *restrictions.Service {
	return c.restrictionSvc
}

// ActivityEmitter returns the activity emitter.
func (c *Container) ActivityEmitter() *activity.Emitter {
	return c.emitter
}

// TreeProvider builds a permission-filtered page tree rooted at root.
func (c *Container) TreeProvider(root int64) interfaces.TreeProvider {
	return tree.NewBuilder(c.store, c.Config, root, tree.WithPermissions(c.permissions))
}

// NewEngine builds an engine over the container's collaborators.
func (c *Container) NewEngine(job *jobconfig.Configuration, targetLanguage int, root int64, actor interfaces.ActorContext, opts ...accumulator.Option) (*accumulator.Engine, error) {
	deps := accumulator.Dependencies{
		Tree:         c.TreeProvider(root),
		Store:        c.store,
		Overlay:      c.overlay,
		Permissions:  c.permissions,
		Restrictions: c.restrictionSvc,
		Details:      c.details,
		Actor:        actor,
	}
	engineOpts := append([]accumulator.Option{accumulator.WithLogger(logging.AccumulatorLogger(c.loggerProvider))}, opts...)
	return accumulator.New(job, targetLanguage, deps, c.Config, engineOpts...)
}

// AccumulateHandler returns the l10n.accumulate command handler. sink may be
// nil.
func (c *Container) AccumulateHandler(sink accumulatecmd.ResultSink) *accumulatecmd.AccumulateHandler {
	return accumulatecmd.NewAccumulateHandler(accumulatecmd.Dependencies{
		Configurations: c.configRepo,
		Engines:        c.NewEngine,
		Sink:           sink,
		Activity:       c.emitter,
	}, logging.CommandsLogger(c.loggerProvider))
}
