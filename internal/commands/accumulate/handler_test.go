package accumulatecmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-l10nmgr/internal/accumulator"
	"github.com/goliatone/go-l10nmgr/internal/details"
	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/jobconfig"
	"github.com/goliatone/go-l10nmgr/internal/logging"
	"github.com/goliatone/go-l10nmgr/internal/records"
	"github.com/goliatone/go-l10nmgr/internal/runtimeconfig"
	"github.com/goliatone/go-l10nmgr/internal/tree"
	"github.com/goliatone/go-l10nmgr/pkg/activity"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

type fixture struct {
	configs *jobconfig.MemoryRepository
	store   *records.MemoryStore
	results []*accumulator.Result
	events  []activity.Event
	deps    Dependencies
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	store := records.NewMemoryStore(cfg)
	store.Put(
		&domain.Row{Table: domain.TablePages, UID: 1, Fields: map[string]any{domain.FieldTitle: "Home page"}},
		&domain.Row{Table: "tt_content", UID: 10, PID: 1, Fields: map[string]any{"header": "Welcome aboard"}},
	)
	configs := jobconfig.NewMemoryRepository()
	if _, err := configs.Create(context.Background(), &jobconfig.Configuration{
		Key:       "site-export",
		Title:     "Site export",
		TableList: "pages,tt_content",
	}); err != nil {
		t.Fatalf("create configuration: %v", err)
	}

	f := &fixture{configs: configs, store: store}
	f.deps = Dependencies{
		Configurations: configs,
		Engines: func(job *jobconfig.Configuration, language int, root int64, actor interfaces.ActorContext, opts ...accumulator.Option) (*accumulator.Engine, error) {
			return accumulator.New(job, language, accumulator.Dependencies{
				Tree:    tree.NewBuilder(store, cfg, root),
				Store:   store,
				Details: details.NewFieldListExtractor(),
				Actor:   actor,
			}, cfg, opts...)
		},
		Sink: func(_ context.Context, _ AccumulateCommand, result *accumulator.Result) error {
			f.results = append(f.results, result)
			return nil
		},
		Activity: activity.NewEmitter([]activity.Hook{activity.HookFunc(func(_ context.Context, event activity.Event) error {
			f.events = append(f.events, event)
			return nil
		})}, activity.WithChannel("l10n")),
	}
	return f
}

func TestAccumulateHandlerRunsEngine(t *testing.T) {
	f := newFixture(t)
	handler := NewAccumulateHandler(f.deps, logging.NoOp())
	actor := uuid.New()

	err := handler.Execute(context.Background(), AccumulateCommand{
		ConfigurationKey: "site-export",
		TargetLanguage:   2,
		RootPageID:       1,
		PreviewLanguages: []int{3},
		ActorID:          &actor,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(f.results) != 1 {
		t.Fatalf("expected one result, got %d", len(f.results))
	}
	result := f.results[0]
	if result.Len() != 2 || result.FieldCount != 2 || result.WordCount != 4 {
		t.Fatalf("unexpected result totals: items=%d fields=%d words=%d", result.Len(), result.FieldCount, result.WordCount)
	}
	if result.PreviewLanguageID != 3 {
		t.Fatalf("expected actor preview language, got %d", result.PreviewLanguageID)
	}

	if len(f.events) != 1 {
		t.Fatalf("expected one activity event, got %d", len(f.events))
	}
	event := f.events[0]
	if event.Verb != "accumulate" || event.ActorID != actor.String() || event.Channel != "l10n" {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.Metadata["word_count"] != 4 || event.Metadata["configuration"] != "site-export" {
		t.Fatalf("unexpected event metadata %v", event.Metadata)
	}
}

func TestAccumulateHandlerValidation(t *testing.T) {
	f := newFixture(t)
	handler := NewAccumulateHandler(f.deps, nil)
	negative := -1

	cases := map[string]AccumulateCommand{
		"missing configuration": {TargetLanguage: 2, RootPageID: 1},
		"invalid configuration": {ConfigurationKey: "Site Export", TargetLanguage: 2, RootPageID: 1},
		"default language":      {ConfigurationKey: "site-export", TargetLanguage: 0, RootPageID: 1},
		"missing root":          {ConfigurationKey: "site-export", TargetLanguage: 2},
		"negative preview":      {ConfigurationKey: "site-export", TargetLanguage: 2, RootPageID: 1, ForcedPreviewLanguage: &negative},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			err := handler.Execute(context.Background(), msg)
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
		})
	}
	if len(f.results) != 0 {
		t.Fatalf("expected no engine runs, got %d", len(f.results))
	}
}

func TestAccumulateHandlerUnknownConfiguration(t *testing.T) {
	f := newFixture(t)
	handler := NewAccumulateHandler(f.deps, nil)

	err := handler.Execute(context.Background(), AccumulateCommand{ConfigurationKey: "missing", TargetLanguage: 2, RootPageID: 1})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestAccumulateHandlerMalformedConfiguration(t *testing.T) {
	f := newFixture(t)
	job, err := f.configs.GetByKey(context.Background(), "site-export")
	if err != nil {
		t.Fatalf("get configuration: %v", err)
	}
	job.DiffPayload = `{"2": "not an object"}`
	if _, err := f.configs.Update(context.Background(), job); err != nil {
		t.Fatalf("update configuration: %v", err)
	}
	handler := NewAccumulateHandler(f.deps, nil)

	err = handler.Execute(context.Background(), AccumulateCommand{ConfigurationKey: "site-export", TargetLanguage: 2, RootPageID: 1})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category for malformed job, got %v", err)
	}
}

func TestAccumulateHandlerEngineFailure(t *testing.T) {
	f := newFixture(t)
	handler := NewAccumulateHandler(f.deps, nil)

	err := handler.Execute(context.Background(), AccumulateCommand{ConfigurationKey: "site-export", TargetLanguage: 2, RootPageID: 99})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if len(f.events) != 0 {
		t.Fatalf("expected no activity for failed runs")
	}
}

func TestAccumulateHandlerSinkFailure(t *testing.T) {
	f := newFixture(t)
	f.deps.Sink = func(context.Context, AccumulateCommand, *accumulator.Result) error {
		return errors.New("disk full")
	}
	handler := NewAccumulateHandler(f.deps, nil)

	err := handler.Execute(context.Background(), AccumulateCommand{ConfigurationKey: "site-export", TargetLanguage: 2, RootPageID: 1})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
