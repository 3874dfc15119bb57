package di_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-l10nmgr"
	accumulatecmd "github.com/goliatone/go-l10nmgr/internal/commands/accumulate"
	"github.com/goliatone/go-l10nmgr/internal/di"
	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/jobconfig"
	"github.com/goliatone/go-l10nmgr/pkg/activity"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

type captureHook struct {
	events []activity.Event
}

func (h *captureHook) Notify(_ context.Context, event activity.Event) error {
	h.events = append(h.events, event)
	return nil
}

type captureSink struct {
	records []interfaces.ActivityRecord
}

func (s *captureSink) Log(_ context.Context, record interfaces.ActivityRecord) error {
	s.records = append(s.records, record)
	return nil
}

func seedMemoryContainer(t *testing.T, container *di.Container) {
	t.Helper()
	store := container.MemoryStore()
	if store == nil {
		t.Fatalf("expected in-memory record store by default")
	}
	store.Put(
		&domain.Row{Table: domain.TablePages, UID: 1, Fields: map[string]any{domain.FieldTitle: "Home page"}},
		&domain.Row{Table: "tt_content", UID: 10, PID: 1, Fields: map[string]any{"header": "Welcome aboard"}},
	)
	if _, err := container.Configurations().Create(context.Background(), &jobconfig.Configuration{
		Key:       "site-export",
		TableList: "pages,tt_content",
	}); err != nil {
		t.Fatalf("create configuration: %v", err)
	}
}

func TestContainerMemoryDefaults(t *testing.T) {
	container, err := di.NewContainer(l10nmgr.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer error: %v", err)
	}
	if container.MemoryStore() == nil || container.RecordStore() == nil {
		t.Fatalf("expected memory record store")
	}
	if container.Configurations() == nil || container.Restrictions() == nil {
		t.Fatalf("expected repositories to be wired")
	}
	if container.ActivityEmitter().Enabled() {
		t.Fatalf("expected activity disabled by default")
	}
	seedMemoryContainer(t, container)

	job, err := container.Configurations().GetByKey(context.Background(), "site-export")
	if err != nil {
		t.Fatalf("get configuration: %v", err)
	}
	engine, err := container.NewEngine(job, 2, 1, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	words, err := engine.WordCount(context.Background())
	if err != nil {
		t.Fatalf("word count: %v", err)
	}
	if words != 4 {
		t.Fatalf("expected 4 words, got %d", words)
	}
}

func TestContainerActivityHooksFanOut(t *testing.T) {
	cfg := l10nmgr.DefaultConfig()
	cfg.Features.Activity = true
	cfg.Activity.Channel = "translations"

	hook := &captureHook{}
	sink := &captureSink{}
	container, err := di.NewContainer(cfg, di.WithActivityHooks(hook), di.WithActivitySink(sink))
	if err != nil {
		t.Fatalf("NewContainer error: %v", err)
	}
	seedMemoryContainer(t, container)

	actorID := uuid.New()
	handler := container.AccumulateHandler(nil)
	if err := handler.Execute(context.Background(), accumulatecmd.AccumulateCommand{
		ConfigurationKey: "site-export",
		TargetLanguage:   2,
		RootPageID:       1,
		ActorID:          &actorID,
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(hook.events) != 1 {
		t.Fatalf("expected 1 activity event, got %d", len(hook.events))
	}
	event := hook.events[0]
	if event.Verb != "accumulate" || event.ObjectType != "l10n_configuration" {
		t.Fatalf("unexpected event payload: %+v", event)
	}
	if event.Channel != cfg.Activity.Channel {
		t.Fatalf("expected channel %s got %s", cfg.Activity.Channel, event.Channel)
	}
	if event.Metadata["configuration"] != "site-export" {
		t.Fatalf("expected configuration metadata got %v", event.Metadata["configuration"])
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 activity record, got %d", len(sink.records))
	}
	if sink.records[0].ActorID != actorID {
		t.Fatalf("expected actor %s got %s", actorID, sink.records[0].ActorID)
	}
}

func TestContainerActivityDisabledIgnoresSink(t *testing.T) {
	sink := &captureSink{}
	container, err := di.NewContainer(l10nmgr.DefaultConfig(), di.WithActivitySink(sink))
	if err != nil {
		t.Fatalf("NewContainer error: %v", err)
	}
	seedMemoryContainer(t, container)

	if err := container.AccumulateHandler(nil).Execute(context.Background(), accumulatecmd.AccumulateCommand{
		ConfigurationKey: "site-export",
		TargetLanguage:   2,
		RootPageID:       1,
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(sink.records) != 0 {
		t.Fatalf("expected no records while activity is disabled, got %d", len(sink.records))
	}
}
