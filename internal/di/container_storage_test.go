package di_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-l10nmgr"
	accumulatecmd "github.com/goliatone/go-l10nmgr/internal/commands/accumulate"
	"github.com/goliatone/go-l10nmgr/internal/accumulator"
	"github.com/goliatone/go-l10nmgr/internal/di"
	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/jobconfig"
	"github.com/goliatone/go-l10nmgr/internal/restrictions"
	"github.com/goliatone/go-l10nmgr/internal/runtimeconfig"
	"github.com/goliatone/go-l10nmgr/pkg/testsupport"
)

var storageSeed = []string{
	`INSERT INTO pages (uid, pid, title, sorting) VALUES
		(1, 0, 'Home page', 1),
		(2, 1, 'About', 2)`,
	`INSERT INTO tt_content (uid, pid, header, sorting, sys_language_uid, l10nmgr_language_restriction) VALUES
		(10, 1, 'Welcome aboard', 1, 0, ''),
		(11, 1, 'Legal notice', 2, 0, '2')`,
}

func TestContainerRunsAgainstBunStorage(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t)
	if err := l10nmgr.ApplyMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	testsupport.Exec(t, db, storageSeed...)

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "sqlite"
	cfg.Cache.Enabled = true

	container, err := di.NewContainer(cfg, di.WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.MemoryStore() != nil {
		t.Fatalf("expected database backed record store")
	}

	if _, err := container.Configurations().Create(ctx, &jobconfig.Configuration{
		Key:       "site-export",
		Title:     "Site export",
		TableList: "pages,tt_content",
	}); err != nil {
		t.Fatalf("create configuration: %v", err)
	}
	if _, err := container.Restrictions().Restrict(ctx, 2, "tt_content", domain.FieldRestriction); err != nil {
		t.Fatalf("restrict: %v", err)
	}

	var results []*accumulator.Result
	handler := container.AccumulateHandler(func(_ context.Context, _ accumulatecmd.AccumulateCommand, result *accumulator.Result) error {
		results = append(results, result)
		return nil
	})
	if err := handler.Execute(ctx, accumulatecmd.AccumulateCommand{
		ConfigurationKey: "site-export",
		TargetLanguage:   2,
		RootPageID:       1,
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}

	result := results[0]
	if _, ok := result.Locate(domain.Ref("tt_content", 10)); !ok {
		t.Fatalf("expected tt_content:10 in result")
	}
	if _, ok := result.Locate(domain.Ref("tt_content", 11)); ok {
		t.Fatalf("expected restricted tt_content:11 to be skipped")
	}
	if _, ok := result.Locate(domain.PageRef(2)); !ok {
		t.Fatalf("expected child page in result")
	}
}

func TestContainerEnginesSeeRulesFromOtherWriters(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t)
	if err := l10nmgr.ApplyMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	testsupport.Exec(t, db,
		`INSERT INTO pages (uid, pid, title, sorting, l10nmgr_language_restriction) VALUES
			(1, 0, 'Home page', 1, ''),
			(3, 1, 'Imprint', 2, '2')`,
	)

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "sqlite"

	container, err := di.NewContainer(cfg, di.WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	job := &jobconfig.Configuration{Key: "site-export", TableList: "pages"}

	run := func() *accumulator.Result {
		t.Helper()
		engine, err := container.NewEngine(job, 2, 1, nil)
		if err != nil {
			t.Fatalf("NewEngine returned error: %v", err)
		}
		result, err := engine.Result(ctx)
		if err != nil {
			t.Fatalf("Result returned error: %v", err)
		}
		return result
	}

	if _, ok := run().Locate(domain.PageRef(3)); !ok {
		t.Fatalf("expected page 3 before any rule exists")
	}

	writer := restrictions.NewBunRepository(db)
	if _, err := writer.Create(ctx, &restrictions.Rule{
		LanguageID: 2,
		TableName:  domain.TablePages,
		FieldName:  domain.FieldRestriction,
	}); err != nil {
		t.Fatalf("create rule: %v", err)
	}

	result := run()
	if _, ok := result.Locate(domain.PageRef(3)); ok {
		t.Fatalf("expected page 3 to be dropped once the rule exists")
	}
	if _, ok := result.Locate(domain.PageRef(1)); !ok {
		t.Fatalf("expected unrestricted home page to stay")
	}
}

func TestContainerCachedConfigurationLookup(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t)
	if err := l10nmgr.ApplyMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Cache.Enabled = true

	container, err := di.NewContainer(cfg, di.WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	repo := container.Configurations()

	if _, err := repo.GetByKey(ctx, "missing"); !errors.Is(err, jobconfig.ErrConfigurationNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	created, err := repo.Create(ctx, &jobconfig.Configuration{Key: "site-export", TableList: "pages"})
	if err != nil {
		t.Fatalf("create configuration: %v", err)
	}
	created.Exclude = "pages:4"
	if _, err := repo.Update(ctx, created); err != nil {
		t.Fatalf("update configuration: %v", err)
	}

	loaded, err := repo.GetByKey(ctx, "site-export")
	if err != nil {
		t.Fatalf("get configuration: %v", err)
	}
	if loaded.Exclude != "pages:4" {
		t.Fatalf("expected cache to be invalidated on update, got exclude %q", loaded.Exclude)
	}
}

func TestContainerBunProviderRequiresDatabase(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"

	if _, err := di.NewContainer(cfg); !errors.Is(err, di.ErrBunDBRequired) {
		t.Fatalf("expected ErrBunDBRequired, got %v", err)
	}
}
