package l10nmgr_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-l10nmgr"
	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/pkg/testsupport"
)

const campaignDocument = `---
key: spring-campaign
title: Spring Campaign
tables: [pages, tt_content, sys_file_reference, sys_file_metadata]
exclude: pages:3
include: tt_content:40
---
Spring landing pages.
`

var integrationSeed = []string{
	`INSERT INTO pages (uid, pid, title, sorting, doktype) VALUES
		(1, 0, 'Spring', 1, '1'),
		(2, 1, 'Offers', 1, '1'),
		(3, 1, 'Drafts', 2, '1'),
		(4, 1, 'Separator', 3, '--div--')`,
	`INSERT INTO tt_content (uid, pid, header, bodytext, sorting) VALUES
		(20, 2, 'Seasonal offers', 'Fresh picks every week', 1),
		(21, 3, 'Draft teaser', '', 1),
		(40, 99, 'Shared footer', '', 1)`,
	`INSERT INTO sys_file_reference (uid, pid, uid_local, tablenames, fieldname, title, sorting_foreign) VALUES
		(70, 2, 7, 'tt_content', 'image', 'Blossoms', 1)`,
	`INSERT INTO sys_file_metadata (uid, file, title, sys_language_uid) VALUES
		(42, 7, 'Cherry blossoms', 0),
		(43, 7, 'Kirschblüten', 2)`,
}

func newIntegrationModule(t *testing.T) *l10nmgr.Module {
	t.Helper()
	ctx := context.Background()
	db := testsupport.NewBunDB(t)
	if err := l10nmgr.ApplyMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if err := l10nmgr.ApplyMigrations(ctx, db); err != nil {
		t.Fatalf("migrations must be repeatable: %v", err)
	}
	testsupport.Exec(t, db, integrationSeed...)

	cfg := l10nmgr.DefaultConfig()
	cfg.Storage.Provider = "bun"
	module, err := l10nmgr.New(cfg, l10nmgr.WithBunDB(db))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	job, err := l10nmgr.ParseJobDocument([]byte(campaignDocument))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if _, err := module.Configurations().Create(ctx, job); err != nil {
		t.Fatalf("create configuration: %v", err)
	}
	return module
}

func TestModuleAccumulateAgainstMigratedSchema(t *testing.T) {
	module := newIntegrationModule(t)

	result, err := module.Accumulate(context.Background(), l10nmgr.AccumulateCommand{
		ConfigurationKey: "spring-campaign",
		TargetLanguage:   2,
		RootPageID:       1,
	})
	if err != nil {
		t.Fatalf("accumulate: %v", err)
	}

	want := map[domain.RecordRef]int64{
		domain.PageRef(1):                            1,
		domain.PageRef(2):                            2,
		domain.Ref("tt_content", 20):                 2,
		domain.Ref(domain.TableFileReference, 70):    2,
		domain.Ref(domain.TableFileMetadata, 42):     domain.FloatingBucketID,
		domain.Ref("tt_content", 40):                 domain.FloatingBucketID,
	}
	for ref, bucket := range want {
		got, ok := result.Locate(ref)
		if !ok || got != bucket {
			t.Fatalf("expected %s in bucket %d, got %d (found=%v)", ref, bucket, got, ok)
		}
	}
	for _, ref := range []domain.RecordRef{domain.PageRef(3), domain.Ref("tt_content", 21), domain.PageRef(4), domain.Ref(domain.TableFileMetadata, 43)} {
		if _, ok := result.Locate(ref); ok {
			t.Fatalf("expected %s to be out of scope", ref)
		}
	}
	if result.Len() != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), result.Len())
	}
}

func TestModuleEngineCountsOnce(t *testing.T) {
	module := newIntegrationModule(t)
	ctx := context.Background()

	job, err := module.Configurations().GetByKey(ctx, "spring-campaign")
	if err != nil {
		t.Fatalf("get configuration: %v", err)
	}
	engine, err := module.NewEngine(job, 2, 1, nil, l10nmgr.WithForcedPreviewLanguage(3))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	fields, err := engine.FieldCount(ctx)
	if err != nil {
		t.Fatalf("field count: %v", err)
	}
	words, err := engine.WordCount(ctx)
	if err != nil {
		t.Fatalf("word count: %v", err)
	}
	result, err := engine.Result(ctx)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if fields != result.FieldCount || words != result.WordCount {
		t.Fatalf("counters disagree with result: %d/%d vs %d/%d", fields, words, result.FieldCount, result.WordCount)
	}
	if result.PreviewLanguageID != 3 {
		t.Fatalf("expected forced preview language 3, got %d", result.PreviewLanguageID)
	}
}

func TestModuleAccumulateUnknownConfiguration(t *testing.T) {
	module := newIntegrationModule(t)

	_, err := module.Accumulate(context.Background(), l10nmgr.AccumulateCommand{
		ConfigurationKey: "autumn",
		TargetLanguage:   2,
		RootPageID:       1,
	})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestModuleRestrictionsPersist(t *testing.T) {
	module := newIntegrationModule(t)
	ctx := context.Background()

	if _, err := module.Restrictions().Restrict(ctx, 2, "tt_content", domain.FieldRestriction); err != nil {
		t.Fatalf("restrict: %v", err)
	}
	rules, err := module.Restrictions().Rules(ctx, 2)
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	if len(rules) != 1 || rules[0].TableName != "tt_content" {
		t.Fatalf("unexpected rules %+v", rules)
	}
	if _, err := module.Configurations().GetByKey(ctx, "missing"); !errors.Is(err, l10nmgr.ErrConfigurationNotFound) {
		t.Fatalf("expected ErrConfigurationNotFound, got %v", err)
	}
}
