package records_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/records"
	"github.com/goliatone/go-l10nmgr/internal/runtimeconfig"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
	"github.com/goliatone/go-l10nmgr/pkg/testsupport"
)

var recordsDDL = []string{
	`CREATE TABLE pages (
		uid INTEGER PRIMARY KEY,
		pid INTEGER NOT NULL DEFAULT 0,
		title TEXT NOT NULL DEFAULT '',
		doktype TEXT NOT NULL DEFAULT '1',
		sorting INTEGER NOT NULL DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0,
		l10nmgr_configuration INTEGER NOT NULL DEFAULT 0,
		l10nmgr_configuration_next_level INTEGER NOT NULL DEFAULT 0,
		l10nmgr_language_restriction TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE tt_content (
		uid INTEGER PRIMARY KEY,
		pid INTEGER NOT NULL DEFAULT 0,
		header TEXT NOT NULL DEFAULT '',
		sorting INTEGER NOT NULL DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0,
		sys_language_uid INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE sys_file_metadata (
		uid INTEGER PRIMARY KEY,
		pid INTEGER NOT NULL DEFAULT 0,
		file INTEGER NOT NULL DEFAULT 0,
		title TEXT NOT NULL DEFAULT '',
		sys_language_uid INTEGER NOT NULL DEFAULT 0
	)`,
}

var recordsSeed = []string{
	`INSERT INTO pages (uid, pid, title, sorting, l10nmgr_configuration, l10nmgr_configuration_next_level) VALUES
		(1, 0, 'Root', 1, 0, 3),
		(2, 1, 'Second', 20, 3, 0),
		(3, 1, 'First', 10, 0, 0),
		(4, 1, 'Trash', 5, 0, 0)`,
	`UPDATE pages SET deleted = 1 WHERE uid = 4`,
	`INSERT INTO tt_content (uid, pid, header, sorting, deleted, sys_language_uid) VALUES
		(10, 1, 'B', 2, 0, 0),
		(11, 1, 'A', 1, 0, -1),
		(12, 1, 'German', 3, 0, 2),
		(13, 1, 'Gone', 0, 1, 0),
		(14, 2, 'Other page', 0, 0, 0)`,
	`INSERT INTO sys_file_metadata (uid, pid, file, title, sys_language_uid) VALUES
		(42, 0, 7, 'Harbour', 0),
		(40, 0, 8, 'Lighthouse', 0),
		(43, 0, 7, 'Hafen', 2),
		(44, 0, 9, 'Unreferenced', 0)`,
}

func memoryFixture(cfg runtimeconfig.Config) *records.MemoryStore {
	store := records.NewMemoryStore(cfg)
	page := func(uid, pid, sorting int64, title string, mode, next int) *domain.Row {
		return &domain.Row{Table: "pages", UID: uid, PID: pid, Fields: map[string]any{
			"title":                            title,
			"sorting":                          sorting,
			"l10nmgr_configuration":            mode,
			"l10nmgr_configuration_next_level": next,
		}}
	}
	content := func(uid, pid, sorting int64, header string, deleted, lang int) *domain.Row {
		return &domain.Row{Table: "tt_content", UID: uid, PID: pid, Fields: map[string]any{
			"header":           header,
			"sorting":          sorting,
			"deleted":          deleted,
			"sys_language_uid": lang,
		}}
	}
	metadata := func(uid, file int64, title string, lang int) *domain.Row {
		return &domain.Row{Table: "sys_file_metadata", UID: uid, Fields: map[string]any{
			"file":             file,
			"title":            title,
			"sys_language_uid": lang,
		}}
	}
	trash := page(4, 1, 5, "Trash", 0, 0)
	trash.Fields["deleted"] = 1
	store.Put(
		page(1, 0, 1, "Root", 0, 3),
		page(2, 1, 20, "Second", 3, 0),
		page(3, 1, 10, "First", 0, 0),
		trash,
		content(10, 1, 2, "B", 0, 0),
		content(11, 1, 1, "A", 0, -1),
		content(12, 1, 3, "German", 0, 2),
		content(13, 1, 0, "Gone", 1, 0),
		content(14, 2, 0, "Other page", 0, 0),
		metadata(42, 7, "Harbour", 0),
		metadata(40, 8, "Lighthouse", 0),
		metadata(43, 7, "Hafen", 2),
		metadata(44, 9, "Unreferenced", 0),
	)
	return store
}

func stores(t *testing.T) map[string]interfaces.RecordStore {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()

	db := testsupport.NewBunDB(t)
	testsupport.Exec(t, db, recordsDDL...)
	testsupport.Exec(t, db, recordsSeed...)

	return map[string]interfaces.RecordStore{
		"memory": memoryFixture(cfg),
		"bun":    records.NewBunStore(db, cfg),
	}
}

func uids(rows []*domain.Row) []int64 {
	out := make([]int64, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.UID)
	}
	return out
}

func equalUIDs(got []*domain.Row, want ...int64) bool {
	ids := uids(got)
	if len(ids) != len(want) {
		return false
	}
	for i := range want {
		if ids[i] != want[i] {
			return false
		}
	}
	return true
}

func TestRecordStoreContract(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			rows, err := store.RowsForTable(ctx, "tt_content", 1, false)
			if err != nil {
				t.Fatalf("rows for table: %v", err)
			}
			if !equalUIDs(rows, 10, 11) {
				t.Fatalf("expected source language rows [10 11], got %v", uids(rows))
			}

			rows, err = store.RowsForTable(ctx, "tt_content", 1, true)
			if err != nil {
				t.Fatalf("sorted rows: %v", err)
			}
			if !equalUIDs(rows, 11, 10) {
				t.Fatalf("expected rows sorted by sorting [11 10], got %v", uids(rows))
			}
			if rows[0].String("header") != "A" {
				t.Fatalf("expected header column, got %q", rows[0].String("header"))
			}

			row, err := store.RowForID(ctx, "pages", 3)
			if err != nil {
				t.Fatalf("row for id: %v", err)
			}
			if row.PID != 1 || row.String("title") != "First" {
				t.Fatalf("unexpected page row %+v", row)
			}

			for _, missing := range []int64{4, 99} {
				_, err = store.RowForID(ctx, "pages", missing)
				if !errors.Is(err, domain.ErrRecordNotFound) {
					t.Fatalf("page %d: expected ErrRecordNotFound, got %v", missing, err)
				}
			}

			rows, err = store.PagesByOwnMode(ctx, domain.ScopeInclude)
			if err != nil || !equalUIDs(rows, 2) {
				t.Fatalf("expected include page [2], got %v (%v)", uids(rows), err)
			}
			rows, err = store.PagesByPropagationMode(ctx, domain.PropagateInclude)
			if err != nil || !equalUIDs(rows, 1) {
				t.Fatalf("expected propagation page [1], got %v (%v)", uids(rows), err)
			}

			rows, err = store.ChildrenOf(ctx, 1)
			if err != nil || !equalUIDs(rows, 2, 3) {
				t.Fatalf("expected live children in uid order [2 3], got %v (%v)", uids(rows), err)
			}

			rows, err = store.MetadataByFileIDs(ctx, []int64{8, 7})
			if err != nil || !equalUIDs(rows, 40, 42) {
				t.Fatalf("expected default language metadata [40 42], got %v (%v)", uids(rows), err)
			}
			rows, err = store.MetadataByFileIDs(ctx, nil)
			if err != nil || len(rows) != 0 {
				t.Fatalf("expected no metadata for empty ids, got %v (%v)", uids(rows), err)
			}
		})
	}
}

func TestBunStoreRejectsInvalidTable(t *testing.T) {
	store := records.NewBunStore(testsupport.NewBunDB(t), runtimeconfig.DefaultConfig())
	if _, err := store.RowsForTable(context.Background(), "pages; drop", 1, false); err == nil {
		t.Fatalf("expected invalid table error")
	}
}
