package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-l10nmgr"
	"github.com/goliatone/go-l10nmgr/cmd/l10nscope/internal/bootstrap"
	"github.com/goliatone/go-l10nmgr/internal/domain"
	"github.com/goliatone/go-l10nmgr/internal/logging"
)

func stubModuleBuilder(t *testing.T) (*l10nmgr.Module, *bootstrap.Options) {
	t.Helper()
	module, err := l10nmgr.New(l10nmgr.DefaultConfig())
	require.NoError(t, err)

	module.Container().MemoryStore().Put(
		&domain.Row{Table: domain.TablePages, UID: 1, Fields: map[string]any{domain.FieldTitle: "Home page"}},
		&domain.Row{Table: domain.TablePages, UID: 2, PID: 1, Fields: map[string]any{domain.FieldTitle: "About us"}},
		&domain.Row{Table: "tt_content", UID: 10, PID: 1, Fields: map[string]any{"header": "Welcome aboard"}},
	)
	_, err = module.Configurations().Create(context.Background(), &l10nmgr.JobConfiguration{
		Key:       "site-export",
		Title:     "Site export",
		TableList: "pages,tt_content",
	})
	require.NoError(t, err)

	captured := &bootstrap.Options{}
	original := moduleBuilder
	moduleBuilder = func(_ context.Context, opts bootstrap.Options) (*bootstrap.Module, error) {
		*captured = opts
		return &bootstrap.Module{Module: module, Logger: logging.NoOp()}, nil
	}
	t.Cleanup(func() { moduleBuilder = original })
	return module, captured
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAccumulateCmd_TableOutput(t *testing.T) {
	stubModuleBuilder(t)

	out, err := execute(t, "accumulate", "--config", "site-export", "--root", "1", "--lang", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "configuration site-export, target language 2")
	assert.Contains(t, out, "Home page")
	assert.Contains(t, out, "tt_content:10")
	assert.Contains(t, out, "3 records")
}

func TestAccumulateCmd_JSONForEveryLanguage(t *testing.T) {
	stubModuleBuilder(t)

	out, err := execute(t, "accumulate", "-k", "site-export", "-r", "1", "-l", "2,3", "--format", "json", "--preview", "4")
	require.NoError(t, err)

	var results []struct {
		Configuration     string `json:"configuration"`
		TargetLanguageID  int    `json:"target_language"`
		PreviewLanguageID int    `json:"preview_language"`
		Order             []int64
		WordCount         int `json:"word_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].TargetLanguageID)
	assert.Equal(t, 3, results[1].TargetLanguageID)
	for _, result := range results {
		assert.Equal(t, "site-export", result.Configuration)
		assert.Equal(t, 4, result.PreviewLanguageID)
		assert.Equal(t, []int64{1, 2}, result.Order)
		assert.Equal(t, 6, result.WordCount)
	}
}

func TestAccumulateCmd_PassesGlobalFlags(t *testing.T) {
	_, captured := stubModuleBuilder(t)

	_, err := execute(t, "--configs", "jobs", "--log-level", "debug", "accumulate", "-k", "site-export", "-r", "1", "-l", "2")
	require.NoError(t, err)

	assert.Equal(t, "jobs", captured.ConfigDir)
	assert.Equal(t, "debug", captured.LogLevel)
	assert.Equal(t, "sqlite", captured.Dialect)
}

func TestAccumulateCmd_Errors(t *testing.T) {
	stubModuleBuilder(t)

	cases := map[string][]string{
		"unknown configuration": {"accumulate", "-k", "missing", "-r", "1", "-l", "2"},
		"invalid language":      {"accumulate", "-k", "site-export", "-r", "1", "-l", "de"},
		"unknown format":        {"accumulate", "-k", "site-export", "-r", "1", "-l", "2", "-f", "xml"},
		"missing root page":     {"accumulate", "-k", "site-export", "-r", "99", "-l", "2"},
		"missing config flag":   {"accumulate", "-r", "1", "-l", "2"},
		"invalid actor":         {"accumulate", "-k", "site-export", "-r", "1", "-l", "2", "--actor", "nope"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestConfigsCmd_ListsConfigurations(t *testing.T) {
	stubModuleBuilder(t)

	out, err := execute(t, "configs")
	require.NoError(t, err)

	assert.Contains(t, out, "site-export")
	assert.Contains(t, out, "pages, tt_content")
	assert.Contains(t, out, "1 configurations")
}

func TestRestrictCmd_StoresRule(t *testing.T) {
	module, _ := stubModuleBuilder(t)

	out, err := execute(t, "restrict", "--lang", "2", "--table", "tt_content")
	require.NoError(t, err)
	assert.Contains(t, out, "restricted tt_content for language 2")

	restricted, err := module.Restrictions().IsRestricted(context.Background(), 2, "tt_content", domain.FieldRestriction)
	require.NoError(t, err)
	assert.True(t, restricted)
}
