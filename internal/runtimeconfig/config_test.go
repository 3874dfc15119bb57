package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-l10nmgr/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_ExpansionDepthBounds(t *testing.T) {
	for _, depth := range []int{0, -1, 101} {
		cfg := runtimeconfig.DefaultConfig()
		cfg.Expansion.MaxDepth = depth
		if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrExpansionDepthInvalid) {
			t.Fatalf("depth %d: expected ErrExpansionDepthInvalid, got %v", depth, err)
		}
	}
}

func TestConfigValidate_RejectsUnknownStorage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "redis"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "mysql"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDialectUnknown) {
		t.Fatalf("expected ErrStorageDialectUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidTableNames(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Tables.FileMetadata = "sys-file-metadata"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrTableNameInvalid) {
		t.Fatalf("expected ErrTableNameInvalid, got %v", err)
	}
}

func TestConfigValidate_Logging(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "json"
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestConfigValidate_ActivityRequiresChannel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Activity = true
	cfg.Activity.Channel = " "
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrActivityChannelRequired) {
		t.Fatalf("expected ErrActivityChannelRequired, got %v", err)
	}
}

func TestDisallowedDoktypeSet(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DisallowedDoktypes = []string{" 255 ", "", "--div--"}
	set := cfg.DisallowedDoktypeSet()
	if len(set) != 2 {
		t.Fatalf("expected 2 entries, got %v", set)
	}
	if _, ok := set["255"]; !ok {
		t.Fatal("expected trimmed 255 entry")
	}
}
