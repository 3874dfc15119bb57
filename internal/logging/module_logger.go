package logging

import (
	"context"
	"strconv"

	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

const (
	rootModule        = "l10n"
	accumulatorModule = "l10n.accumulator"
	scopeModule       = "l10n.scope"
	storeModule       = "l10n.store"
	commandsModule    = "l10n.commands"
)

const (
	fieldConfiguration  = "configuration"
	fieldTargetLanguage = "target_language"
	fieldPageID         = "page_id"
	fieldRecord         = "record"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// AccumulatorLogger returns the logger namespace reserved for the engine.
func AccumulatorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, accumulatorModule)
}

// ScopeLogger returns the logger namespace reserved for scope resolution.
func ScopeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, scopeModule)
}

// StoreLogger returns the logger namespace reserved for record stores.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithRunContext tags a logger with the job configuration key and target
// language of one accumulation run. Empty values are ignored.
func WithRunContext(logger interfaces.Logger, configuration string, targetLanguage int) interfaces.Logger {
	fields := map[string]any{
		fieldTargetLanguage: targetLanguage,
	}
	if configuration != "" {
		fields[fieldConfiguration] = configuration
	}
	return WithFields(logger, fields)
}

// PageFields returns the structured fields describing a page.
func PageFields(pageID int64) map[string]any {
	return map[string]any{fieldPageID: pageID}
}

// RecordFields returns the structured fields describing a record.
func RecordFields(table string, uid int64) map[string]any {
	return map[string]any{fieldRecord: table + ":" + strconv.FormatInt(uid, 10)}
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
