package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-l10nmgr/internal/logging"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// TelemetryStatus is the outcome class of one command run.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to telemetry callbacks after a run. Fields holds
// the same structured fields the handler logged with.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is called once per execution, after the error has been tagged.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// StatusOf maps an execution error to its telemetry status. Cancellation
// and deadlines are reported apart from ordinary failures.
func StatusOf(err error) TelemetryStatus {
	switch {
	case err == nil:
		return TelemetryStatusSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return TelemetryStatusContextError
	default:
		return TelemetryStatusFailed
	}
}

// DefaultTelemetry logs one entry per run. Canceled and timed out runs are
// logged as warnings.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = logging.Ensure(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		args := []any{"status", string(info.Status), "duration_ms", info.Duration.Milliseconds()}
		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("l10n.command.completed", args...)
		case TelemetryStatusContextError:
			entry.Warn("l10n.command.interrupted", append(args, "error", info.Error)...)
		default:
			entry.Error("l10n.command.failed", append(args, "error", info.Error)...)
		}
	}
}

// CommandLogger returns the commands namespace logger tagged with the
// command name. Blank names fall back to "l10n".
func CommandLogger(provider interfaces.LoggerProvider, name string) interfaces.Logger {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "l10n"
	}
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"command_name": name,
	})
}
