package accumulatecmd

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-l10nmgr/internal/accumulator"
	"github.com/goliatone/go-l10nmgr/internal/commands"
	"github.com/goliatone/go-l10nmgr/internal/jobconfig"
	"github.com/goliatone/go-l10nmgr/internal/logging"
	"github.com/goliatone/go-l10nmgr/pkg/activity"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

const (
	codeConfigurationNotFound = "L10N_CONFIGURATION_NOT_FOUND"
	codeConfigurationInvalid  = "L10N_CONFIGURATION_INVALID"
	codeAccumulationFailed    = "L10N_ACCUMULATION_FAILED"
	codeResultSinkFailed      = "L10N_RESULT_SINK_FAILED"
)

// EngineFactory builds an engine for one job, language and tree root.
type EngineFactory func(job *jobconfig.Configuration, targetLanguage int, rootPageID int64, actor interfaces.ActorContext, opts ...accumulator.Option) (*accumulator.Engine, error)

// ResultSink receives every computed result.
type ResultSink func(ctx context.Context, msg AccumulateCommand, result *accumulator.Result) error

// Dependencies are the collaborators of the accumulate handler. Sink and
// Activity are optional.
type Dependencies struct {
	Configurations jobconfig.Repository
	Engines        EngineFactory
	Sink           ResultSink
	Activity       *activity.Emitter
}

// AccumulateHandler runs the engine for a job configuration and hands the
// result to the sink.
type AccumulateHandler struct {
	inner *commands.Handler[AccumulateCommand]
}

// NewAccumulateHandler constructs the handler.
func NewAccumulateHandler(deps Dependencies, logger interfaces.Logger, opts ...commands.HandlerOption[AccumulateCommand]) *AccumulateHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg AccumulateCommand) error {
		key := strings.TrimSpace(msg.ConfigurationKey)
		job, err := deps.Configurations.GetByKey(ctx, key)
		if err != nil {
			if errors.Is(err, jobconfig.ErrConfigurationNotFound) {
				return goerrors.Wrap(err, goerrors.CategoryValidation, "job configuration not found").
					WithTextCode(codeConfigurationNotFound)
			}
			return err
		}

		engineOpts := []accumulator.Option{accumulator.WithLogger(baseLogger)}
		if msg.ForcedPreviewLanguage != nil {
			engineOpts = append(engineOpts, accumulator.WithForcedPreviewLanguage(*msg.ForcedPreviewLanguage))
		}
		actor := actorOf(msg)
		engine, err := deps.Engines(job, msg.TargetLanguage, msg.RootPageID, actor, engineOpts...)
		if err != nil {
			if errors.Is(err, jobconfig.ErrInvalidConfiguration) {
				return goerrors.Wrap(err, goerrors.CategoryValidation, "job configuration is invalid").
					WithTextCode(codeConfigurationInvalid)
			}
			return err
		}

		result, err := engine.Result(ctx)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryCommand, "accumulation failed").
				WithTextCode(codeAccumulationFailed)
		}
		if deps.Sink != nil {
			if err := deps.Sink(ctx, msg, result); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryCommand, "result sink failed").
					WithTextCode(codeResultSinkFailed)
			}
		}

		event := activity.Event{
			Verb:           "accumulate",
			ActorID:        actorID(actor),
			ObjectType:     "l10n_configuration",
			ObjectID:       job.ID.String(),
			DefinitionCode: "l10n:accumulate",
			Metadata: map[string]any{
				"configuration":   job.Key,
				"target_language": msg.TargetLanguage,
				"buckets":         len(result.Buckets),
				"items":           result.Len(),
				"field_count":     result.FieldCount,
				"word_count":      result.WordCount,
			},
		}
		if err := deps.Activity.Emit(ctx, event); err != nil {
			baseLogger.Warn("l10n.accumulate.activity_failed", "error", err)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[AccumulateCommand]{
		commands.WithLogger[AccumulateCommand](baseLogger),
		commands.WithOperation[AccumulateCommand]("l10n.accumulate"),
		commands.WithMessageFields(func(msg AccumulateCommand) map[string]any {
			fields := map[string]any{
				"target_language": msg.TargetLanguage,
			}
			if key := strings.TrimSpace(msg.ConfigurationKey); key != "" {
				fields["configuration"] = key
			}
			if msg.RootPageID > 0 {
				fields["root_page_id"] = msg.RootPageID
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[AccumulateCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &AccumulateHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[AccumulateCommand].Execute.
func (h *AccumulateHandler) Execute(ctx context.Context, msg AccumulateCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIOptions describes the CLI metadata for accumulation.
func (h *AccumulateHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"l10n", "accumulate"},
		Group:       "l10n",
		Description: "Accumulate translation details for a job configuration",
	}
}

func actorID(actor Actor) string {
	if actor.ID == uuid.Nil {
		return ""
	}
	return actor.ID.String()
}
