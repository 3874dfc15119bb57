package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"

	internalcommands "github.com/goliatone/go-l10nmgr/internal/commands"
	accumulatecmd "github.com/goliatone/go-l10nmgr/internal/commands/accumulate"
	"github.com/goliatone/go-l10nmgr/internal/di"
	"github.com/goliatone/go-l10nmgr/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// ScheduledAccumulation runs one accumulate command on a cron expression.
type ScheduledAccumulation struct {
	Expression string
	Command    accumulatecmd.AccumulateCommand
}

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// Sink receives every result computed by the registered handlers.
	Sink      accumulatecmd.ResultSink
	Schedules []ScheduledAccumulation
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterContainerCommands builds the command handlers exposed by the provided container and
// optionally registers them with registry/dispatcher/cron integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	if opts.Registry != nil && opts.CronRegistrar != nil {
		if reg, ok := opts.Registry.(interface {
			SetCronRegister(func(command.HandlerConfig, any) error) *command.Registry
		}); ok && reg != nil {
			reg.SetCronRegister(opts.CronRegistrar)
		}
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0, 1+len(opts.Schedules)),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			if _, scheduled := handler.(*ScheduledAccumulateHandler); !scheduled {
				subscription, err := opts.Dispatcher.RegisterCommand(handler)
				if err != nil {
					errs = errors.Join(errs, err)
				} else if subscription != nil {
					result.Subscriptions = append(result.Subscriptions, subscription)
				}
			}
		}

		if opts.CronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok {
				if err := opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	logger := internalcommands.CommandLogger(provider, "accumulate")
	accumulate := accumulatecmd.NewAccumulateHandler(accumulatecmd.Dependencies{
		Configurations: container.Configurations(),
		Engines:        container.NewEngine,
		Sink:           opts.Sink,
		Activity:       container.ActivityEmitter(),
	}, logger)
	register(accumulate)

	for i, schedule := range opts.Schedules {
		expression := strings.TrimSpace(schedule.Expression)
		if expression == "" {
			errs = errors.Join(errs, fmt.Errorf("schedule %d: cron expression is required", i))
			continue
		}
		if err := command.ValidateMessage(schedule.Command); err != nil {
			errs = errors.Join(errs, fmt.Errorf("schedule %d: %w", i, err))
			continue
		}
		register(&ScheduledAccumulateHandler{
			handler: accumulate,
			msg:     schedule.Command,
			config:  command.HandlerConfig{Expression: expression},
		})
	}

	return result, errs
}

// ScheduledAccumulateHandler binds one accumulate command to a cron entry.
type ScheduledAccumulateHandler struct {
	handler *accumulatecmd.AccumulateHandler
	msg     accumulatecmd.AccumulateCommand
	config  command.HandlerConfig
}

// CronHandler satisfies command.CronCommand.
func (h *ScheduledAccumulateHandler) CronHandler() func() error {
	return func() error {
		return h.handler.Execute(context.Background(), h.msg)
	}
}

// CronOptions satisfies command.CronCommand.
func (h *ScheduledAccumulateHandler) CronOptions() command.HandlerConfig {
	return h.config
}

// Command returns the scheduled message.
func (h *ScheduledAccumulateHandler) Command() accumulatecmd.AccumulateCommand {
	return h.msg
}
