package activity

import (
	"context"
	"maps"
	"strings"
	"time"
)

// Event describes something that happened to a localization job.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Hook receives emitted events.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc adapts a function into a Hook.
type HookFunc func(ctx context.Context, event Event) error

func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	return fn(ctx, event)
}

// Emitter fans events out to hooks, filling the channel and timestamp.
type Emitter struct {
	hooks   []Hook
	channel string
	now     func() time.Time
}

type Option func(*Emitter)

// WithChannel sets the default channel of emitted events.
func WithChannel(channel string) Option {
	return func(e *Emitter) {
		e.channel = strings.TrimSpace(channel)
	}
}

// WithClock overrides the event clock.
func WithClock(clock func() time.Time) Option {
	return func(e *Emitter) {
		if clock != nil {
			e.now = clock
		}
	}
}

func NewEmitter(hooks []Hook, opts ...Option) *Emitter {
	emitter := &Emitter{
		hooks: append([]Hook(nil), hooks...),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(emitter)
		}
	}
	return emitter
}

// Enabled reports whether any hook is registered.
func (e *Emitter) Enabled() bool {
	return e != nil && len(e.hooks) > 0
}

// Emit delivers event to every hook and returns the first hook error.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() || strings.TrimSpace(event.Verb) == "" {
		return nil
	}
	if event.Channel == "" {
		event.Channel = e.channel
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = e.now()
	}
	event.Metadata = maps.Clone(event.Metadata)
	var firstErr error
	for _, hook := range e.hooks {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
