package accumulatecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

const accumulateMessageType = "l10n.accumulate"

// AccumulateCommand requests the accumulated translation scope of one job
// configuration for one target language.
type AccumulateCommand struct {
	ConfigurationKey      string     `json:"configuration"`
	TargetLanguage        int        `json:"target_language"`
	RootPageID            int64      `json:"root_page_id"`
	ForcedPreviewLanguage *int       `json:"forced_preview_language,omitempty"`
	PreviewLanguages      []int      `json:"preview_languages,omitempty"`
	ActorID               *uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (AccumulateCommand) Type() string { return accumulateMessageType }

// Validate ensures the command names a job, a target language and a tree root.
func (m AccumulateCommand) Validate() error {
	errs := validation.Errors{}
	key := strings.TrimSpace(m.ConfigurationKey)
	switch {
	case key == "":
		errs["configuration"] = validation.NewError("l10n.accumulate.configuration_required", "configuration is required")
	case !slug.IsValid(key):
		errs["configuration"] = validation.NewError("l10n.accumulate.configuration_invalid", "configuration must be a slug")
	}
	if m.TargetLanguage <= 0 {
		errs["target_language"] = validation.NewError("l10n.accumulate.target_language_invalid", "target_language must be a translation language")
	}
	if m.RootPageID <= 0 {
		errs["root_page_id"] = validation.NewError("l10n.accumulate.root_page_required", "root_page_id must be greater than zero")
	}
	if m.ForcedPreviewLanguage != nil && *m.ForcedPreviewLanguage < 0 {
		errs["forced_preview_language"] = validation.NewError("l10n.accumulate.preview_language_invalid", "forced_preview_language cannot be negative")
	}
	if m.ActorID != nil && *m.ActorID == uuid.Nil {
		errs["actor_id"] = validation.NewError("l10n.accumulate.actor_id_invalid", "actor_id must be a valid identifier when provided")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Actor is the backend actor an accumulation runs for.
type Actor struct {
	ID        uuid.UUID
	Languages []int
}

// PreviewLanguages implements interfaces.ActorContext.
func (a Actor) PreviewLanguages() []int {
	return append([]int(nil), a.Languages...)
}

func actorOf(msg AccumulateCommand) Actor {
	actor := Actor{Languages: msg.PreviewLanguages}
	if msg.ActorID != nil {
		actor.ID = *msg.ActorID
	}
	return actor
}
