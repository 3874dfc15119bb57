package accumulator

import (
	"errors"

	"github.com/goliatone/go-l10nmgr/internal/domain"
)

var (
	// ErrEngineFailed is returned, joined with the original failure, by every
	// read of an engine whose computation failed.
	ErrEngineFailed      = errors.New("accumulator: engine failed")
	ErrMissingDependency = errors.New("accumulator: missing dependency")
	ErrJobRequired       = errors.New("accumulator: job configuration is required")
)

// CollaboratorError wraps a failure of an external collaborator.
type CollaboratorError = domain.CollaboratorError
