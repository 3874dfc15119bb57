package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound   = errors.New("l10n: record not found")
	ErrInvalidRecordRef = errors.New("l10n: invalid record reference")
)

// RecordNotFoundError reports a lookup miss for a concrete record.
type RecordNotFoundError struct {
	Ref RecordRef
}

func (e *RecordNotFoundError) Error() string {
	if e == nil || e.Ref.IsZero() {
		return ErrRecordNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrRecordNotFound.Error(), e.Ref)
}

func (e *RecordNotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

// CollaboratorError reports a failure of an external collaborator (record
// store, overlay, permission checker, restriction service, extractor, tree
// provider). The original error stays reachable through errors.Is/As.
type CollaboratorError struct {
	Collaborator string
	Operation    string
	Ref          RecordRef
	Err          error
}

func (e *CollaboratorError) Error() string {
	if e == nil {
		return "l10n: collaborator error"
	}
	msg := fmt.Sprintf("l10n: %s.%s", e.Collaborator, e.Operation)
	if !e.Ref.IsZero() {
		msg += " " + e.Ref.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CollaboratorError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WrapCollaborator wraps err unless it is nil or already a CollaboratorError.
func WrapCollaborator(collaborator, operation string, ref RecordRef, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*CollaboratorError); ok {
		return err
	}
	return &CollaboratorError{Collaborator: collaborator, Operation: operation, Ref: ref, Err: err}
}

// Collaborator names used in CollaboratorError.
const (
	CollaboratorTree         = "tree_provider"
	CollaboratorStore        = "record_store"
	CollaboratorOverlay      = "workspace_overlay"
	CollaboratorPermissions  = "permission_checker"
	CollaboratorRestrictions = "restriction_service"
	CollaboratorDetails      = "detail_extractor"
)
