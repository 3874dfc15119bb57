package domain

import internaldomain "github.com/goliatone/go-l10nmgr/internal/domain"

type (
	// RecordRef identifies a record by table and uid.
	RecordRef = internaldomain.RecordRef
	// Row is a typed record with its raw column values.
	Row = internaldomain.Row
	// PageNode is one node of the page tree consumed by the engine.
	PageNode = internaldomain.PageNode
	// RootlineEntry is one ancestor of a page.
	RootlineEntry = internaldomain.RootlineEntry
	// ScopeMode is a page's own translation-job override.
	ScopeMode = internaldomain.ScopeMode
	// PropagationMode is the policy a page hands down to its descendants.
	PropagationMode = internaldomain.PropagationMode
	// TranslationDetail is the per-record extraction result.
	TranslationDetail = internaldomain.TranslationDetail
	// FieldEntry is one translatable field of a record.
	FieldEntry = internaldomain.FieldEntry
	// RecordNotFoundError reports a lookup miss.
	RecordNotFoundError = internaldomain.RecordNotFoundError
	// CollaboratorError reports a failing external collaborator.
	CollaboratorError = internaldomain.CollaboratorError
)

const (
	ScopeDefault = internaldomain.ScopeDefault
	ScopeNone    = internaldomain.ScopeNone
	ScopeExclude = internaldomain.ScopeExclude
	ScopeInclude = internaldomain.ScopeInclude

	PropagateDefault = internaldomain.PropagateDefault
	PropagateNone    = internaldomain.PropagateNone
	PropagateExclude = internaldomain.PropagateExclude
	PropagateInclude = internaldomain.PropagateInclude

	// FloatingBucketID keys records not anchored to a tree page.
	FloatingBucketID = internaldomain.FloatingBucketID
)

var (
	ErrRecordNotFound   = internaldomain.ErrRecordNotFound
	ErrInvalidRecordRef = internaldomain.ErrInvalidRecordRef

	NewRow             = internaldomain.NewRow
	Ref                = internaldomain.Ref
	PageRef            = internaldomain.PageRef
	ParseRecordRef     = internaldomain.ParseRecordRef
	ParseRecordRefList = internaldomain.ParseRecordRefList
)
