package service

import "errors"

type FailureKind string

const (
	KindNotAuthenticated FailureKind = "not_authenticated"
	KindPersistenceFault FailureKind = "persistence_fault"
	KindNotFound         FailureKind = "not_found"
	KindInvalidInput     FailureKind = "invalid_input"
)

// Failure is the only error type the access services return. Message is
// safe to show to the user; the underlying cause is logged, never attached.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// Is matches any Failure of the same kind, so errors.Is(err, ErrNotFound)
// holds whatever the message.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Kind == f.Kind
}

var (
	ErrNotAuthenticated = &Failure{Kind: KindNotAuthenticated, Message: "not authenticated"}
	ErrPersistenceFault = &Failure{Kind: KindPersistenceFault, Message: "persistence fault"}
	ErrNotFound         = &Failure{Kind: KindNotFound, Message: "not found"}
	ErrInvalidInput     = &Failure{Kind: KindInvalidInput, Message: "invalid input"}
)

func newFailure(kind FailureKind, message string) *Failure {
	return &Failure{Kind: kind, Message: message}
}

// AsFailure extracts the Failure from err, if any.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

const (
	msgUserNotFound = "User not found"

	msgNotebookCreated        = "Notebook created successfully"
	msgNotebookCreateFailed   = "Failed to create notebook"
	msgNotebooksGetFailed     = "Failed to get notebooks"
	msgNotebookGetFailed      = "Failed to get notebook"
	msgNotebookUpdated        = "Notebook updated successfully"
	msgNotebookUpdateFailed   = "Failed to update notebook"
	msgNotebookDeleted        = "Notebook deleted successfully"
	msgNotebookDeleteFailed   = "Failed to delete notebook"
	msgNotebookNotFound       = "Notebook not found"
	msgNotebookNameRequired   = "Notebook name is required"
	msgNoteCreated            = "Note created successfully"
	msgNoteCreateFailed       = "Failed to create note"
	msgNoteGetFailed          = "Failed to get note"
	msgNoteUpdated            = "Note updated successfully"
	msgNoteUpdateFailed       = "Failed to update note"
	msgNoteDeleted            = "Note deleted successfully"
	msgNoteDeleteFailed       = "Failed to delete note"
	msgNoteNotFound           = "Note not found"
	msgNoteTitleRequired      = "Note title is required"
	msgNoteContentInvalid     = "Note content must be valid JSON"
	msgNoteNotebookIdRequired = "Notebook id is required"
)
