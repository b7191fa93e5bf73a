package dto

import "github.com/google/uuid"

// MutationResponse is returned by every create, update and delete.
type MutationResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Id      *uuid.UUID `json:"id,omitempty"`
}

type ListNotebooksResponse struct {
	Success   bool                `json:"success"`
	Notebooks []*NotebookResponse `json:"notebooks"`
}

type GetNotebookResponse struct {
	Success  bool              `json:"success"`
	Notebook *NotebookResponse `json:"notebook,omitempty"`
}

type GetNoteResponse struct {
	Success bool          `json:"success"`
	Note    *NoteResponse `json:"note,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
