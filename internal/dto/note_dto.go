package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title      string          `json:"title" validate:"required,max=255"`
	Content    json.RawMessage `json:"content"`
	NotebookId uuid.UUID       `json:"notebook_id" validate:"required"`
}

// UpdateNoteRequest is a partial update. A non-nil NotebookId moves the note.
type UpdateNoteRequest struct {
	Id         uuid.UUID       `json:"-"`
	Title      *string         `json:"title" validate:"omitempty,min=1,max=255"`
	Content    json.RawMessage `json:"content"`
	NotebookId *uuid.UUID      `json:"notebook_id"`
}

// NotebookRef is the parent notebook shown above a note.
type NotebookRef struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type NoteResponse struct {
	Id         uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	NotebookId uuid.UUID       `json:"notebook_id"`
	// Notebook is nil only if the parent vanished between the two reads.
	Notebook  *NotebookRef `json:"notebook"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at"`
}
