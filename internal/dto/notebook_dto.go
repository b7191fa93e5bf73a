package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateNotebookRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	// UserId defaults to the authenticated user when omitted.
	UserId *uuid.UUID `json:"user_id"`
}

// UpdateNotebookRequest is a partial update: nil fields keep their stored value.
type UpdateNotebookRequest struct {
	Id     uuid.UUID  `json:"-"`
	Name   *string    `json:"name" validate:"omitempty,min=1,max=255"`
	UserId *uuid.UUID `json:"user_id"`
}

// NoteSummary is a note nested in a notebook. Content is only loaded for a
// single notebook, the per-user listing leaves it out.
type NoteSummary struct {
	Id         uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content,omitempty"`
	NotebookId uuid.UUID       `json:"notebook_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  *time.Time      `json:"updated_at"`
}

type NotebookResponse struct {
	Id        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	UserId    uuid.UUID      `json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at"`
	Notes     []*NoteSummary `json:"notes"`
}
