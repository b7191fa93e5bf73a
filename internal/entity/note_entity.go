package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id         uuid.UUID
	Title      string
	Content    json.RawMessage
	NotebookId uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
