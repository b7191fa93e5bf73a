package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotebookCreated = "notebook.created"
	NotebookUpdated = "notebook.updated"
	NotebookDeleted = "notebook.deleted"
	NoteCreated     = "note.created"
	NoteUpdated     = "note.updated"
	NoteDeleted     = "note.deleted"
)

// ChangeEvent records one committed notebook or note mutation.
type ChangeEvent struct {
	Type       string     `json:"type"`
	EntityId   uuid.UUID  `json:"entity_id"`
	NotebookId uuid.UUID  `json:"notebook_id"`
	UserId     *uuid.UUID `json:"user_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func NewChangeEvent(eventType string, entityId, notebookId uuid.UUID, userId *uuid.UUID) ChangeEvent {
	return ChangeEvent{
		Type:       eventType,
		EntityId:   entityId,
		NotebookId: notebookId,
		UserId:     userId,
		OccurredAt: time.Now().UTC(),
	}
}

func (e ChangeEvent) EventType() string {
	return e.Type
}

func (e ChangeEvent) Payload() map[string]interface{} {
	data := map[string]interface{}{
		"type":        e.Type,
		"entity_id":   e.EntityId.String(),
		"notebook_id": e.NotebookId.String(),
		"occurred_at": e.OccurredAt.Format(time.RFC3339Nano),
	}
	if e.UserId != nil {
		data["user_id"] = e.UserId.String()
	}
	return data
}

func (e ChangeEvent) Timestamp() time.Time {
	return e.OccurredAt
}
