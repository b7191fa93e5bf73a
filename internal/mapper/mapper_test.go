package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"knotpad-be/internal/entity"
	"knotpad-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestNotebookMapper_ToEntity_WithNotes(t *testing.T) {
	notebookId := uuid.New()
	now := time.Now()
	m := &model.Notebook{
		Id:        notebookId,
		Name:      "Work",
		UserId:    uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Notes: []model.Note{
			{Id: uuid.New(), Title: "Standup", NotebookId: notebookId, Content: datatypes.JSON(`{"type":"doc"}`)},
		},
	}

	e := NewNotebookMapper().ToEntity(m)

	require.NotNil(t, e)
	assert.Equal(t, "Work", e.Name)
	require.NotNil(t, e.UpdatedAt)
	require.Len(t, e.Notes, 1)
	assert.Equal(t, "Standup", e.Notes[0].Title)
	assert.JSONEq(t, `{"type":"doc"}`, string(e.Notes[0].Content))
}

func TestNotebookMapper_ToEntity_NotesNotLoaded(t *testing.T) {
	e := NewNotebookMapper().ToEntity(&model.Notebook{Id: uuid.New(), Name: "Solo"})

	assert.Nil(t, e.Notes)
	assert.Nil(t, e.UpdatedAt)
}

func TestNoteMapper_ToModel(t *testing.T) {
	e := &entity.Note{
		Id:         uuid.New(),
		Title:      "Draft",
		Content:    json.RawMessage(`{"type":"doc","content":[]}`),
		NotebookId: uuid.New(),
	}

	m := NewNoteMapper().ToModel(e)

	assert.Equal(t, e.Id, m.Id)
	assert.Equal(t, e.NotebookId, m.NotebookId)
	assert.JSONEq(t, string(e.Content), string(m.Content))
	assert.True(t, m.UpdatedAt.IsZero())
}

func TestNoteMapper_NilSafe(t *testing.T) {
	assert.Nil(t, NewNoteMapper().ToEntity(nil))
	assert.Nil(t, NewNoteMapper().ToModel(nil))
	assert.Nil(t, NewNotebookMapper().ToEntity(nil))
}
