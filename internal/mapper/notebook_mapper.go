package mapper

import (
	"time"

	"knotpad-be/internal/entity"
	"knotpad-be/internal/model"
)

type NotebookMapper struct {
	notes *NoteMapper
}

func NewNotebookMapper() *NotebookMapper {
	return &NotebookMapper{notes: NewNoteMapper()}
}

func (m *NotebookMapper) ToEntity(n *model.Notebook) *entity.Notebook {
	if n == nil {
		return nil
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	var notes []*entity.Note
	if n.Notes != nil {
		notes = make([]*entity.Note, len(n.Notes))
		for i := range n.Notes {
			notes[i] = m.notes.ToEntity(&n.Notes[i])
		}
	}

	return &entity.Notebook{
		Id:        n.Id,
		Name:      n.Name,
		UserId:    n.UserId,
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
		Notes:     notes,
	}
}

// ToModel never carries Notes: notes are written through their own repository.
func (m *NotebookMapper) ToModel(n *entity.Notebook) *model.Notebook {
	if n == nil {
		return nil
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Notebook{
		Id:        n.Id,
		Name:      n.Name,
		UserId:    n.UserId,
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *NotebookMapper) ToEntities(notebooks []*model.Notebook) []*entity.Notebook {
	entities := make([]*entity.Notebook, len(notebooks))
	for i, n := range notebooks {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
