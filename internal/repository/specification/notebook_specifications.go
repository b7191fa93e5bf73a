package specification

import "gorm.io/gorm"

// NoteListingColumns is the minimal note projection for sidebar and dashboard lists.
var NoteListingColumns = []string{"id", "title", "notebook_id", "created_at", "updated_at"}

// WithNotes preloads a notebook's notes in creation order. Columns must include
// notebook_id when set, otherwise gorm cannot attach the notes to their notebook.
type WithNotes struct {
	Columns []string
}

func (s WithNotes) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Notes", func(tx *gorm.DB) *gorm.DB {
		if len(s.Columns) > 0 {
			tx = tx.Select(s.Columns)
		}
		return tx.Order("created_at ASC").Order("id ASC")
	})
}
