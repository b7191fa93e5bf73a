package main

import (
	"log"
	"time"

	"knotpad-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type seedNote struct {
	Title   string
	Content string
}

type seedNotebook struct {
	Name  string
	Notes []seedNote
}

var demoNotebooks = []seedNotebook{
	{
		Name: "Getting Started",
		Notes: []seedNote{
			{Title: "Welcome", Content: `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Notebooks group your notes."}]}]}`},
			{Title: "Shortcuts", Content: `{"type":"doc","content":[]}`},
		},
	},
	{
		Name: "Work",
		Notes: []seedNote{
			{Title: "Standup", Content: `{"type":"doc","content":[]}`},
		},
	},
	{Name: "Personal"},
}

// SeedNotebooks creates the demo notebooks for userId, skipping names the user already has.
func SeedNotebooks(db *gorm.DB, userId uuid.UUID) {
	for _, nb := range demoNotebooks {
		var existing model.Notebook
		if err := db.Where("user_id = ? AND name = ?", userId, nb.Name).First(&existing).Error; err == nil {
			log.Printf("Notebook '%s' already exists, skipping...", nb.Name)
			continue
		}

		now := time.Now()
		notebook := model.Notebook{
			Id:        uuid.New(),
			Name:      nb.Name,
			UserId:    userId,
			CreatedAt: now,
			UpdatedAt: now,
		}
		for _, n := range nb.Notes {
			notebook.Notes = append(notebook.Notes, model.Note{
				Id:         uuid.New(),
				Title:      n.Title,
				Content:    datatypes.JSON(n.Content),
				NotebookId: notebook.Id,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}

		if err := db.Create(&notebook).Error; err != nil {
			log.Printf("Error creating notebook '%s': %v", nb.Name, err)
			continue
		}
		log.Printf("Created notebook: %s (%d notes)", notebook.Name, len(notebook.Notes))
	}
}
