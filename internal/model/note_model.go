package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Note struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title      string         `gorm:"type:varchar(255);not null"`
	Content    datatypes.JSON // jsonb on postgres, json on sqlite
	NotebookId uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
