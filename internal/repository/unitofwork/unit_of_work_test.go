package unitofwork

import (
	"context"
	"fmt"
	"testing"

	"knotpad-be/internal/entity"
	"knotpad-be/internal/model"
	"knotpad-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.Notebook{}, &model.Note{}))
	return db
}

func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	uow := NewRepositoryFactory(db).NewUnitOfWork(ctx)

	require.NoError(t, uow.Begin(ctx))
	nb := entity.Notebook{Id: uuid.New(), Name: "Temp", UserId: uuid.New()}
	require.NoError(t, uow.NotebookRepository().Create(ctx, &nb))
	require.NoError(t, uow.Rollback())

	count, err := uow.NotebookRepository().Count(ctx, specification.ByID{ID: nb.Id})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUnitOfWork_CommitPersists(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	uow := NewRepositoryFactory(db).NewUnitOfWork(ctx)

	require.NoError(t, uow.Begin(ctx))
	nb := entity.Notebook{Id: uuid.New(), Name: "Kept", UserId: uuid.New()}
	require.NoError(t, uow.NotebookRepository().Create(ctx, &nb))
	note := entity.Note{Id: uuid.New(), Title: "Child", NotebookId: nb.Id}
	require.NoError(t, uow.NoteRepository().Create(ctx, &note))
	require.NoError(t, uow.Commit())

	found, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: nb.Id},
		specification.WithNotes{},
	)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Kept", found.Name)
	assert.False(t, found.CreatedAt.IsZero())
	require.Len(t, found.Notes, 1)
	assert.Equal(t, "Child", found.Notes[0].Title)
}

func TestUnitOfWork_StateErrors(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	uow := NewUnitOfWork(db)

	assert.Error(t, uow.Commit())
	assert.Error(t, uow.Rollback())

	require.NoError(t, uow.Begin(ctx))
	assert.Error(t, uow.Begin(ctx))
	require.NoError(t, uow.Rollback())
}
