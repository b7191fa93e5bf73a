package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"knotpad-be/internal/cache"
	"knotpad-be/internal/model"
	"knotpad-be/internal/pkg/logger"
	"knotpad-be/internal/pkg/session"
	"knotpad-be/internal/repository/unitofwork"
	"knotpad-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ChangeEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, ev := range p.events {
		types[i] = ev.Type
	}
	return types
}

type testEnv struct {
	db        *gorm.DB
	cache     *cache.TagCache
	publisher *recordingPublisher
	notebooks INotebookService
	notes     INoteService
}

// newTestEnv wires the services against a private in-memory SQLite database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive and
	// serialises transactions.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Notebook{}, &model.Note{}))

	store := cache.NewTagCache(time.Minute, time.Minute)
	publisher := &recordingPublisher{}
	uowFactory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()

	return &testEnv{
		db:        db,
		cache:     store,
		publisher: publisher,
		notebooks: NewNotebookService(uowFactory, store, session.NewContextResolver(), publisher, log),
		notes:     NewNoteService(uowFactory, store, publisher, log),
	}
}

func asUser(userId uuid.UUID) context.Context {
	return session.WithUserID(context.Background(), userId)
}

func strPtr(s string) *string {
	return &s
}
