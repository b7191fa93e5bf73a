package service

import (
	"context"
	"encoding/json"
	"strings"

	"knotpad-be/internal/cache"
	"knotpad-be/internal/dto"
	"knotpad-be/internal/entity"
	"knotpad-be/internal/pkg/logger"
	"knotpad-be/internal/repository/contract"
	"knotpad-be/internal/repository/specification"
	"knotpad-be/internal/repository/unitofwork"
	"knotpad-be/pkg/events"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.MutationResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.MutationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*dto.MutationResponse, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	cache            cache.Store
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	store cache.Store,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		cache:            store,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.MutationResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, newFailure(KindInvalidInput, msgNoteTitleRequired)
	}
	if req.NotebookId == uuid.Nil {
		return nil, newFailure(KindInvalidInput, msgNoteNotebookIdRequired)
	}
	if len(req.Content) > 0 && !json.Valid(req.Content) {
		return nil, newFailure(KindInvalidInput, msgNoteContentInvalid)
	}

	fail := func(err error) (*dto.MutationResponse, error) {
		s.logger.Error("NoteService", "Create note failed", map[string]interface{}{
			"notebook_id": req.NotebookId,
			"error":       err,
		})
		return nil, newFailure(KindPersistenceFault, msgNoteCreateFailed)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fail(err)
	}
	defer uow.Rollback()

	exists, err := notebookExists(ctx, uow.NotebookRepository(), req.NotebookId)
	if err != nil {
		return fail(err)
	}
	if !exists {
		return nil, newFailure(KindInvalidInput, msgNotebookNotFound)
	}

	note := entity.Note{
		Id:         uuid.New(),
		Title:      title,
		Content:    req.Content,
		NotebookId: req.NotebookId,
	}
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return fail(err)
	}
	if err := uow.Commit(); err != nil {
		return fail(err)
	}

	s.cache.Invalidate(ctx, cache.NotebookTag(note.NotebookId))
	publishChange(ctx, s.publisherService, s.logger,
		events.NewChangeEvent(events.NoteCreated, note.Id, note.NotebookId, actingUser(ctx)))

	return &dto.MutationResponse{
		Success: true,
		Message: msgNoteCreated,
		Id:      &note.Id,
	}, nil
}

func (s *noteService) GetById(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := cache.Remember(ctx, s.cache,
		cache.NoteByIdKey(id),
		[]string{cache.NoteTag(id)},
		func(ctx context.Context) (*dto.NoteResponse, error) {
			return s.load(ctx, id)
		},
		func(note *dto.NoteResponse) []string {
			if note == nil {
				return nil
			}
			// The note shows its notebook's name, so a rename must evict the note too.
			return []string{cache.NotebookTag(note.NotebookId)}
		},
	)
	if err != nil {
		s.logger.Error("NoteService", "Get note failed", map[string]interface{}{
			"note_id": id,
			"error":   err,
		})
		return nil, newFailure(KindPersistenceFault, msgNoteGetFailed)
	}

	return note, nil
}

func (s *noteService) load(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil || note == nil {
		return nil, err
	}

	parent, err := s.loadNotebookRef(ctx, uow, note.NotebookId)
	if err != nil {
		return nil, err
	}

	return &dto.NoteResponse{
		Id:         note.Id,
		Title:      note.Title,
		Content:    note.Content,
		NotebookId: note.NotebookId,
		Notebook:   parent,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}, nil
}

func (s *noteService) loadNotebookRef(ctx context.Context, uow unitofwork.UnitOfWork, notebookId uuid.UUID) (*dto.NotebookRef, error) {
	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: notebookId},
		specification.Columns{Names: []string{"id", "name"}},
	)
	if err != nil {
		return nil, err
	}

	if notebook == nil {
		return nil, nil
	}
	return &dto.NotebookRef{Id: notebook.Id, Name: notebook.Name}, nil
}

func (s *noteService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.MutationResponse, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, newFailure(KindInvalidInput, msgNoteTitleRequired)
	}
	if len(req.Content) > 0 && !json.Valid(req.Content) {
		return nil, newFailure(KindInvalidInput, msgNoteContentInvalid)
	}

	fail := func(err error) (*dto.MutationResponse, error) {
		s.logger.Error("NoteService", "Update note failed", map[string]interface{}{
			"note_id": req.Id,
			"error":   err,
		})
		return nil, newFailure(KindPersistenceFault, msgNoteUpdateFailed)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fail(err)
	}
	defer uow.Rollback()

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return fail(err)
	}
	if note == nil {
		return nil, newFailure(KindNotFound, msgNoteNotFound)
	}

	previousNotebookId := note.NotebookId
	if req.Title != nil {
		note.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		note.Content = req.Content
	}
	if req.NotebookId != nil && *req.NotebookId != uuid.Nil && *req.NotebookId != previousNotebookId {
		exists, err := notebookExists(ctx, uow.NotebookRepository(), *req.NotebookId)
		if err != nil {
			return fail(err)
		}
		if !exists {
			return nil, newFailure(KindInvalidInput, msgNotebookNotFound)
		}
		note.NotebookId = *req.NotebookId
	}

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return fail(err)
	}
	if err := uow.Commit(); err != nil {
		return fail(err)
	}

	tags := []string{cache.NoteTag(note.Id), cache.NotebookTag(previousNotebookId)}
	if note.NotebookId != previousNotebookId {
		tags = append(tags, cache.NotebookTag(note.NotebookId))
	}
	s.cache.Invalidate(ctx, tags...)
	publishChange(ctx, s.publisherService, s.logger,
		events.NewChangeEvent(events.NoteUpdated, note.Id, note.NotebookId, actingUser(ctx)))

	return &dto.MutationResponse{
		Success: true,
		Message: msgNoteUpdated,
		Id:      &note.Id,
	}, nil
}

// Delete removes a note. Deleting an unknown id succeeds.
func (s *noteService) Delete(ctx context.Context, id uuid.UUID) (*dto.MutationResponse, error) {
	fail := func(err error) (*dto.MutationResponse, error) {
		s.logger.Error("NoteService", "Delete note failed", map[string]interface{}{
			"note_id": id,
			"error":   err,
		})
		return nil, newFailure(KindPersistenceFault, msgNoteDeleteFailed)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fail(err)
	}
	defer uow.Rollback()

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.Columns{Names: []string{"id", "notebook_id"}},
	)
	if err != nil {
		return fail(err)
	}
	if note != nil {
		if err := uow.NoteRepository().Delete(ctx, id); err != nil {
			return fail(err)
		}
	}
	if err := uow.Commit(); err != nil {
		return fail(err)
	}

	tags := []string{cache.NoteTag(id)}
	if note != nil {
		tags = append(tags, cache.NotebookTag(note.NotebookId))
	}
	s.cache.Invalidate(ctx, tags...)

	if note != nil {
		publishChange(ctx, s.publisherService, s.logger,
			events.NewChangeEvent(events.NoteDeleted, id, note.NotebookId, actingUser(ctx)))
	}

	return &dto.MutationResponse{
		Success: true,
		Message: msgNoteDeleted,
		Id:      &id,
	}, nil
}

func notebookExists(ctx context.Context, repo contract.NotebookRepository, id uuid.UUID) (bool, error) {
	count, err := repo.Count(ctx, specification.ByID{ID: id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
