package service

import (
	"context"
	"strings"

	"knotpad-be/internal/cache"
	"knotpad-be/internal/dto"
	"knotpad-be/internal/entity"
	"knotpad-be/internal/pkg/logger"
	"knotpad-be/internal/pkg/session"
	"knotpad-be/internal/repository/specification"
	"knotpad-be/internal/repository/unitofwork"
	"knotpad-be/pkg/events"

	"github.com/google/uuid"
)

type INotebookService interface {
	ListForCurrentUser(ctx context.Context) ([]*dto.NotebookResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.NotebookResponse, error)
	Create(ctx context.Context, req *dto.CreateNotebookRequest) (*dto.MutationResponse, error)
	Update(ctx context.Context, req *dto.UpdateNotebookRequest) (*dto.MutationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*dto.MutationResponse, error)
}

type notebookService struct {
	uowFactory       unitofwork.RepositoryFactory
	cache            cache.Store
	sessions         session.Resolver
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewNotebookService(
	uowFactory unitofwork.RepositoryFactory,
	store cache.Store,
	sessions session.Resolver,
	publisherService IPublisherService,
	log logger.ILogger,
) INotebookService {
	return &notebookService{
		uowFactory:       uowFactory,
		cache:            store,
		sessions:         sessions,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *notebookService) ListForCurrentUser(ctx context.Context) ([]*dto.NotebookResponse, error) {
	userId, err := s.sessions.CurrentUserID(ctx)
	if err != nil {
		return nil, newFailure(KindNotAuthenticated, msgUserNotFound)
	}

	notebooks, err := cache.Remember(ctx, s.cache,
		cache.NotebooksByUserKey(userId),
		[]string{cache.UserNotebooksTag(userId), cache.SidebarTag(userId)},
		func(ctx context.Context) ([]*dto.NotebookResponse, error) {
			return s.loadByUser(ctx, userId)
		},
		func(list []*dto.NotebookResponse) []string {
			tags := make([]string, len(list))
			for i, nb := range list {
				tags[i] = cache.NotebookTag(nb.Id)
			}
			return tags
		},
	)
	if err != nil {
		s.logger.Error("NotebookService", "List notebooks failed", map[string]interface{}{
			"user_id": userId,
			"error":   err,
		})
		return nil, newFailure(KindPersistenceFault, msgNotebooksGetFailed)
	}

	return notebooks, nil
}

func (s *notebookService) loadByUser(ctx context.Context, userId uuid.UUID) ([]*dto.NotebookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebooks, err := uow.NotebookRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.WithNotes{Columns: specification.NoteListingColumns},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NotebookResponse, 0, len(notebooks))
	for _, notebook := range notebooks {
		result = append(result, toNotebookResponse(notebook))
	}
	return result, nil
}

func (s *notebookService) GetById(ctx context.Context, id uuid.UUID) (*dto.NotebookResponse, error) {
	notebook, err := cache.Remember(ctx, s.cache,
		cache.NotebookByIdKey(id),
		[]string{cache.NotebookTag(id)},
		func(ctx context.Context) (*dto.NotebookResponse, error) {
			uow := s.uowFactory.NewUnitOfWork(ctx)
			notebook, err := uow.NotebookRepository().FindOne(ctx,
				specification.ByID{ID: id},
				specification.WithNotes{},
			)
			if err != nil || notebook == nil {
				return nil, err
			}
			return toNotebookResponse(notebook), nil
		},
		nil,
	)
	if err != nil {
		s.logger.Error("NotebookService", "Get notebook failed", map[string]interface{}{
			"notebook_id": id,
			"error":       err,
		})
		return nil, newFailure(KindPersistenceFault, msgNotebookGetFailed)
	}

	return notebook, nil
}

func (s *notebookService) Create(ctx context.Context, req *dto.CreateNotebookRequest) (*dto.MutationResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, newFailure(KindInvalidInput, msgNotebookNameRequired)
	}

	var owner uuid.UUID
	if req.UserId != nil && *req.UserId != uuid.Nil {
		owner = *req.UserId
	} else {
		userId, err := s.sessions.CurrentUserID(ctx)
		if err != nil {
			return nil, newFailure(KindNotAuthenticated, msgUserNotFound)
		}
		owner = userId
	}

	notebook := entity.Notebook{
		Id:     uuid.New(),
		Name:   name,
		UserId: owner,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotebookRepository().Create(ctx, &notebook); err != nil {
		s.logger.Error("NotebookService", "Create notebook failed", map[string]interface{}{
			"user_id": owner,
			"error":   err,
		})
		return nil, newFailure(KindPersistenceFault, msgNotebookCreateFailed)
	}

	s.cache.Invalidate(ctx, cache.UserNotebooksTag(owner))
	publishChange(ctx, s.publisherService, s.logger,
		events.NewChangeEvent(events.NotebookCreated, notebook.Id, notebook.Id, &owner))

	return &dto.MutationResponse{
		Success: true,
		Message: msgNotebookCreated,
		Id:      &notebook.Id,
	}, nil
}

func (s *notebookService) Update(ctx context.Context, req *dto.UpdateNotebookRequest) (*dto.MutationResponse, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, newFailure(KindInvalidInput, msgNotebookNameRequired)
	}

	fail := func(err error) (*dto.MutationResponse, error) {
		s.logger.Error("NotebookService", "Update notebook failed", map[string]interface{}{
			"notebook_id": req.Id,
			"error":       err,
		})
		return nil, newFailure(KindPersistenceFault, msgNotebookUpdateFailed)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fail(err)
	}
	defer uow.Rollback()

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return fail(err)
	}
	if notebook == nil {
		return nil, newFailure(KindNotFound, msgNotebookNotFound)
	}

	previousOwner := notebook.UserId
	if req.Name != nil {
		notebook.Name = strings.TrimSpace(*req.Name)
	}
	if req.UserId != nil && *req.UserId != uuid.Nil {
		notebook.UserId = *req.UserId
	}

	if err := uow.NotebookRepository().Update(ctx, notebook); err != nil {
		return fail(err)
	}
	if err := uow.Commit(); err != nil {
		return fail(err)
	}

	tags := []string{
		cache.NotebookTag(notebook.Id),
		cache.UserNotebooksTag(previousOwner),
		cache.SidebarTag(previousOwner),
	}
	if notebook.UserId != previousOwner {
		tags = append(tags, cache.UserNotebooksTag(notebook.UserId), cache.SidebarTag(notebook.UserId))
	}
	s.cache.Invalidate(ctx, tags...)
	publishChange(ctx, s.publisherService, s.logger,
		events.NewChangeEvent(events.NotebookUpdated, notebook.Id, notebook.Id, &notebook.UserId))

	return &dto.MutationResponse{
		Success: true,
		Message: msgNotebookUpdated,
		Id:      &notebook.Id,
	}, nil
}

// Delete removes a notebook and its notes. Deleting an unknown id succeeds.
func (s *notebookService) Delete(ctx context.Context, id uuid.UUID) (*dto.MutationResponse, error) {
	fail := func(err error) (*dto.MutationResponse, error) {
		s.logger.Error("NotebookService", "Delete notebook failed", map[string]interface{}{
			"notebook_id": id,
			"error":       err,
		})
		return nil, newFailure(KindPersistenceFault, msgNotebookDeleteFailed)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fail(err)
	}
	defer uow.Rollback()

	notebook, err := uow.NotebookRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.Columns{Names: []string{"id", "user_id"}},
	)
	if err != nil {
		return fail(err)
	}

	var notes []*entity.Note
	if notebook != nil {
		notes, err = uow.NoteRepository().FindAll(ctx,
			specification.ByNotebookID{NotebookID: id},
			specification.Columns{Names: []string{"id"}},
		)
		if err != nil {
			return fail(err)
		}
		if err := uow.NoteRepository().DeleteByNotebookId(ctx, id); err != nil {
			return fail(err)
		}
		if err := uow.NotebookRepository().Delete(ctx, id); err != nil {
			return fail(err)
		}
	}

	if err := uow.Commit(); err != nil {
		return fail(err)
	}

	tags := []string{cache.NotebookTag(id)}
	if notebook != nil {
		tags = append(tags, cache.UserNotebooksTag(notebook.UserId), cache.SidebarTag(notebook.UserId))
		for _, note := range notes {
			tags = append(tags, cache.NoteTag(note.Id))
		}
	}
	s.cache.Invalidate(ctx, tags...)

	if notebook != nil {
		publishChange(ctx, s.publisherService, s.logger,
			events.NewChangeEvent(events.NotebookDeleted, id, id, &notebook.UserId))
	}

	return &dto.MutationResponse{
		Success: true,
		Message: msgNotebookDeleted,
		Id:      &id,
	}, nil
}

func toNotebookResponse(notebook *entity.Notebook) *dto.NotebookResponse {
	notes := make([]*dto.NoteSummary, 0, len(notebook.Notes))
	for _, note := range notebook.Notes {
		notes = append(notes, &dto.NoteSummary{
			Id:         note.Id,
			Title:      note.Title,
			Content:    note.Content,
			NotebookId: note.NotebookId,
			CreatedAt:  note.CreatedAt,
			UpdatedAt:  note.UpdatedAt,
		})
	}

	return &dto.NotebookResponse{
		Id:        notebook.Id,
		Name:      notebook.Name,
		UserId:    notebook.UserId,
		CreatedAt: notebook.CreatedAt,
		UpdatedAt: notebook.UpdatedAt,
		Notes:     notes,
	}
}
