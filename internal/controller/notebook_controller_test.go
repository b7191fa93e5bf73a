package controller

import (
	"net/http"
	"testing"

	"knotpad-be/internal/dto"
	"knotpad-be/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotebookController_GetAll(t *testing.T) {
	notebooks := new(mockNotebookService)
	userId := uuid.New()
	nbId := uuid.New()
	notebooks.On("ListForCurrentUser", sessionFor(userId)).Return([]*dto.NotebookResponse{
		{Id: nbId, Name: "Work", UserId: userId, Notes: []*dto.NoteSummary{}},
	}, nil)

	status, body := do(t, newTestApp(notebooks, new(mockNoteService)), http.MethodGet, "/api/notebook/v1", userId, "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	list := body["notebooks"].([]interface{})
	assert.Len(t, list, 1)
	assert.Equal(t, nbId.String(), list[0].(map[string]interface{})["id"])
	notebooks.AssertExpectations(t)
}

func TestNotebookController_RequiresToken(t *testing.T) {
	notebooks := new(mockNotebookService)

	status, body := do(t, newTestApp(notebooks, new(mockNoteService)), http.MethodGet, "/api/notebook/v1", uuid.Nil, "")

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])
	notebooks.AssertNotCalled(t, "ListForCurrentUser", mock.Anything)
}

func TestNotebookController_Create(t *testing.T) {
	notebooks := new(mockNotebookService)
	userId := uuid.New()
	newId := uuid.New()
	notebooks.On("Create", sessionFor(userId), mock.MatchedBy(func(req *dto.CreateNotebookRequest) bool {
		return req.Name == "Ideas" && req.UserId == nil
	})).Return(&dto.MutationResponse{Success: true, Message: "Notebook created successfully", Id: &newId}, nil)

	status, body := do(t, newTestApp(notebooks, new(mockNoteService)), http.MethodPost, "/api/notebook/v1", userId, `{"name":"Ideas"}`)

	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Notebook created successfully", body["message"])
	assert.Equal(t, newId.String(), body["id"])
	notebooks.AssertExpectations(t)
}

func TestNotebookController_CreateValidation(t *testing.T) {
	notebooks := new(mockNotebookService)
	app := newTestApp(notebooks, new(mockNoteService))

	status, body := do(t, app, http.MethodPost, "/api/notebook/v1", uuid.New(), `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name is required", body["message"])

	status, _ = do(t, app, http.MethodPost, "/api/notebook/v1", uuid.New(), `{"name":`)
	assert.Equal(t, http.StatusBadRequest, status)

	notebooks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotebookController_CreateForAnotherUserIsForbidden(t *testing.T) {
	notebooks := new(mockNotebookService)
	other := uuid.New()

	status, body := do(t, newTestApp(notebooks, new(mockNoteService)), http.MethodPost, "/api/notebook/v1", uuid.New(),
		`{"name":"Ideas","user_id":"`+other.String()+`"}`)

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, false, body["success"])
	notebooks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotebookController_CreateWithOwnUserId(t *testing.T) {
	notebooks := new(mockNotebookService)
	userId := uuid.New()
	newId := uuid.New()
	notebooks.On("Create", sessionFor(userId), mock.MatchedBy(func(req *dto.CreateNotebookRequest) bool {
		return req.UserId != nil && *req.UserId == userId
	})).Return(&dto.MutationResponse{Success: true, Message: "Notebook created successfully", Id: &newId}, nil)

	status, _ := do(t, newTestApp(notebooks, new(mockNoteService)), http.MethodPost, "/api/notebook/v1", userId,
		`{"name":"Ideas","user_id":"`+userId.String()+`"}`)

	assert.Equal(t, http.StatusCreated, status)
	notebooks.AssertExpectations(t)
}

func TestNotebookController_UpdateTransferIsForbidden(t *testing.T) {
	notebooks := new(mockNotebookService)
	id := uuid.New()

	status, body := do(t, newTestApp(notebooks, new(mockNoteService)), http.MethodPut, "/api/notebook/v1/"+id.String(), uuid.New(),
		`{"user_id":"`+uuid.NewString()+`"}`)

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Cannot assign a notebook to another user", body["message"])
	notebooks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNotebookController_ShowAbsentOmitsNotebook(t *testing.T) {
	notebooks := new(mockNotebookService)
	id := uuid.New()
	notebooks.On("GetById", mock.Anything, id).Return(nil, nil)

	status, body := do(t, newTestApp(notebooks, new(mockNoteService)), http.MethodGet, "/api/notebook/v1/"+id.String(), uuid.New(), "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "notebook")
}

func TestNotebookController_ShowInvalidId(t *testing.T) {
	status, body := do(t, newTestApp(new(mockNotebookService), new(mockNoteService)), http.MethodGet, "/api/notebook/v1/not-a-uuid", uuid.New(), "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid id", body["message"])
}

func TestNotebookController_UpdateNotFound(t *testing.T) {
	notebooks := new(mockNotebookService)
	id := uuid.New()
	notebooks.On("Update", mock.Anything, mock.MatchedBy(func(req *dto.UpdateNotebookRequest) bool {
		return req.Id == id && req.Name != nil && *req.Name == "New"
	})).Return(nil, &service.Failure{Kind: service.KindNotFound, Message: "Notebook not found"})

	status, body := do(t, newTestApp(notebooks, new(mockNoteService)), http.MethodPut, "/api/notebook/v1/"+id.String(), uuid.New(), `{"name":"New"}`)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Notebook not found", body["message"])
}

func TestNotebookController_DeletePersistenceFault(t *testing.T) {
	notebooks := new(mockNotebookService)
	id := uuid.New()
	notebooks.On("Delete", mock.Anything, id).
		Return(nil, &service.Failure{Kind: service.KindPersistenceFault, Message: "Failed to delete notebook"})

	status, body := do(t, newTestApp(notebooks, new(mockNoteService)), http.MethodDelete, "/api/notebook/v1/"+id.String(), uuid.New(), "")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to delete notebook", body["message"])
}
