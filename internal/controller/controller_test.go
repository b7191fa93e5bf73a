package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"knotpad-be/internal/dto"
	"knotpad-be/internal/pkg/serverutils"
	"knotpad-be/internal/pkg/session"
	"knotpad-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-secret"

type mockNotebookService struct {
	mock.Mock
}

func (m *mockNotebookService) ListForCurrentUser(ctx context.Context) ([]*dto.NotebookResponse, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]*dto.NotebookResponse)
	return res, args.Error(1)
}

func (m *mockNotebookService) GetById(ctx context.Context, id uuid.UUID) (*dto.NotebookResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.NotebookResponse)
	return res, args.Error(1)
}

func (m *mockNotebookService) Create(ctx context.Context, req *dto.CreateNotebookRequest) (*dto.MutationResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.MutationResponse)
	return res, args.Error(1)
}

func (m *mockNotebookService) Update(ctx context.Context, req *dto.UpdateNotebookRequest) (*dto.MutationResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.MutationResponse)
	return res, args.Error(1)
}

func (m *mockNotebookService) Delete(ctx context.Context, id uuid.UUID) (*dto.MutationResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.MutationResponse)
	return res, args.Error(1)
}

type mockNoteService struct {
	mock.Mock
}

func (m *mockNoteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.MutationResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.MutationResponse)
	return res, args.Error(1)
}

func (m *mockNoteService) GetById(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.NoteResponse)
	return res, args.Error(1)
}

func (m *mockNoteService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.MutationResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.MutationResponse)
	return res, args.Error(1)
}

func (m *mockNoteService) Delete(ctx context.Context, id uuid.UUID) (*dto.MutationResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.MutationResponse)
	return res, args.Error(1)
}

func newTestApp(notebooks service.INotebookService, notes service.INoteService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler})
	api := app.Group("/api")
	auth := serverutils.JwtMiddleware(testSecret)
	NewNotebookController(notebooks).RegisterRoutes(api, auth)
	NewNoteController(notes).RegisterRoutes(api, auth)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, userId uuid.UUID, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userId != uuid.Nil {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userId.String()}).
			SignedString([]byte(testSecret))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// sessionFor matches a context carrying userId.
func sessionFor(userId uuid.UUID) interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		id, ok := session.UserID(ctx)
		return ok && id == userId
	})
}
