package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"knotpad-be/internal/bootstrap"
	"knotpad-be/internal/config"
	"knotpad-be/internal/dto"
	"knotpad-be/internal/handler"
	"knotpad-be/internal/pkg/logger"
	"knotpad-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotebookController struct{}

func (stubNotebookController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/notebook/v1")
	h.Use(auth)
	h.Get("", func(ctx *fiber.Ctx) error { return ctx.JSON(dto.ListNotebooksResponse{Success: true}) })
}
func (stubNotebookController) GetAll(*fiber.Ctx) error { return nil }
func (stubNotebookController) Create(*fiber.Ctx) error { return nil }
func (stubNotebookController) Show(*fiber.Ctx) error   { return nil }
func (stubNotebookController) Update(*fiber.Ctx) error { return nil }
func (stubNotebookController) Delete(*fiber.Ctx) error { return nil }

type stubNoteController struct{ stubNotebookController }

func (stubNoteController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {}

func TestServer_ApiResponsesAreNotStored(t *testing.T) {
	cfg := &config.Config{
		App:  config.AppConfig{CorsAllowedOrigins: "http://localhost:3001"},
		Auth: config.AuthConfig{JWTSecret: "s"},
	}
	container := &bootstrap.Container{
		NotebookController: stubNotebookController{},
		NoteController:     stubNoteController{},
	}
	srv := New(cfg, container)

	resp, err := srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/api/notebook/v1", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestServer_ChangeStreamRequiresToken(t *testing.T) {
	cfg := &config.Config{
		App:  config.AppConfig{CorsAllowedOrigins: "http://localhost:3001"},
		Auth: config.AuthConfig{JWTSecret: "s"},
	}
	log := logger.NewNopLogger()
	container := &bootstrap.Container{
		NotebookController:  stubNotebookController{},
		NoteController:      stubNoteController{},
		ChangeStreamHandler: handler.NewChangeStreamHandler(websocket.NewHub(log), "s", log),
	}
	srv := New(cfg, container)

	resp, err := srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/api/ws/changes", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
