package handler

import (
	"net/http/httptest"
	"testing"

	"knotpad-be/internal/pkg/logger"
	"knotpad-be/internal/pkg/serverutils"
	internalWS "knotpad-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "stream-secret"

func newStreamApp() *fiber.App {
	log := logger.NewNopLogger()
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler})
	NewChangeStreamHandler(internalWS.NewHub(log), testSecret, log).RegisterRoutes(app)
	return app
}

func TestChangeStreamHandler_Handshake(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": uuid.NewString()}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	cases := []struct {
		name   string
		target string
		header string
		status int
	}{
		{"missing token", "/ws/changes", "", fiber.StatusUnauthorized},
		{"bad token", "/ws/changes?token=garbage", "", fiber.StatusUnauthorized},
		{"query token without upgrade", "/ws/changes?token=" + token, "", fiber.StatusUpgradeRequired},
		{"header token without upgrade", "/ws/changes", "Bearer " + token, fiber.StatusUpgradeRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := newStreamApp().Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
