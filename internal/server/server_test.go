package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"snsapp/internal/config"
	"snsapp/internal/models"
	"snsapp/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp builds the full route stack on an in-memory database. The
// Prometheus collector registers globally, so the binary builds one app and
// tests share it.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		Port:              "8080",
		AIServerURL:       "http://localhost:8000",
		BotPostCadence:    5,
		SideEffectWorkers: 1,
		Env:               "test",
	}
	srv, err := NewServerWithDeps(cfg, testutil.NewDB(t), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	app := fiber.New()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)
	return app
}

func TestPageQueryValidation(t *testing.T) {
	app := newTestApp(t)

	errorCode := func(t *testing.T, resp *http.Response) string {
		t.Helper()
		defer resp.Body.Close()
		var body models.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body.Code
	}

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"No params serves first page", "/api/posts", http.StatusOK, ""},
		{"Numeric cursor and limit", "/api/posts?cursor=10&limit=5", http.StatusOK, ""},
		{"Garbage cursor rejected", "/api/posts?cursor=abc", http.StatusBadRequest, models.CodeInvalidArgument},
		{"Negative cursor rejected", "/api/posts?cursor=-3", http.StatusBadRequest, models.CodeInvalidArgument},
		{"Zero cursor rejected", "/api/posts?cursor=0", http.StatusBadRequest, models.CodeInvalidArgument},
		{"Garbage limit rejected", "/api/posts?limit=abc", http.StatusBadRequest, models.CodeInvalidArgument},
		{"Out-of-range limit rejected", "/api/posts?limit=0", http.StatusBadRequest, models.CodeInvalidArgument},
		{"Garbage cursor on nested listing", "/api/users/1/followers?cursor=abc", http.StatusBadRequest, models.CodeInvalidArgument},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, resp))
			} else {
				_ = resp.Body.Close()
			}
		})
	}
}
