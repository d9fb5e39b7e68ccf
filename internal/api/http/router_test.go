package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ShabiGardezi/crm-hunfa/internal/api/http/handlers"
	"github.com/ShabiGardezi/crm-hunfa/internal/auth"
	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	"github.com/ShabiGardezi/crm-hunfa/internal/observability"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, body io.Reader) errorBody {
	t.Helper()
	var out errorBody
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func newMiddlewareApp(metrics *observability.Metrics) *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	return app
}

func TestErrorMiddlewareRendersDomainErrors(t *testing.T) {
	metrics := observability.NewMetrics()
	app := newMiddlewareApp(metrics)
	app.Get("/forbidden", func(c *fiber.Ctx) error { return apperrors.NewForbidden("nope") })
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": "t1"})
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("dial tcp: refused") })
	app.Get("/panic", func(c *fiber.Ctx) error { panic("kaboom") })

	cases := []struct {
		path    string
		status  int
		code    string
		message string
	}{
		{"/forbidden", fiber.StatusForbidden, "FORBIDDEN", "nope"},
		{"/missing", fiber.StatusNotFound, "NOT_FOUND", "ticket not found"},
		{"/boom", fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
		{"/panic", fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
		{"/nowhere", fiber.StatusNotFound, "NOT_FOUND", ""},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			body := decodeError(t, resp.Body)
			assert.Equal(t, tc.code, body.Error.Code)
			if tc.message != "" {
				assert.Equal(t, tc.message, body.Error.Message)
			}
		})
	}

	snap := metrics.Snapshot()
	assert.NotEmpty(t, snap.Errors)
	assert.Len(t, snap.Requests, len(cases))
}

type pingStub struct{ err error }

func (p pingStub) Ping(context.Context) error { return p.err }

type userStub map[string]*domain.User

func (s userStub) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func newRoutedApp(t *testing.T, db pingStub, users userStub) (*fiber.App, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("secret", 5)
	app := newMiddlewareApp(observability.NewMetrics())
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("crm", "test", db, nil, observability.NewMetrics()),
		Auth:           handlers.NewAuthHandler(nil),
		Users:          handlers.NewUsersHandler(nil),
		Tickets:        handlers.NewTicketsHandler(nil, nil),
		Businesses:     handlers.NewBusinessesHandler(nil),
		Inventory:      handlers.NewInventoryHandler(nil),
		Payments:       handlers.NewPaymentsHandler(nil),
		Activity:       handlers.NewActivityHandler(nil),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, users),
	})
	return app, tokens
}

func TestHealthRoutes(t *testing.T) {
	app, _ := newRoutedApp(t, pingStub{}, nil)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	down, _ := newRoutedApp(t, pingStub{err: errors.New("no pool")}, nil)
	resp, err = down.Test(httptest.NewRequest(fiber.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", decodeError(t, resp.Body).Error.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _ := newRoutedApp(t, pingStub{}, nil)
	for _, path := range []string{"/tickets", "/users", "/analytics/tickets", "/activity", "/departments"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestRoleGatedGroups(t *testing.T) {
	emp := &domain.User{ID: "u-emp", UserName: "emp", Role: domain.RoleEmployee}
	app, tokens := newRoutedApp(t, pingStub{}, userStub{emp.ID: emp})
	token, err := tokens.GenerateToken(emp)
	require.NoError(t, err)

	for _, path := range []string{"/users", "/activity", "/inventory/domain"} {
		req := httptest.NewRequest(fiber.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token.Value)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, path)
	}
}

func TestLoginValidatesPayload(t *testing.T) {
	app, _ := newRoutedApp(t, pingStub{}, nil)
	req := httptest.NewRequest(fiber.MethodPost, "/auth/login", strings.NewReader(`{"user_name":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeError(t, resp.Body)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Equal(t, "required", body.Error.Details["user_name"])
	assert.Equal(t, "required", body.Error.Details["password"])
}

func TestRateLimiterDisabledWithoutRedis(t *testing.T) {
	rl := NewRateLimiter(nil, "login", 1, zap.NewNop())
	app := fiber.New()
	app.Get("/", rl.Handler(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}
}
