package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShabiGardezi/crm-hunfa/internal/access"
	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

type userFinderStub map[string]*domain.User

func (s userFinderStub) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func newTestApp(t *testing.T, users userFinderStub, handlers ...fiber.Handler) (*fiber.App, *TokenManager) {
	t.Helper()
	tm := NewTokenManager("secret", 5)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	chain := append([]fiber.Handler{NewAuthMiddleware(tm, users).Handle}, handlers...)
	chain = append(chain, func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString(p.User.UserName)
	})
	app.Get("/me", chain...)
	return app, tm
}

func TestAuthMiddleware(t *testing.T) {
	lead := &domain.User{ID: "u1", UserName: "lead", Role: domain.RoleTeamLead}
	app, tm := newTestApp(t, userFinderStub{"u1": lead})
	valid, err := tm.GenerateToken(lead)
	require.NoError(t, err)
	ghost, err := tm.GenerateToken(&domain.User{ID: "gone"})
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"unknown user", "Bearer " + ghost.Value, http.StatusUnauthorized},
		{"valid", "Bearer " + valid.Value, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRequireOperation(t *testing.T) {
	employee := &domain.User{ID: "e1", UserName: "emp", Role: domain.RoleEmployee}
	app, tm := newTestApp(t, userFinderStub{"e1": employee}, RequireOperation(access.OpCreateUser))
	tok, err := tm.GenerateToken(employee)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Value)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPrincipalIdentity(t *testing.T) {
	p := &Principal{User: &domain.User{ID: "u1", UserName: "x", Role: domain.RoleAdmin, DepartmentID: "d", DepartmentName: domain.DepartmentAdmin}}
	id := p.Identity()
	require.NotNil(t, id)
	assert.Equal(t, domain.RoleAdmin, id.Role)
	assert.Nil(t, (*Principal)(nil).Identity())
}
