package handlers

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShabiGardezi/crm-hunfa/internal/api/dto"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

func TestValidationErrorUsesJSONFieldNames(t *testing.T) {
	err := validationError(validate.Struct(dto.PasswordChangeRequest{NewPassword: "abc"}))

	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, "required", de.Details["current_password"])
	assert.Equal(t, "min=6", de.Details["new_password"])
}

func TestValidationErrorWithoutFieldErrors(t *testing.T) {
	de := apperrors.ToDomainError(validationError(errors.New("boom")))
	assert.Equal(t, "invalid payload", de.Message)
	assert.Empty(t, de.Details)
}

func TestBindRejectsMalformedBody(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var req dto.LoginRequest
		if err := bind(c, &req); err != nil {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Message)
		}
		return c.SendString(req.UserName)
	})

	cases := map[string]struct {
		body   string
		status int
		text   string
	}{
		"malformed": {body: `{"user_name":`, status: fiber.StatusBadRequest, text: "invalid payload"},
		"missing":   {body: `{"user_name":"amy"}`, status: fiber.StatusBadRequest, text: "validation failed"},
		"ok":        {body: `{"user_name":"amy","password":"secret"}`, status: fiber.StatusOK, text: "amy"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(tc.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.text, string(body))
		})
	}
}

func TestQueryHelpers(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		n, err := queryInt(c, "year")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		page := pageFrom(c)
		status := "none"
		if v := optionalQuery(c, "status"); v != nil {
			status = *v
		}
		return c.JSON(fiber.Map{"year": n, "limit": page.Limit, "status": status})
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/?year=2024&status=%20Open%20", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"year":2024,"limit":20,"status":"Open"}`, string(body))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/?year=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
