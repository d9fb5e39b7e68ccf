package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorKeepsDomainErrors(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewForbidden("nope"))

	de := ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, "FORBIDDEN", de.Code)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	de := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}

func TestToDomainErrorMapsUniqueViolation(t *testing.T) {
	de := ToDomainError(&pgconn.PgError{Code: "23505", ConstraintName: "users_user_name_key"})
	assert.Equal(t, "CONFLICT", de.Code)
	assert.Equal(t, "users_user_name_key", de.Details["constraint"])
}

func TestToDomainErrorHidesInternalCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:5432: connection refused")
	de := ToDomainError(cause)

	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, "internal server error", de.Message)
	assert.ErrorIs(t, de, cause)
}

func TestMapErrorNil(t *testing.T) {
	assert.NoError(t, MapError(nil))
	assert.Nil(t, ToDomainError(nil))
}

func TestNotFoundOr(t *testing.T) {
	err := NotFoundOr(pgx.ErrNoRows, "ticket", map[string]any{"ticket_id": "t1"})
	assert.True(t, IsCode(err, "NOT_FOUND"))
	assert.EqualError(t, err, "ticket not found")

	err = NotFoundOr(errors.New("boom"), "ticket", nil)
	assert.True(t, IsCode(err, "INTERNAL_ERROR"))
}
