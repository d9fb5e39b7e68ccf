package persistence

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ShabiGardezi/crm-hunfa/internal/config"
)

type execRecorder struct {
	statements []string
	err        error
}

func (e *execRecorder) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	e.statements = append(e.statements, sql)
	return pgconn.CommandTag{}, e.err
}

func TestMigrationNamesSorted(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])
}

func TestRunMigrationsAppliesEmbeddedFiles(t *testing.T) {
	rec := &execRecorder{}
	require.NoError(t, RunMigrations(context.Background(), rec, zap.NewNop()))
	require.NotEmpty(t, rec.statements)
	assert.True(t, strings.Contains(rec.statements[0], "CREATE TABLE IF NOT EXISTS tickets"))
}

func TestRunMigrationsStopsOnError(t *testing.T) {
	rec := &execRecorder{err: errors.New("syntax error")}
	err := RunMigrations(context.Background(), rec, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_init.sql")
	assert.Len(t, rec.statements, 1)
}

func TestPostgresWithoutDSN(t *testing.T) {
	pg := NewPostgres(config.PostgresConfig{}, zap.NewNop())
	_, err := pg.EnsureConnected(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)

	var id string
	assert.ErrorIs(t, pg.QueryRow(context.Background(), "SELECT 1").Scan(&id), ErrNotConfigured)
	assert.ErrorIs(t, pg.Ping(context.Background()), ErrNotConfigured)
	pg.Close()
}
