//go:build integration

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gokatarajesh/trivia-api/internal/db/migrate"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// startPostgres runs a throwaway Postgres, applies the migrations and returns a pool.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	skipIfNoDocker(t)
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "trivia",
				"POSTGRES_PASSWORD": "trivia",
				"POSTGRES_DB":       "trivia",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	dsn := fmt.Sprintf("host=%s port=%s user=trivia password=trivia dbname=trivia sslmode=disable", host, port.Port())

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migrate.Run(ctx, db, migrate.CommandUp))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresRepositories(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	queries := sqlcgen.New(pool)
	questions := NewQuestionRepository(queries)
	categories := NewCategoryRepository(queries)
	txm := NewTxManager(pool)

	t.Run("seeded categories", func(t *testing.T) {
		rows, err := categories.List(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 6)
		assert.Equal(t, sqlcgen.Category{ID: 1, Type: "Science"}, rows[0])

		_, err = categories.Get(ctx, 1000)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("list ordered by id", func(t *testing.T) {
		rows, err := questions.List(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 16)
		for i := 1; i < len(rows); i++ {
			assert.Less(t, rows[i-1].ID, rows[i].ID)
		}
	})

	t.Run("search is case-insensitive and literal", func(t *testing.T) {
		rows, err := questions.Search(ctx, "SOCCER")
		require.NoError(t, err)
		assert.Len(t, rows, 2)

		rows, err = questions.Search(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, rows)

		rows, err = questions.Search(ctx, "")
		require.NoError(t, err)
		assert.Len(t, rows, 16)
	})

	t.Run("list by category", func(t *testing.T) {
		rows, err := questions.ListByCategory(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("insert and delete in transactions", func(t *testing.T) {
		var created sqlcgen.Question
		err := txm.InTx(ctx, func(repo *QuestionRepository) error {
			var err error
			created, err = repo.Insert(ctx, sqlcgen.InsertQuestionParams{Question: "Is 100% integration?", Answer: "Yes", Category: 1, Difficulty: 2})
			return err
		})
		require.NoError(t, err)

		rows, err := questions.Search(ctx, "100%")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, created.ID, rows[0].ID)

		err = txm.InTx(ctx, func(repo *QuestionRepository) error {
			n, err := repo.Delete(ctx, created.ID)
			assert.EqualValues(t, 1, n)
			return err
		})
		require.NoError(t, err)

		_, err = questions.Get(ctx, created.ID)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("rollback discards writes", func(t *testing.T) {
		boom := errors.New("boom")
		err := txm.InTx(ctx, func(repo *QuestionRepository) error {
			if _, err := repo.Insert(ctx, sqlcgen.InsertQuestionParams{Question: "rolled back", Answer: "a", Category: 1, Difficulty: 1}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		rows, err := questions.Search(ctx, "rolled back")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("unknown category violates foreign key", func(t *testing.T) {
		err := txm.InTx(ctx, func(repo *QuestionRepository) error {
			_, err := repo.Insert(ctx, sqlcgen.InsertQuestionParams{Question: "q", Answer: "a", Category: 99, Difficulty: 1})
			return err
		})
		assert.Error(t, err)
	})
}
