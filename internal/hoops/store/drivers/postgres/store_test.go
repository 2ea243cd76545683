package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/internal/hoops/store"
	"github.com/aussiebroadwan/hoops/internal/hoops/store/drivers/postgres"
	"github.com/aussiebroadwan/hoops/pkg/idx"
)

// setupPostgres starts a throwaway postgres and returns a migrated store.
func setupPostgres(t *testing.T) store.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "hoops",
				"POSTGRES_PASSWORD": "hoops",
				"POSTGRES_DB":       "hoops",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	url := fmt.Sprintf("postgres://hoops:hoops@%s:%s/hoops?sslmode=disable", host, port.Port())
	s, err := postgres.NewStore(ctx, url)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPostgresStore(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	acc := domain.Account{ID: idx.New().String(), Email: "Ann@Example.com", PasswordHash: "h", IsActive: true}
	require.NoError(t, s.Accounts().CreateAccount(ctx, acc))

	dup := acc
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Accounts().CreateAccount(ctx, dup), store.ErrAlreadyExists)

	got, err := s.Accounts().GetAccountByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.True(t, got.IsActive)

	require.NoError(t, s.Accounts().SetAccountActive(ctx, acc.ID, false))
	got, err = s.Accounts().GetAccountByID(ctx, acc.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	now := time.Now().UnixMilli()
	for i, score := range []int64{5, 50, 25} {
		require.NoError(t, s.Entries().CreateEntry(ctx, domain.Entry{
			ID: idx.New().String(), Name: fmt.Sprintf("p%d", i), Score: score, Timestamp: now + int64(i),
		}))
	}

	top, err := s.Entries().ListTopEntries(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.EqualValues(t, 50, top[0].Score)
	require.EqualValues(t, 25, top[1].Score)

	require.NoError(t, s.Entries().DeleteEntry(ctx, top[0].ID))
	require.ErrorIs(t, s.Entries().DeleteEntry(ctx, top[0].ID), store.ErrNotFound)
}
