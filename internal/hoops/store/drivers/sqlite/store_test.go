package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/internal/hoops/store"
	"github.com/aussiebroadwan/hoops/internal/hoops/store/drivers/sqlite"
	"github.com/aussiebroadwan/hoops/pkg/idx"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "hoops.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMigrationsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	list, err := s.Accounts().ListAccounts(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	acc := domain.Account{
		ID:           idx.New().String(),
		Email:        "  Ann@Example.COM ",
		PasswordHash: "$2a$04$hash",
		IsActive:     true,
	}
	require.NoError(t, s.Accounts().CreateAccount(ctx, acc))

	got, err := s.Accounts().GetAccountByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.Equal(t, acc.ID, got.ID)
	require.Equal(t, "ann@example.com", got.Email)
	require.True(t, got.IsActive)
	require.False(t, got.CreatedAt.IsZero())

	// Lookup is case-insensitive through normalization.
	_, err = s.Accounts().GetAccountByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)

	dup := acc
	dup.ID = idx.New().String()
	dup.Email = "ann@example.com"
	require.ErrorIs(t, s.Accounts().CreateAccount(ctx, dup), store.ErrAlreadyExists)

	require.NoError(t, s.Accounts().SetAccountActive(ctx, acc.ID, false))
	got, err = s.Accounts().GetAccountByID(ctx, acc.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	require.NoError(t, s.Accounts().UpdatePasswordHash(ctx, acc.ID, "$2a$04$other"))
	got, err = s.Accounts().GetAccountByID(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, "$2a$04$other", got.PasswordHash)

	require.ErrorIs(t, s.Accounts().SetAccountActive(ctx, "missing", true), store.ErrNotFound)
	_, err = s.Accounts().GetAccountByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	list, err = s.Accounts().ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestEntries_Ranking(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	seed := []domain.Entry{
		{Name: "low", Score: 10, Timestamp: base},
		{Name: "top", Score: 300, MaxCombo: 9, Timestamp: base + 1},
		{Name: "tie-late", Score: 150, Timestamp: base + 20},
		{Name: "tie-early", Score: 150, Timestamp: base + 10},
		{Name: "zero", Score: 0, Timestamp: base + 30},
	}
	for _, e := range seed {
		e.ID = idx.New().String()
		e.CreatedAt = time.Now()
		require.NoError(t, s.Entries().CreateEntry(ctx, e))
	}

	top, err := s.Entries().ListTopEntries(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, []string{"top", "tie-early", "tie-late"}, []string{top[0].Name, top[1].Name, top[2].Name})
	require.EqualValues(t, 9, top[0].MaxCombo)

	all, err := s.Entries().ListTopEntries(ctx, 100)
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.Equal(t, "zero", all[4].Name)

	got, err := s.Entries().GetEntryByID(ctx, top[0].ID)
	require.NoError(t, err)
	require.Equal(t, top[0], got)

	require.NoError(t, s.Entries().DeleteEntry(ctx, top[0].ID))
	_, err = s.Entries().GetEntryByID(ctx, top[0].ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Entries().DeleteEntry(ctx, top[0].ID), store.ErrNotFound)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Entries().CreateEntry(ctx, domain.Entry{ID: "rolled-back", Name: "x", Score: 1}))
		return boom
	})
	require.ErrorIs(t, err, boom)
	_, err = s.Entries().GetEntryByID(ctx, "rolled-back")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.Panics(t, func() {
		_ = s.WithTx(ctx, func(tx store.Tx) error {
			require.NoError(t, tx.Entries().CreateEntry(ctx, domain.Entry{ID: "panicked", Name: "x", Score: 1}))
			panic("boom")
		})
	})
	// The connection was released; the store is still usable.
	_, err = s.Entries().GetEntryByID(ctx, "panicked")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Entries().CreateEntry(ctx, domain.Entry{ID: "kept", Name: "x", Score: 1})
	})
	require.NoError(t, err)
	_, err = s.Entries().GetEntryByID(ctx, "kept")
	require.NoError(t, err)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		return tx.WithTx(ctx, func(store.Tx) error { return nil })
	})
	require.Error(t, err)
}
