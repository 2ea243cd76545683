package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Sub-repositories are reached through it so a Tx can hand
// out the same repos bound to the transaction.
type Store interface {
	Accounts() Accounts
	Entries() Entries

	ApplyMigrations() error

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back on error or panic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByEmail looks up by normalized email.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// CreateAccount returns ErrAlreadyExists when the email is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	// SetAccountActive toggles is_active and bumps updated_at.
	SetAccountActive(ctx context.Context, id string, active bool) error

	// UpdatePasswordHash replaces password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, id string, hash string) error

	// ListAccounts returns every account ordered by email.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

type Entries interface {
	CreateEntry(ctx context.Context, e domain.Entry) error

	GetEntryByID(ctx context.Context, id string) (domain.Entry, error)

	// ListTopEntries orders by score desc, then timestamp asc, then id.
	ListTopEntries(ctx context.Context, limit int) ([]domain.Entry, error)

	// DeleteEntry returns ErrNotFound when no row was removed.
	DeleteEntry(ctx context.Context, id string) error
}
