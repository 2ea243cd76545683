package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/internal/hoops/store"
)

const accountColumns = `id, email, password_hash, is_active, created_at, updated_at`

type accountsRepo struct {
	q   DBTX
	d   Dialect
	now func() time.Time
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		a                domain.Account
		created, updated int64
	)
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.IsActive, &created, &updated); err != nil {
		return domain.Account{}, err
	}
	a.CreatedAt = fromMillis(created)
	a.UpdatedAt = fromMillis(updated)
	return a, nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		r.d.Rebind(`SELECT `+accountColumns+` FROM users WHERE email = ?`),
		domain.NormalizeEmail(email),
	)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		r.d.Rebind(`SELECT `+accountColumns+` FROM users WHERE id = ?`), id)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := r.now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}

	_, err := r.q.ExecContext(ctx,
		r.d.Rebind(`INSERT INTO users (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?)`),
		a.ID, domain.NormalizeEmail(a.Email), a.PasswordHash, a.IsActive,
		toMillis(a.CreatedAt), toMillis(a.UpdatedAt),
	)
	if err != nil {
		if r.d.IsUniqueViolation != nil && r.d.IsUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *accountsRepo) SetAccountActive(ctx context.Context, id string, active bool) error {
	res, err := r.q.ExecContext(ctx,
		r.d.Rebind(`UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?`),
		active, toMillis(r.now()), id,
	)
	return affectedOne(res, err)
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	res, err := r.q.ExecContext(ctx,
		r.d.Rebind(`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`),
		hash, toMillis(r.now()), id,
	)
	return affectedOne(res, err)
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+accountColumns+` FROM users ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
