package sqlstore

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
)

const entryColumns = `id, name, score, max_combo, "timestamp", created_at`

type entriesRepo struct {
	q DBTX
	d Dialect
}

func scanEntry(row rowScanner) (domain.Entry, error) {
	var (
		e       domain.Entry
		created int64
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Score, &e.MaxCombo, &e.Timestamp, &created); err != nil {
		return domain.Entry{}, err
	}
	e.CreatedAt = fromMillis(created)
	return e, nil
}

func (r *entriesRepo) CreateEntry(ctx context.Context, e domain.Entry) error {
	_, err := r.q.ExecContext(ctx,
		r.d.Rebind(`INSERT INTO leaderboard (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?)`),
		e.ID, e.Name, e.Score, e.MaxCombo, e.Timestamp, toMillis(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *entriesRepo) GetEntryByID(ctx context.Context, id string) (domain.Entry, error) {
	row := r.q.QueryRowContext(ctx,
		r.d.Rebind(`SELECT `+entryColumns+` FROM leaderboard WHERE id = ?`), id)
	e, err := scanEntry(row)
	if err != nil {
		return domain.Entry{}, mapNotFound(err)
	}
	return e, nil
}

func (r *entriesRepo) ListTopEntries(ctx context.Context, limit int) ([]domain.Entry, error) {
	rows, err := r.q.QueryContext(ctx,
		r.d.Rebind(`SELECT `+entryColumns+` FROM leaderboard
			ORDER BY score DESC, "timestamp" ASC, id ASC
			LIMIT ?`),
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]domain.Entry, 0, limit)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *entriesRepo) DeleteEntry(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, r.d.Rebind(`DELETE FROM leaderboard WHERE id = ?`), id)
	return affectedOne(res, err)
}
