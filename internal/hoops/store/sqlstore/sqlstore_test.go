package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDialectRebind(t *testing.T) {
	q := `UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?`

	require.Equal(t, q, Dialect{}.Rebind(q))
	require.Equal(t,
		`UPDATE users SET is_active = $1, updated_at = $2 WHERE id = $3`,
		Dialect{Numbered: true}.Rebind(q))
}
