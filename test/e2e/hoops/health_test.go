package hoops_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSystemEndpoints(t *testing.T) {
	client := setupContainer(t, nil)

	root, err := client.Root(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Neon Hoops API", root.Message)

	live, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)

	health, err := client.GetHealth(t.Context())
	require.NoError(t, err)
	require.Equal(t, "healthy", health.Status)
}
