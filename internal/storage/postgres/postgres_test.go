package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/proflevels/internal/storage/postgres"
	"github.com/cory-johannsen/proflevels/internal/testutil"
)

func TestPool_HealthAndApplicationName(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	ctx := context.Background()

	require.NoError(t, pc.Pool.Health(ctx, 5*time.Second))

	var name string
	require.NoError(t, pc.RawPool.QueryRow(ctx, `SELECT current_setting('application_name')`).Scan(&name))
	assert.Equal(t, "proflevels", name)
}

func TestNewPool_UnreachableDatabase(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	cfg := pc.Config
	cfg.Port = 1

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := postgres.NewPool(ctx, cfg)
	assert.Error(t, err)
}
