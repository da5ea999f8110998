package db

import (
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSqlite(t *testing.T) {
	db, err := OpenSqlite(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	var one int
	require.NoError(t, db.QueryRow("SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := OpenRedis(t.Context(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(t.Context(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
}

func TestOpenRedisRejectsBadURL(t *testing.T) {
	_, err := OpenRedis(t.Context(), "not a url")
	assert.Error(t, err)
}
