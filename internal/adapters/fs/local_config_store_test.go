package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalConfigStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dataDir := filepath.Join(t.TempDir(), ".safeguard")
	store := NewLocalConfigStoreAdapter(&config.RuntimeConfig{DataDir: dataDir})

	assert.False(t, store.Exists())
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLocalConfig(), loaded)

	require.NoError(t, store.Save(ctx, &config.LocalConfig{Network: "sepolia", SafeGuard: "0x5FbDB2315678afecb367f032d93F642f64180aa3"}))
	assert.True(t, store.Exists())

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sepolia", loaded.Network)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", loaded.SafeGuard)

	entries, err := os.ReadDir(dataDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no staging files are left behind")
	assert.Equal(t, "config.local.json", entries[0].Name())
}

func TestLocalConfigStore_CorruptFile(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.local.json"), []byte("{"), 0644))

	_, err := NewLocalConfigStoreAdapter(&config.RuntimeConfig{DataDir: dataDir}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
