package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("ai.model", "llama3-8b-8192"))
	require.NoError(t, store.Set("retrieval.context_top_k", 5))
	require.NoError(t, store.Set("intent.neutral_confidence", 0.5))

	assert.Equal(t, "llama3-8b-8192", store.GetString("ai.model"))
	assert.Equal(t, 5, store.GetInt("retrieval.context_top_k"))
	assert.Equal(t, 0.5, store.GetFloat("intent.neutral_confidence"))
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
	assert.Zero(t, store.GetFloat("nope"))
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("weather.api_key", "secret"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "secret", reloaded.GetString("weather.api_key"))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[ai]\nmodel = \"test-model\"\n\n[weather]\ntimeout_seconds = 10\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "test-model", store.GetString("ai.model"))
	assert.Equal(t, 10, store.GetInt("weather.timeout_seconds"))
}
