package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosa-dev/rosa/internal/config"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, runInit(dir, "feed.csv", ":9000"))

	cfg, err := config.Load(filepath.Join(dir, config.DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, "feed.csv", cfg.Source)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.NotEmpty(t, cfg.Categories)
	assert.Equal(t, "Groceries", cfg.Categories[0].Name)
}

func TestRunInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, runInit(dir, "feed.csv", ":9000"))
	err := runInit(dir, "other.csv", ":9001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
