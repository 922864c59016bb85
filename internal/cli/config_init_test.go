package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/svccat/internal/cli"
	"github.com/rshade/svccat/internal/config"
)

// setupCLITest isolates the config directory and working directory, and keeps
// logging quiet.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("SVCCAT_HOME", home)
	t.Setenv("SVCCAT_LOG_LEVEL", "error")
	t.Chdir(t.TempDir())
	return home
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInit_CreatesDefaultFile(t *testing.T) {
	home := setupCLITest(t)

	output, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, output, "Configuration initialized successfully")

	path := filepath.Join(home, "config.yaml")
	assert.Contains(t, output, path)

	loaded := config.New()
	require.NoError(t, config.ShallowMergeYAML(loaded, path))
	assert.Equal(t, config.New(), loaded)
}

func TestConfigInit_ExistingFileRequiresForce(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  page_size: 50\n"), 0o600))

	_, err := execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --force to overwrite")

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Catalog.PageSize)
}

func TestConfigInit_ExplicitPath(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "nested", "svccat.yaml")

	output, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.NotContains(t, output, "Warning")
	assert.FileExists(t, path)
}

func TestConfigShow_EffectiveConfig(t *testing.T) {
	home := setupCLITest(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("catalog:\n  page_size: 50\n"), 0o600))
	t.Setenv("SVCCAT_CATALOG_DEBOUNCE", "1s")

	output, err := execute(t, "config", "show", "--endpoint", "https://catalog.example.com/api/services")
	require.NoError(t, err)

	assert.Contains(t, output, "page_size: 50")
	assert.Contains(t, output, "debounce: 1s")
	assert.Contains(t, output, "endpoint: https://catalog.example.com/api/services")
}

func TestConfigShow_InvalidConfigFails(t *testing.T) {
	home := setupCLITest(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("catalog:\n  page_size: 0\n"), 0o600))

	_, err := execute(t, "config", "show")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
