package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/jh3/agent-session-manager/internal/errors"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
export_path: /srv/exports
log:
  level: debug
tmux:
  windows:
    - name: shell
    - name: tests
      command: make test
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/exports", cfg.ExportPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []Window{{Name: "shell"}, {Name: "tests", Command: "make test"}}, cfg.Tmux.Windows)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ASM_EXPORT_PATH", "/env/exports")
	t.Setenv("ASM_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/env/exports", cfg.ExportPath)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	t.Setenv("ASM_EXPORT_PATH", "/env/exports")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "~/claude-exports", cfg.ExportPath)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export_path: [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, serrors.KindConfig, serrors.GetKind(err))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.ExportPath = "/tmp/out"

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPathPrecedence(t *testing.T) {
	t.Setenv("AGENT_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", appName, "config.yaml"), Path(""))

	t.Setenv("AGENT_CONFIG_DIR", "/agent")
	assert.Equal(t, filepath.Join("/agent", "config.yaml"), Path(""))

	assert.Equal(t, "/explicit.yaml", Path("/explicit.yaml"))
}

func TestDataDir(t *testing.T) {
	t.Setenv("CLAUDE_DATA_DIR", "/data")
	assert.Equal(t, "/data", DataDir(""))
	assert.Equal(t, "/flag", DataDir("/flag"))

	t.Setenv("CLAUDE_DATA_DIR", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".claude"), DataDir(""))
}

func TestResolvedExportPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join(home, "claude-exports"), cfg.ResolvedExportPath())

	cfg.ExportPath = "/abs/path"
	assert.Equal(t, "/abs/path", cfg.ResolvedExportPath())
}

func TestLogPath(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("/cfg", "logs", appName+".log"), cfg.LogPath("/cfg/config.yaml"))

	cfg.Log.File = "/var/log/asm.log"
	assert.Equal(t, "/var/log/asm.log", cfg.LogPath("/cfg/config.yaml"))
}
