package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	serrors "github.com/jh3/agent-session-manager/internal/errors"
)

const (
	appName   = "agent-session-manager"
	envPrefix = "ASM_"
)

// Window defines a tmux window configuration
type Window struct {
	Name    string `yaml:"name" koanf:"name"`
	Command string `yaml:"command,omitempty" koanf:"command"`
}

// Tmux contains tmux-related configuration
type Tmux struct {
	Windows []Window `yaml:"windows" koanf:"windows"`
}

// Log controls the log file
type Log struct {
	Level string `yaml:"level" koanf:"level"`
	File  string `yaml:"file,omitempty" koanf:"file"`
}

// Config holds all configuration options
type Config struct {
	ExportPath string `yaml:"export_path" koanf:"export_path"`
	Log        Log    `yaml:"log" koanf:"log"`
	Tmux       Tmux   `yaml:"tmux" koanf:"tmux"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ExportPath: "~/claude-exports",
		Log: Log{
			Level: "info",
		},
		Tmux: Tmux{
			Windows: []Window{
				{Name: "logs"},
				{Name: "edit"},
				{Name: "scratch"},
			},
		},
	}
}

// Path returns the config file to use. An explicit path wins, then
// AGENT_CONFIG_DIR, then XDG_CONFIG_HOME, then ~/.config.
func Path(override string) string {
	if override != "" {
		return override
	}
	if dir := os.Getenv("AGENT_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "config.yaml")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName, "config.yaml")
}

// DataDir returns the session data root: the explicit override, then
// CLAUDE_DATA_DIR, then ~/.claude.
func DataDir(override string) string {
	if override != "" {
		return expandHome(override)
	}
	if dir := os.Getenv("CLAUDE_DATA_DIR"); dir != "" {
		return expandHome(dir)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude")
}

// Load reads the config file at path, then applies ASM_* environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	return load(path, true)
}

// LoadFile reads only the config file, for callers that save it back.
func LoadFile(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, withEnv bool) (*Config, error) {
	const op serrors.Op = "config.Load"
	k := koanf.New(".")

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return nil, serrors.E(op, serrors.KindConfig, path, err)
		}
	case !os.IsNotExist(err):
		return nil, serrors.FS(op, path, err)
	}

	// ASM_EXPORT_PATH -> export_path, ASM_LOG_LEVEL -> log.level
	if withEnv {
		if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
			return nil, serrors.E(op, serrors.KindConfig, "environment", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, serrors.E(op, serrors.KindConfig, path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills the fields the file and environment left unset. Tmux
// windows are only defaulted when the key is absent, so an explicit empty
// list stays empty.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.ExportPath == "" {
		cfg.ExportPath = def.ExportPath
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Tmux.Windows == nil {
		cfg.Tmux.Windows = def.Tmux.Windows
	}
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

// Save writes the config as YAML, creating its directory
func (c *Config) Save(path string) error {
	const op serrors.Op = "config.Save"

	data, err := yamlv3.Marshal(c)
	if err != nil {
		return serrors.E(op, serrors.KindConfig, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return serrors.FS(op, filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return serrors.FS(op, path, err)
	}
	return nil
}

// ResolvedExportPath returns ExportPath with a leading ~ expanded
func (c *Config) ResolvedExportPath() string {
	return expandHome(c.ExportPath)
}

// LogPath returns the log file, defaulting to logs/ next to the config file
func (c *Config) LogPath(configPath string) string {
	if c.Log.File != "" {
		return expandHome(c.Log.File)
	}
	return filepath.Join(filepath.Dir(configPath), "logs", appName+".log")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
