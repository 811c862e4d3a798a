// Package config handles the XDG configuration directory, the settings file
// and the artifact path.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "minitask"

	// SettingsFile is the optional YAML settings filename.
	SettingsFile = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// ArtifactEnv overrides the artifact path.
	ArtifactEnv = "MINITASK_ARTIFACT"
)

// Output modes.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Settings is the content of config.yaml. Every field is optional.
type Settings struct {
	// Output is the default output mode: "text" or "json".
	Output string `yaml:"output"`

	// LogFile sends logs to a rotated file instead of stderr.
	LogFile string `yaml:"log_file"`

	// Artifact overrides the artifact path.
	Artifact string `yaml:"artifact"`

	// ExportList is the Google Tasks list used by export when --list is not given.
	ExportList string `yaml:"export_list"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Artifact is the artifact path given on the command line, if any.
	Artifact string

	// Output is the resolved output mode.
	Output string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings is the parsed settings file.
	Settings Settings
}

// New creates a new Config with the default or specified config directory
// and loads the settings file from it.
// If configDir is empty, uses XDG_CONFIG_HOME/minitask or $HOME/.config/minitask.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	settings, err := LoadSettings(cfg.SettingsPath())
	if err != nil {
		return nil, err
	}
	cfg.Settings = settings
	cfg.Output = settings.Output
	if cfg.Output == "" {
		cfg.Output = OutputText
	}
	return cfg, nil
}

// LoadSettings reads a settings file. A missing file yields zero Settings.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	s.Output = strings.ToLower(strings.TrimSpace(s.Output))
	switch s.Output {
	case "", OutputText, OutputJSON:
	default:
		return s, fmt.Errorf("invalid %s: unknown output mode: %s", SettingsFile, s.Output)
	}
	return s, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ArtifactPath returns the file holding the task data.
// Precedence: --artifact, $MINITASK_ARTIFACT, settings, the running executable.
func (c *Config) ArtifactPath() (string, error) {
	for _, p := range []string{c.Artifact, os.Getenv(ArtifactEnv), c.Settings.Artifact} {
		if p != "" {
			return filepath.Abs(p)
		}
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	// Rename must replace the real file, not a symlink pointing at it.
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	return resolved, nil
}

// JSON reports whether output should be JSON.
func (c *Config) JSON() bool {
	return c.Output == OutputJSON
}

// SettingsPath returns the path to the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
