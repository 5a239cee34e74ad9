package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultApplications are the executables that keep profile files open.
var DefaultApplications = []string{
	"WINWORD.EXE",
	"EXCEL.EXE",
	"POWERPNT.EXE",
	"OUTLOOK.EXE",
	"VISIO.EXE",
	"MSACCESS.EXE",
	"ONENOTE.EXE",
	"MSPUB.EXE",
}

// DefaultExclude are file patterns never copied in either direction.
var DefaultExclude = []string{"*.tmp"}

// Config represents the main configuration for profilesave.
type Config struct {
	BaseDir      string        `toml:"base_dir"`
	LogDir       string        `toml:"log_dir"`
	BackupRoot   string        `toml:"backup_root,omitempty"`   // used when no path is given
	DefaultItems []string      `toml:"default_items,omitempty"` // used when no items are given; empty means all
	Copy         CopyConfig    `toml:"copy"`
	Guard        GuardConfig   `toml:"guard"`
	History      HistoryConfig `toml:"history"`
}

// CopyConfig holds settings for the copy engine.
type CopyConfig struct {
	Exclude []string `toml:"exclude"`
}

// GuardConfig lists the applications that must not run during a restore.
type GuardConfig struct {
	Applications []string `toml:"applications"`
}

// HistoryConfig represents configuration for the run history store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type HistoryConfig struct {
	Type    string `toml:"type"`               // "sqlite", "memory" or "none"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// NewConfig creates a new Config with defaults rooted at baseDir.
func NewConfig(baseDir string) *Config {
	cfg := &Config{}
	cfg.applyDefaults(baseDir)
	return cfg
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
// Keys missing from the file are filled in by applyDefaults, rooted at the
// file's base_dir or at baseDir when the file does not set one.
func ReadFromFile(path string, baseDir string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	cfg.applyDefaults(baseDir)
	return cfg, nil
}

// applyDefaults fills every unset field, deriving directories from BaseDir.
func (c *Config) applyDefaults(baseDir string) {
	if c.BaseDir == "" {
		c.BaseDir = baseDir
	}
	if c.LogDir == "" {
		c.LogDir = filepath.Join(c.BaseDir, "log")
	}
	if c.Copy.Exclude == nil {
		c.Copy.Exclude = append([]string{}, DefaultExclude...)
	}
	if c.Guard.Applications == nil {
		c.Guard.Applications = append([]string{}, DefaultApplications...)
	}
	if c.History.Type == "" {
		c.History.Type = "sqlite"
	}
	if c.History.DataDir == "" {
		c.History.DataDir = c.BaseDir
	}
}

// Load reads the config at path, or returns the defaults when no file exists.
func Load(path string, baseDir string) (*Config, error) {
	cfg, err := ReadFromFile(path, baseDir)
	if errors.Is(err, fs.ErrNotExist) {
		return NewConfig(baseDir), nil
	}
	return cfg, err
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
