package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"photorg/internal/digest"
	"photorg/internal/photorg"
	"photorg/internal/prompt"
)

// Config represents the main configuration for photorg.
type Config struct {
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	Organize   OrganizeConfig   `toml:"organize"`
	Filesystem FilesystemConfig `toml:"filesystem"`
}

// OrganizeConfig holds the defaults for an organize run. Each value can be
// overridden from the command line.
type OrganizeConfig struct {
	Extensions    []string `toml:"extensions"`
	HashAlgorithm string   `toml:"hash_algorithm"`
	Assume        string   `toml:"assume"` // "", "keep", "delete" or "abort"
}

// FilesystemConfig holds filesystem-related settings.
type FilesystemConfig struct {
	Ignore []string `toml:"ignore"`
}

// NewConfig creates a new Config rooted at baseDir with default organize settings.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Organize: OrganizeConfig{
			Extensions:    append([]string{}, photorg.DefaultExtensions...),
			HashAlgorithm: digest.Default,
		},
	}
}

// Validate checks the organize settings.
func (c *Config) Validate() error {
	if len(c.Organize.Extensions) == 0 {
		return errors.New("organize.extensions must not be empty")
	}
	for _, ext := range c.Organize.Extensions {
		if strings.Trim(strings.TrimSpace(ext), ".") == "" {
			return fmt.Errorf("organize.extensions: invalid extension %q", ext)
		}
	}
	if !digest.Supported(c.Organize.HashAlgorithm) {
		return fmt.Errorf("organize.hash_algorithm: unknown algorithm %q (available: %s)",
			c.Organize.HashAlgorithm, strings.Join(digest.Names(), ", "))
	}
	if _, err := prompt.ParseAnswer(c.Organize.Assume); err != nil {
		return fmt.Errorf("organize.assume: %w", err)
	}
	return nil
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

// Load reads the config at path on top of the defaults for baseDir, so keys
// missing from the file keep their default. A missing file yields the defaults.
func Load(path, baseDir string) (*Config, error) {
	cfg := NewConfig(baseDir)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if !md.IsDefined("log_dir") || cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.BaseDir, "log")
	}
	return cfg, nil
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
