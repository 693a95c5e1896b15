package mlpack

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	// DefaultUtilLibrary is the file name of the shared parameter plumbing library.
	DefaultUtilLibrary = "libmlpack_go_util.so"

	// DefaultLibraryPattern formats a binding name into its library file name.
	DefaultLibraryPattern = "libmlpack_go_%s.so"

	// LibraryDirEnv overrides Config.LibraryDir when set.
	LibraryDirEnv = "MLPACK_GO_LIB_DIR"
)

// Config configures how native binding libraries are located and driven.
// A nil *Config is valid and means all defaults.
type Config struct {
	// LibraryDir is the directory holding the binding libraries.
	// If empty, the dynamic loader's search path is used.
	LibraryDir string `yaml:"library_dir"`

	// UtilLibrary overrides the utility library file name (default: libmlpack_go_util.so).
	UtilLibrary string `yaml:"util_library"`

	// LibraryPattern overrides the binding library file name pattern
	// (default: libmlpack_go_%s.so). It must contain exactly one %s.
	LibraryPattern string `yaml:"library_pattern"`

	// Verbose enables the native libraries' informational output.
	Verbose bool `yaml:"verbose"`

	// Logger receives library load and dispatch debug output (default: discarded).
	Logger *slog.Logger `yaml:"-"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var config Config
	decoder := yaml.NewDecoder(file)
	decoder.SetStrict(true)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// ParseConfig parses YAML configuration data.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.LibraryPattern != "" && strings.Count(c.LibraryPattern, "%s") != 1 {
		return fmt.Errorf("library_pattern %q must contain exactly one %%s", c.LibraryPattern)
	}
	return nil
}

func (c *Config) libraryDir() string {
	if dir := os.Getenv(LibraryDirEnv); dir != "" {
		return dir
	}
	if c != nil {
		return c.LibraryDir
	}
	return ""
}

func (c *Config) utilLibrary() string {
	if c != nil && c.UtilLibrary != "" {
		return c.UtilLibrary
	}
	return DefaultUtilLibrary
}

func (c *Config) libraryPattern() string {
	if c != nil && c.LibraryPattern != "" {
		return c.LibraryPattern
	}
	return DefaultLibraryPattern
}

func (c *Config) verbose() bool {
	return c != nil && c.Verbose
}

func (c *Config) logger() *slog.Logger {
	if c != nil && c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// utilPath returns the path of the utility library.
func (c *Config) utilPath() string {
	return c.resolve(c.utilLibrary())
}

// bindingPath returns the path of the library implementing the named binding.
func (c *Config) bindingPath(name string) string {
	return c.resolve(fmt.Sprintf(c.libraryPattern(), name))
}

func (c *Config) resolve(file string) string {
	if dir := c.libraryDir(); dir != "" {
		return filepath.Join(dir, file)
	}
	return file
}
