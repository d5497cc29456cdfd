// Package config handles the configuration directory, config file and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"todoctl/pkg/todoapi"
)

const (
	// AppName is the application directory name.
	AppName = "todoctl"

	// ConfigFile is the config filename inside the config directory.
	ConfigFile = "config.yaml"

	// DotEnvFile is read from the working directory when present.
	DotEnvFile = ".env"
)

// Environment variables that override the config file.
const (
	EnvBaseURL  = "TODOCTL_BASE_URL"
	EnvUsername = "TODOCTL_USERNAME"
	EnvPassword = "TODOCTL_PASSWORD"
)

// File is the on-disk config.yaml layout.
type File struct {
	BaseURL  string `yaml:"base_url,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the API root, e.g. http://localhost:8000/api/v1.
	BaseURL string

	// Username and Password are the Basic auth credentials, if any.
	Username string
	Password string

	// EnvUsername and EnvPassword hold only the values that came from the
	// environment lookup, without the stored file values.
	EnvUsername string
	EnvPassword string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// LookupFunc looks up a single environment variable.
type LookupFunc func(key string) (string, bool)

// Load builds a Config. Values are taken, lowest precedence first, from
// the default base URL, config.yaml in the config directory, then lookup.
// If configDir is empty, uses XDG_CONFIG_HOME/todoctl or $HOME/.config/todoctl.
func Load(configDir string, lookup LookupFunc) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	c := &Config{Dir: dir, BaseURL: todoapi.DefaultBaseURL}

	f, err := c.ReadFile()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	c.Username = f.Username
	c.Password = f.Password

	if lookup != nil {
		if v, ok := lookup(EnvBaseURL); ok && v != "" {
			c.BaseURL = v
		}
		if v, ok := lookup(EnvUsername); ok && v != "" {
			c.Username = v
			c.EnvUsername = v
		}
		if v, ok := lookup(EnvPassword); ok && v != "" {
			c.Password = v
			c.EnvPassword = v
		}
	}
	return c, nil
}

// Environ returns a LookupFunc over the process environment that falls back
// to values in dotenvPath. A missing or unreadable dotenv file is ignored.
func Environ(dotenvPath string) LookupFunc {
	fileEnv, err := godotenv.Read(dotenvPath)
	if err != nil {
		fileEnv = nil
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasCredentials reports whether a username and password are configured
// from any source.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// Credentials returns the configured credentials.
func (c *Config) Credentials() todoapi.Credentials {
	return todoapi.Credentials{Username: c.Username, Password: c.Password}
}

// ReadFile reads config.yaml. A missing file returns an error wrapping
// os.ErrNotExist and a zero File.
func (c *Config) ReadFile() (File, error) {
	var f File
	data, err := os.ReadFile(c.FilePath())
	if err != nil {
		return f, err
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return f, nil
}

// HasStoredCredentials reports whether config.yaml holds a username.
func (c *Config) HasStoredCredentials() bool {
	f, err := c.ReadFile()
	return err == nil && f.Username != ""
}

// SaveCredentials writes the credentials and current base URL to
// config.yaml with mode 0600.
func (c *Config) SaveCredentials(username, password string) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	f, err := c.ReadFile()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	f.BaseURL = c.BaseURL
	f.Username = username
	f.Password = password
	if err := c.writeFile(f); err != nil {
		return err
	}
	c.Username = username
	c.Password = password
	return nil
}

// RemoveCredentials clears the stored credentials, keeping other settings.
func (c *Config) RemoveCredentials() error {
	f, err := c.ReadFile()
	if err != nil {
		return err
	}
	f.Username = ""
	f.Password = ""
	if err := c.writeFile(f); err != nil {
		return err
	}
	c.Username = ""
	c.Password = ""
	return nil
}

func (c *Config) writeFile(f File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	path := c.FilePath()
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file
	return os.Chmod(path, 0600)
}
