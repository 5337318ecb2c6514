// Package config holds the settings of a test run. They come from built-in defaults, then an
// optional YAML file, then the environment (which may be seeded from a .env file), then
// command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/robotadmin/api-contract-tests/servicedef"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvBaseURL = "ROBOT_API_URL"
	EnvToken   = "ROBOT_API_TOKEN"

	DefaultTimeout       = time.Second * 30
	DefaultHealthTimeout = time.Second * 5
	DefaultParallelism   = 4
)

type Timeouts struct {
	Default time.Duration `yaml:"default"`
	Health  time.Duration `yaml:"health"`
}

type Config struct {
	BaseURL string `yaml:"base_url"`
	// Token, if set, is used as the credential until the authentication scenario replaces it.
	Token            string                   `yaml:"token"`
	Suite            string                   `yaml:"suite"`
	Timeouts         Timeouts                 `yaml:"timeouts"`
	Parallelism      int                      `yaml:"parallelism"`
	ProbeAPIPrefix   bool                     `yaml:"probe_api_prefix"`
	StatusVocabulary string                   `yaml:"status_vocabulary"`
	LocationID       string                   `yaml:"location_id"`
	StartupWait      time.Duration            `yaml:"startup_wait"`
	Login            servicedef.TelegramLogin `yaml:"login"`
}

func Default() Config {
	return Config{
		Suite:            "full",
		Timeouts:         Timeouts{Default: DefaultTimeout, Health: DefaultHealthTimeout},
		Parallelism:      DefaultParallelism,
		StatusVocabulary: servicedef.EnglishStatuses.Name,
		LocationID:       servicedef.DefaultLocationID,
		Login:            servicedef.DefaultLogin(),
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.decode(bytes.NewReader(data)); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadDotEnv loads the first of the given .env files that exists into the process environment.
// Variables that are already set are not overridden. It returns the file that was loaded, if any.
func LoadDotEnv(paths ...string) (string, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return "", fmt.Errorf("load %s: %w", p, err)
		}
		return p, nil
	}
	return "", nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := getenv(EnvToken); v != "" {
		c.Token = v
	}
}

// Validate checks the settings and normalizes the base URL.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required (set -url, base_url or %s)", EnvBaseURL)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL %q is not an absolute http(s) URL", c.BaseURL)
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.Timeouts.Default <= 0 || c.Timeouts.Health <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	if _, err := servicedef.Vocabulary(c.StatusVocabulary); err != nil {
		return err
	}
	if c.StartupWait < 0 {
		return errors.New("startup_wait cannot be negative")
	}
	return nil
}
