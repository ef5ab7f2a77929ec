// Package config loads formsend settings. Values are layered: built-in
// defaults, then a YAML file, then a dotenv file, then the process
// environment (FORMSEND_* variables). Later layers win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FORMSEND_"

// Config is the root configuration document.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Client ClientConfig `yaml:"client"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the echo server.
type ServerConfig struct {
	Address     string          `yaml:"address"`
	MaxBodySize int64           `yaml:"max_body_size"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	CORS        CORSConfig      `yaml:"cors"`
}

// RateLimitConfig configures the token bucket shared by all requests. A
// non-positive RPS disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// CORSConfig mirrors the hertz-contrib/cors options the server exposes.
type CORSConfig struct {
	AllowOrigins  []string      `yaml:"allow_origins"`
	AllowMethods  []string      `yaml:"allow_methods"`
	AllowHeaders  []string      `yaml:"allow_headers"`
	ExposeHeaders []string      `yaml:"expose_headers"`
	MaxAge        time.Duration `yaml:"max_age"`
}

// ClientConfig configures the submit command.
type ClientConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig selects the hlog level: trace, debug, info, notice, warn, error
// or fatal.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:     ":8080",
			MaxBodySize: 10 << 20,
			RateLimit: RateLimitConfig{
				RPS:   50,
				Burst: 100,
			},
			CORS: CORSConfig{
				AllowOrigins:  []string{"*"},
				AllowMethods:  []string{"GET", "POST", "OPTIONS"},
				AllowHeaders:  []string{"Content-Type", "Accept", "X-Requested-With"},
				ExposeHeaders: []string{"Content-Length"},
				MaxAge:        12 * time.Hour,
			},
		},
		Client: ClientConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Option customises Load.
type Option func(*loader)

type loader struct {
	file    string
	envFile string
	lookup  func(string) (string, bool)
}

// WithFile reads YAML from path. A missing file is an error.
func WithFile(path string) Option {
	return func(l *loader) {
		l.file = strings.TrimSpace(path)
	}
}

// WithEnvFile reads dotenv variables from path. A missing file is ignored.
func WithEnvFile(path string) Option {
	return func(l *loader) {
		l.envFile = strings.TrimSpace(path)
	}
}

// WithLookup replaces os.LookupEnv.
func WithLookup(fn func(string) (string, bool)) Option {
	return func(l *loader) {
		if fn != nil {
			l.lookup = fn
		}
	}
}

// Load resolves the configuration. FORMSEND_CONFIG names the YAML file when
// WithFile is not given.
func Load(options ...Option) (Config, error) {
	l := &loader{envFile: ".env", lookup: os.LookupEnv}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}

	dotenv, err := readEnvFile(l.envFile)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := l.lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	cfg := Default()

	path := l.file
	if path == "" {
		if v, ok := lookup(EnvPrefix + "CONFIG"); ok {
			path = strings.TrimSpace(v)
		}
	}
	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode yaml: %w", err)
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: read env file %s: %w", path, err)
	}
	return values, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return "", false
		}
		v = strings.TrimSpace(v)
		return v, v != ""
	}

	if v, ok := get("SERVER_ADDRESS"); ok {
		cfg.Server.Address = v
	}
	if v, ok := get("SERVER_MAX_BODY_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %sSERVER_MAX_BODY_SIZE: %w", EnvPrefix, err)
		}
		cfg.Server.MaxBodySize = n
	}
	if v, ok := get("SERVER_RATE_LIMIT_RPS"); ok {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %sSERVER_RATE_LIMIT_RPS: %w", EnvPrefix, err)
		}
		cfg.Server.RateLimit.RPS = n
	}
	if v, ok := get("SERVER_RATE_LIMIT_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sSERVER_RATE_LIMIT_BURST: %w", EnvPrefix, err)
		}
		cfg.Server.RateLimit.Burst = n
	}
	if v, ok := get("SERVER_CORS_ORIGINS"); ok {
		cfg.Server.CORS.AllowOrigins = splitList(v)
	}
	if v, ok := get("CLIENT_BASE_URL"); ok {
		cfg.Client.BaseURL = v
	}
	if v, ok := get("CLIENT_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sCLIENT_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Client.Timeout = d
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
