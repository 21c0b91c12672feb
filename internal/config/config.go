// Package config reads process settings from the environment, after
// loading a .env file when one exists.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"

	"github.com/Vasu1712/brayns-remote/internal/brayns"
)

// PresetBackend selects where presets are kept.
type PresetBackend string

const (
	BackendMemory   PresetBackend = "memory"
	BackendValkey   PresetBackend = "valkey"
	BackendPostgres PresetBackend = "postgres"
)

// Config holds every setting the commands read.
type Config struct {
	BraynsURL     string                          // BRAYNS_URL
	Profile       brayns.Profile                  // BRAYNS_PROFILE
	TFEncoding    brayns.TransferFunctionEncoding // BRAYNS_TF_ENCODING
	JWTSecret     string                          // BRAYNS_JWT_SECRET; empty disables bearer tokens
	ListenAddr    string                          // LISTEN_ADDR
	CORSOrigin    string                          // CORS_ORIGIN
	PresetStore   PresetBackend                   // PRESET_STORE
	ValkeyAddr    string                          // VALKEY_ADDR
	DatabaseURL   string                          // DATABASE_URL
	FrameInterval time.Duration                   // FRAME_INTERVAL
	OutputDir     string                          // OUTPUT_DIR, "~" expanded
}

// Load reads envFile (ignored when missing) and then the environment.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		BraynsURL:   get("BRAYNS_URL", "http://localhost:5000"),
		JWTSecret:   getenv("BRAYNS_JWT_SECRET"),
		ListenAddr:  get("LISTEN_ADDR", ":8080"),
		CORSOrigin:  get("CORS_ORIGIN", "http://127.0.0.1:5173"),
		PresetStore: PresetBackend(get("PRESET_STORE", string(BackendMemory))),
		ValkeyAddr:  get("VALKEY_ADDR", "127.0.0.1:6379"),
		DatabaseURL: getenv("DATABASE_URL"),
	}

	var err error
	if cfg.Profile, err = brayns.ParseProfile(get("BRAYNS_PROFILE", "current")); err != nil {
		return nil, err
	}
	if cfg.TFEncoding, err = brayns.ParseTransferFunctionEncoding(get("BRAYNS_TF_ENCODING", "channels")); err != nil {
		return nil, err
	}
	if cfg.FrameInterval, err = time.ParseDuration(get("FRAME_INTERVAL", "500ms")); err != nil {
		return nil, fmt.Errorf("FRAME_INTERVAL: %w", err)
	}
	if cfg.FrameInterval <= 0 {
		return nil, fmt.Errorf("FRAME_INTERVAL must be positive, got %s", cfg.FrameInterval)
	}
	if cfg.OutputDir, err = homedir.Expand(get("OUTPUT_DIR", ".")); err != nil {
		return nil, fmt.Errorf("OUTPUT_DIR: %w", err)
	}

	switch cfg.PresetStore {
	case BackendMemory, BackendValkey:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("PRESET_STORE=postgres needs DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("unknown PRESET_STORE %q", cfg.PresetStore)
	}
	return cfg, nil
}

// ClientOptions returns the brayns client options the settings imply.
func (c *Config) ClientOptions() []brayns.Option {
	opts := []brayns.Option{
		brayns.WithProfile(c.Profile),
		brayns.WithTransferFunctionEncoding(c.TFEncoding),
	}
	if c.JWTSecret != "" {
		opts = append(opts, brayns.WithJWTSecret([]byte(c.JWTSecret), "braynsctl"))
	}
	return opts
}

// Client returns a render client for BraynsURL.
func (c *Config) Client() *brayns.Client {
	return brayns.New(c.BraynsURL, c.ClientOptions()...)
}
