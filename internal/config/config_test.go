package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasu1712/brayns-remote/internal/brayns"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.BraynsURL)
	assert.Equal(t, brayns.ProfileCurrent, cfg.Profile)
	assert.Equal(t, brayns.TFChannels, cfg.TFEncoding)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "http://127.0.0.1:5173", cfg.CORSOrigin)
	assert.Equal(t, BackendMemory, cfg.PresetStore)
	assert.Equal(t, 500*time.Millisecond, cfg.FrameInterval)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Len(t, cfg.ClientOptions(), 2)
}

func TestOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"BRAYNS_URL":         "http://render:5000",
		"BRAYNS_PROFILE":     "legacy",
		"BRAYNS_TF_ENCODING": "last-channel",
		"BRAYNS_JWT_SECRET":  "s3cret",
		"PRESET_STORE":       "postgres",
		"DATABASE_URL":       "postgres://localhost/presets",
		"FRAME_INTERVAL":     "2s",
		"OUTPUT_DIR":         "~/renders",
	}))
	require.NoError(t, err)
	assert.Equal(t, brayns.ProfileLegacy, cfg.Profile)
	assert.Equal(t, brayns.TFLastChannel, cfg.TFEncoding)
	assert.Equal(t, BackendPostgres, cfg.PresetStore)
	assert.Equal(t, 2*time.Second, cfg.FrameInterval)
	home, err := homedir.Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "renders"), cfg.OutputDir)
	assert.Len(t, cfg.ClientOptions(), 3)
	assert.Equal(t, "http://render:5000", cfg.Client().URL())
}

func TestInvalid(t *testing.T) {
	for name, m := range map[string]map[string]string{
		"profile":         {"BRAYNS_PROFILE": "ancient"},
		"encoding":        {"BRAYNS_TF_ENCODING": "all"},
		"interval":        {"FRAME_INTERVAL": "soon"},
		"negative":        {"FRAME_INTERVAL": "-1s"},
		"store":           {"PRESET_STORE": "s3"},
		"postgres no dsn": {"PRESET_STORE": "postgres"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(env(m))
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LISTEN_ADDR=:9999\n"), 0o644))
	t.Setenv("LISTEN_ADDR", "")
	os.Unsetenv("LISTEN_ADDR")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.ListenAddr)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
