package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/leasetx/internal/common"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.RetryMax)
	assert.Equal(t, 20, cfg.Search.PageSize)
	assert.Equal(t, 50, cfg.Building.PageSize)
	assert.Equal(t, 150*time.Millisecond, cfg.TUI.Debounce)
	assert.Equal(t, int64(1000), cfg.Cache.MaxSize)
	assert.Empty(t, cfg.Cache.RedisAddr)
	assert.NotContains(t, cfg.Database.Path, "~")
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
		err  error
	}{
		{"empty base url", "api.base_url", "", common.ErrMissingConfig},
		{"relative base url", "api.base_url", "/api", common.ErrInvalidConfig},
		{"zero timeout", "api.timeout", "0s", common.ErrInvalidConfig},
		{"negative retries", "api.retry_max", -1, common.ErrInvalidConfig},
		{"zero page size", "search.page_size", 0, common.ErrInvalidConfig},
		{"zero building page size", "building.page_size", 0, common.ErrInvalidConfig},
		{"bad log level", "logging.level", "loud", common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.val)

			_, err := Load(v)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	v := newViper()
	v.Set("api.base_url", "https://lease.example.com/")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://lease.example.com", cfg.API.BaseURL)
}

func TestBindEnv(t *testing.T) {
	t.Setenv("LEASETX_API_BASE_URL", "https://env.example.com")
	t.Setenv("LEASETX_SEARCH_PAGE_SIZE", "40")

	v := newViper()
	BindEnv(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, 40, cfg.Search.PageSize)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LEASETX_TEST_DOTENV=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("LEASETX_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("LEASETX_TEST_DOTENV"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("LEASETX_TEST_DIR", "/data")

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"~", home},
		{"~/db.sqlite", filepath.Join(home, "db.sqlite")},
		{"$LEASETX_TEST_DIR/db.sqlite", "/data/db.sqlite"},
		{"/abs/path", "/abs/path"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
