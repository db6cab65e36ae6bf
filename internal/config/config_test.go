package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	t.Run("Missing file is created with defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		m, err := New(path)
		require.NoError(t, err)
		assert.Equal(t, *m.GetDefault(), m.Get())

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		var onDisk Config
		require.NoError(t, json.Unmarshal(raw, &onDisk))
		assert.Equal(t, ":8080", onDisk.Server.Addr)
	})

	t.Run("Existing file is loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		body := `{
			"app": {"log_level": "debug"},
			"matcher": {"case_insensitive": true},
			"dictionaries": {"colors": "colors.txt"},
			"server": {"addr": ":9000"},
			"cache": {"capacity": 4, "ttl_secs": 60}
		}`
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		m, err := New(path)
		require.NoError(t, err)
		cfg := m.Get()
		assert.Equal(t, "debug", cfg.App.LogLevel)
		assert.True(t, cfg.Matcher.CaseInsensitive)
		assert.Equal(t, map[string]string{"colors": "colors.txt"}, cfg.Dictionaries)
		assert.Equal(t, 60, int(cfg.Cache.TTL().Seconds()))
	})

	t.Run("Invalid file is rejected", func(t *testing.T) {
		dir := t.TempDir()
		cases := map[string]string{
			"bad json":   `{`,
			"bad level":  `{"app": {"log_level": "loud"}, "server": {"addr": ":1"}}`,
			"no addr":    `{"server": {"addr": ""}}`,
			"no burst":   `{"server": {"addr": ":1", "rate_limit": 5}}`,
			"empty path": `{"server": {"addr": ":1"}, "dictionaries": {"x": ""}}`,
		}
		for name, body := range cases {
			path := filepath.Join(dir, name+".json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := New(path)
			assert.Error(t, err, name)
		}
	})

	t.Run("Update validates and persists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		m, err := New(path)
		require.NoError(t, err)

		require.NoError(t, m.Update(func(cfg *Config) {
			cfg.Dictionaries["spam"] = "spam.txt"
		}))
		assert.Equal(t, "spam.txt", m.Get().Dictionaries["spam"])

		err = m.Update(func(cfg *Config) { cfg.Server.Addr = "" })
		assert.ErrorContains(t, err, "server.addr")
		assert.Equal(t, ":8080", m.Get().Server.Addr)

		reloaded, err := New(path)
		require.NoError(t, err)
		assert.Equal(t, m.Get(), reloaded.Get())
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		m, err := New(filepath.Join(t.TempDir(), "config.json"))
		require.NoError(t, err)
		cfg := m.Get()
		cfg.Dictionaries["x"] = "y"
		assert.NotContains(t, m.Get().Dictionaries, "x")
	})
}
