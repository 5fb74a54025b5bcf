package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestMorphServer(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"localhost:8000", "http://localhost:8000"},
		{"http://localhost:8000/", "http://localhost:8000"},
		{"https://api.skillswap.example//", "https://api.skillswap.example"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MorphServer(tt.in), tt.in)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvServerURL, "")
	t.Setenv(EnvProfileID, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvInsecure, "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvServerURL, "")
	t.Setenv(EnvProfileID, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvInsecure, "")

	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server_url: api.local:9000/\nprofile_id: 3\n"), 0o600))

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "http://api.local:9000", cfg.ServerURL)
	assert.Equal(t, int64(3), cfg.ProfileID)
	assert.Equal(t, configVersion, cfg.Version)

	// the environment wins over the file
	t.Setenv(EnvProfileID, "7")
	t.Setenv(EnvLogLevel, "debug")
	cfg, err = LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.ProfileID)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv(EnvInsecure, "true")
	cfg, err = LoadConfig(file)
	require.NoError(t, err)
	assert.True(t, cfg.Insecure)
	t.Setenv(EnvInsecure, "sometimes")
	_, err = LoadConfig(file)
	assert.ErrorContains(t, err, "SKILLSWAP_INSECURE must be true or false")
	t.Setenv(EnvInsecure, "")

	t.Setenv(EnvProfileID, "seven")
	_, err = LoadConfig(file)
	assert.ErrorContains(t, err, "SKILLSWAP_PROFILE_ID must be a number")

	t.Setenv(EnvProfileID, "0")
	_, err = LoadConfig(file)
	assert.ErrorContains(t, err, "profile id must be a positive number")
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvServerURL, "")
	t.Setenv(EnvProfileID, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvInsecure, "")
	// godotenv only fills variables that are unset
	require.NoError(t, os.Unsetenv(EnvProfileID))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SKILLSWAP_PROFILE_ID=5\n"), 0o600))
	cfg, err := LoadConfig(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), cfg.ProfileID)
}

func TestWriteConfigFormats(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "nested", name)
			cfg := &Config{Version: configVersion, ServerURL: "http://api.local", ProfileID: 4, LogLevel: "warn"}
			require.NoError(t, cfg.WriteConfig(file))

			info, err := os.Stat(file)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

			got, err := ReadConfigFile(file)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
		})
	}

	assert.Error(t, (&Config{}).WriteConfig(""))
}

func TestConfigCommand(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run("", "config", "--server", "api.local:9000", "--profile", "3", "--json")
	require.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "http://api.local:9000", gjson.Get(res.out, "value.server").String())
	assert.Equal(t, env.configPath, gjson.Get(res.out, "value.config_file").String())

	res = env.run("", "config", "--log-level", "debug")
	require.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.out, "Profile: 3")

	res = env.run("", "config", "show", "--json")
	require.Equal(t, 0, res.code, res.err)
	assert.Equal(t, int64(3), gjson.Get(res.out, "value.profile_id").Int())
	assert.Equal(t, "debug", gjson.Get(res.out, "value.log_level").String())

	res = env.run("", "config", "--profile", "-1")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.err, "profile id must be a positive number")
}

func TestConfigCommandTOML(t *testing.T) {
	env := newCLIEnv(t)
	env.configPath = filepath.Join(t.TempDir(), "config.toml")

	res := env.run("", "config", "--profile", "1")
	require.Equal(t, 0, res.code, res.err)
	data, err := os.ReadFile(env.configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "profile_id = 1")

	// the configured profile is the one the views use
	res = env.run("", "profile", "--json")
	require.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "Alice Tan", gjson.Get(res.out, "value.profile.name").String())
}
