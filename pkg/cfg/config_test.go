package cfg

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trichner/strset/pkg/hashers"
	"github.com/trichner/strset/pkg/strset"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvHasher, "")
	t.Setenv(EnvLogLevel, "")

	if content == "" {
		return
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, appName), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, appName, configFileName), []byte(content), 0o600))
}

func TestFromContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	c := &ConfigProvider{}
	ctx := WithConfigProvider(context.Background(), c)
	assert.Same(t, c, FromContext(ctx))
}

func TestReadFile_RejectsEscapes(t *testing.T) {
	writeConfig(t, "")
	c := &ConfigProvider{}

	_, err := c.ReadFile("/etc/passwd")
	assert.Error(t, err)

	_, err = c.ReadFile("../secret")
	assert.Error(t, err)
}

func TestDetermineConfigPath_Home(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG", "")
	t.Setenv("HOME", "/home/gopher")

	got, err := (&ConfigProvider{}).determineConfigPath()

	require.NoError(t, err)
	assert.Equal(t, "/home/gopher/.config", got)
}

func TestDetermineConfigPath_NoHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG", "")
	t.Setenv("HOME", "")

	_, err := (&ConfigProvider{}).determineConfigPath()

	assert.Error(t, err)
}

func TestLoadSetConfig_Defaults(t *testing.T) {
	writeConfig(t, "")

	conf, err := (&ConfigProvider{}).LoadSetConfig()

	require.NoError(t, err)
	assert.Equal(t, &SetConfig{}, conf)
	lvl, err := conf.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadSetConfig_File(t *testing.T) {
	writeConfig(t, `
initial_capacity: 11
max_capacity: 64
max_load: 0.75
hasher: xxhash
log_level: debug
`)

	conf, err := (&ConfigProvider{}).LoadSetConfig()

	require.NoError(t, err)
	assert.Equal(t, &SetConfig{
		InitialCapacity: 11,
		MaxCapacity:     64,
		MaxLoad:         0.75,
		Hasher:          "xxhash",
		LogLevel:        "debug",
	}, conf)
	lvl, err := conf.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadSetConfig_EnvOverrides(t *testing.T) {
	writeConfig(t, "hasher: xxhash\n")
	t.Setenv(EnvHasher, "djb2")
	t.Setenv(EnvLogLevel, "warn")

	conf, err := (&ConfigProvider{}).LoadSetConfig()

	require.NoError(t, err)
	assert.Equal(t, "djb2", conf.Hasher)
	assert.Equal(t, "warn", conf.LogLevel)
}

func TestLoadSetConfig_InvalidYAML(t *testing.T) {
	writeConfig(t, "initial_capacity: [1, 2\n")

	_, err := (&ConfigProvider{}).LoadSetConfig()

	assert.Error(t, err)
}

func TestSetConfig_Options(t *testing.T) {
	conf := &SetConfig{InitialCapacity: 11, MaxLoad: 0.75}

	opts, err := conf.Options(nil)
	require.NoError(t, err)

	s, err := strset.New(opts...)
	require.NoError(t, err)
	assert.Equal(t, 11, s.Capacity())
}

func TestSetConfig_OptionsUnknownHasher(t *testing.T) {
	conf := &SetConfig{Hasher: "crc32"}

	_, err := conf.Options(nil)

	assert.ErrorIs(t, err, hashers.ErrUnknownHasher)
}

func TestSetConfig_OptionsInvalid(t *testing.T) {
	conf := &SetConfig{MaxLoad: 2}

	opts, err := conf.Options(nil)
	require.NoError(t, err)

	_, err = strset.New(opts...)
	assert.ErrorIs(t, err, strset.ErrInvalidOption)
}

func TestNewSet(t *testing.T) {
	writeConfig(t, "initial_capacity: 13\n")

	s, err := NewSet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, strset.DefaultInitialCapacity, s.Capacity())

	ctx := WithConfigProvider(context.Background(), &ConfigProvider{})
	s, err = NewSet(ctx)
	require.NoError(t, err)
	assert.Equal(t, 13, s.Capacity())
}
