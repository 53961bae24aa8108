package cfg

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/trichner/strset/pkg/hashers"
	"github.com/trichner/strset/pkg/strset"
)

const (
	appName        = "strset"
	configFileName = "config.yaml"

	EnvHasher   = "STRSET_HASHER"
	EnvLogLevel = "STRSET_LOG_LEVEL"
)

type kConfigProviderContextKey struct{}

func FromContext(ctx context.Context) *ConfigProvider {
	v := ctx.Value(kConfigProviderContextKey{})
	if v == nil {
		return nil
	}
	cfg, ok := v.(*ConfigProvider)
	if !ok {
		panic(fmt.Errorf("unexpected type for ConfigProvider context value: %v", v))
	}
	return cfg
}

func WithConfigProvider(ctx context.Context, cfg *ConfigProvider) context.Context {
	return context.WithValue(ctx, kConfigProviderContextKey{}, cfg)
}

type ConfigProvider struct{}

func (c *ConfigProvider) Getenv(name string) string {
	return os.Getenv(name)
}

// ReadFile reads a file relative to the strset config directory.
func (c *ConfigProvider) ReadFile(name string) ([]byte, error) {
	basePath, err := c.determineCommandConfigPath()
	if err != nil {
		return nil, err
	}
	name = path.Clean(name)
	if path.IsAbs(name) {
		return nil, fmt.Errorf("expected relative path but was absolute: %s", name)
	}
	if strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid ConfigProvider path: %s", name)
	}
	p := path.Join(basePath, name)

	return os.ReadFile(p)
}

func (c *ConfigProvider) determineCommandConfigPath() (string, error) {
	dir, err := c.determineConfigPath()
	if err != nil {
		return "", err
	}
	return path.Join(dir, appName), nil
}

func (c *ConfigProvider) determineConfigPath() (string, error) {
	for _, env := range []string{"XDG_CONFIG_HOME", "XDG_CONFIG"} {
		if dir := c.Getenv(env); dir != "" {
			return dir, nil
		}
	}

	dir := c.Getenv("HOME")
	if dir == "" {
		return "", fmt.Errorf("cannot determine $HOME directory, env variable not set")
	}

	// default XDG_CONFIG
	return filepath.Join(dir, ".config"), nil
}

// SetConfig holds the tunables of the sets created by the CLI. Zero values
// select the library defaults.
type SetConfig struct {
	InitialCapacity int     `yaml:"initial_capacity"`
	MaxCapacity     int     `yaml:"max_capacity"`
	MaxLoad         float64 `yaml:"max_load"`
	Hasher          string  `yaml:"hasher"`
	LogLevel        string  `yaml:"log_level"`
}

// LoadSetConfig reads config.yaml from the config directory, if present, and
// applies environment overrides on top.
func (c *ConfigProvider) LoadSetConfig() (*SetConfig, error) {
	conf := &SetConfig{}

	data, err := c.ReadFile(configFileName)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("no config file, using defaults", "file", configFileName)
	case err != nil:
		return nil, fmt.Errorf("cannot read %s: %w", configFileName, err)
	default:
		if err := yaml.Unmarshal(data, conf); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", configFileName, err)
		}
	}

	if v := c.Getenv(EnvHasher); v != "" {
		conf.Hasher = v
	}
	if v := c.Getenv(EnvLogLevel); v != "" {
		conf.LogLevel = v
	}
	return conf, nil
}

// Options converts the configuration into set options. Sets created with
// them log through logger.
func (s *SetConfig) Options(logger *slog.Logger) ([]strset.Option, error) {
	h, err := hashers.Lookup(s.Hasher)
	if err != nil {
		return nil, err
	}

	opts := []strset.Option{strset.WithHasher(h)}
	if s.InitialCapacity != 0 {
		opts = append(opts, strset.WithInitialCapacity(s.InitialCapacity))
	}
	if s.MaxCapacity != 0 {
		opts = append(opts, strset.WithMaxCapacity(s.MaxCapacity))
	}
	if s.MaxLoad != 0 {
		opts = append(opts, strset.WithMaxLoad(s.MaxLoad))
	}
	if logger != nil {
		opts = append(opts, strset.WithLogger(logger))
	}
	return opts, nil
}

// Level parses LogLevel, defaulting to info.
func (s *SetConfig) Level() (slog.Level, error) {
	var l slog.Level
	if s.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	return l, nil
}

// NewSet creates a set from the config provider stored in ctx, falling back
// to library defaults when there is none.
func NewSet(ctx context.Context) (*strset.Set, error) {
	c := FromContext(ctx)
	if c == nil {
		return strset.New()
	}

	conf, err := c.LoadSetConfig()
	if err != nil {
		return nil, err
	}
	opts, err := conf.Options(slog.Default())
	if err != nil {
		return nil, err
	}
	return strset.New(opts...)
}
