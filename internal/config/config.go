package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/hintjump/internal/config/layer"
	"github.com/dshills/hintjump/internal/config/loader"
)

// Config provides access to the merged configuration layers.
// It is safe for concurrent use.
type Config struct {
	mu sync.RWMutex

	layers *layer.Manager

	fs        loader.FileSystem
	path      string
	required  bool
	envPrefix string
	overrides map[string]any
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile sets the user configuration file. When required is false a
// missing file is not an error.
func WithFile(path string, required bool) Option {
	return func(c *Config) {
		c.path = path
		c.required = required
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithOverride sets a value in the command-line layer.
func WithOverride(path string, value any) Option {
	return func(c *Config) {
		layer.SetByPath(c.overrides, path, value)
	}
}

// WithFileSystem replaces the file system used to read the user file.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// New creates a Config holding only the built-in defaults.
// Call Load to read the file and environment.
func New(opts ...Option) *Config {
	c := &Config{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
		overrides: make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.layers = layer.NewManager()
	c.layers.SetLayer(defaultLayer())
	return c
}

// DefaultPath returns the user configuration file location,
// $XDG_CONFIG_HOME/hintjump/config.toml or its platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hintjump", "config.toml")
}

// Path returns the user configuration file, or "" when none is used.
func (c *Config) Path() string {
	return c.path
}

// Load reads every layer and validates the result. On error the
// previously loaded configuration stays in effect.
func (c *Config) Load() error {
	_, err := c.Reload()
	return err
}

// Reload re-reads the file and environment layers and returns the setting
// paths whose effective value changed.
func (c *Config) Reload() ([]string, error) {
	return c.ReloadWith(nil)
}

// ReloadWith is Reload with a commit step. prepare receives the validated
// candidate before it replaces the current layers; an error from prepare
// leaves the current configuration in effect and is returned.
func (c *Config) ReloadWith(prepare func(candidate *Config) error) ([]string, error) {
	candidate := layer.NewManager()
	candidate.SetLayer(defaultLayer())

	fileLayer, err := c.loadFile()
	if err != nil {
		return nil, err
	}
	if fileLayer != nil {
		candidate.SetLayer(fileLayer)
	}

	envData, err := loader.NewEnvLoader(c.envPrefix).Load()
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	if len(envData) > 0 {
		candidate.SetLayer(layer.NewLayerWithData("environment", layer.SourceEnv, layer.PriorityEnv, envData))
	}

	if len(c.overrides) > 0 {
		candidate.SetLayer(layer.NewLayerWithData("arguments", layer.SourceArgs, layer.PriorityArgs,
			layer.DeepMerge(nil, c.overrides)))
	}

	if err := validate(candidate.Merge()); err != nil {
		return nil, err
	}
	if prepare != nil {
		staged := &Config{
			layers:    candidate,
			fs:        c.fs,
			path:      c.path,
			required:  c.required,
			envPrefix: c.envPrefix,
			overrides: c.overrides,
		}
		if err := prepare(staged); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	old := c.layers
	c.layers = candidate
	c.mu.Unlock()

	return layer.Changed(old.Merge(), candidate.Merge()), nil
}

// loadFile reads the user file layer, or returns nil when there is none.
func (c *Config) loadFile() (*layer.Layer, error) {
	if c.path == "" {
		return nil, nil
	}
	l, err := loader.ForFile(c.fs, c.path)
	if err != nil {
		return nil, err
	}
	data, err := l.Load()
	if err != nil {
		return nil, err
	}
	if data == nil {
		if c.required {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, c.path)
		}
		return nil, nil
	}
	fl := layer.NewLayerWithData("file", layer.SourceFile, layer.PriorityFile, data)
	fl.Path = c.path
	return fl, nil
}

func defaultLayer() *layer.Layer {
	return layer.NewLayerWithData("defaults", layer.SourceBuiltin, layer.PriorityBuiltin, layer.DeepMerge(nil, defaults))
}

func (c *Config) manager() *layer.Manager {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.layers
}

// Merged returns the fully merged configuration.
func (c *Config) Merged() map[string]any {
	return c.manager().Merge()
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	return layer.GetByPath(c.manager().Merge(), path)
}

// Source returns the name of the layer that supplies path:
// "defaults", "file", "environment" or "arguments".
func (c *Config) Source(path string) string {
	_, name, _ := c.manager().Get(path)
	return name
}

// Validate checks the current configuration.
func (c *Config) Validate() error {
	return validate(c.Merged())
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	return toString(path, v)
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	return toInt(path, v)
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	return toBool(path, v)
}

// GetStringSlice returns a string slice at the given path. A single
// string is returned as a one-element slice.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	return toStringSlice(path, v)
}

// IsNotFound reports whether err means a missing setting or file.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSettingNotFound) || errors.Is(err, ErrFileNotFound)
}
