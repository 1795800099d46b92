package config

import (
	"fmt"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/qatrackplus/qcpump/internal/logger"
	"github.com/spf13/afero"
)

// ConfigDirEnv overrides the computed configuration directory.
const ConfigDirEnv = "QCPUMP_CONFIG_DIR"

// Option customises [Load].
type Option func(*loadOptions)

type loadOptions struct {
	fs        afero.Fs
	env       Environment
	dirs      *PlatformDirs
	configDir string
	versioned bool
	overrides []Overrides
	logger    *logger.Logger
}

// WithFs makes Load operate on fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *loadOptions) { o.fs = fs }
}

// WithEnvironment replaces the process [Environment]. Every variable Load
// reads, including the QCPUMP_* override layer, comes from env.
func WithEnvironment(env Environment) Option {
	return func(o *loadOptions) { o.env = env }
}

// WithPlatformDirs replaces the base directories captured from the process.
func WithPlatformDirs(dirs PlatformDirs) Option {
	return func(o *loadOptions) { o.dirs = &dirs }
}

// WithConfigDir pins the configuration directory, skipping the platform
// lookup and the legacy migration.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) { o.configDir = dir }
}

// WithVersionedDir scopes the configuration directory to [Version].
func WithVersionedDir() Option {
	return func(o *loadOptions) { o.versioned = true }
}

// WithOverrides adds an override layer above the environment. Later calls
// win over earlier ones.
func WithOverrides(ov Overrides) Option {
	return func(o *loadOptions) { o.overrides = append(o.overrides, ov) }
}

// WithLogger sets the logger bootstrap progress is reported to.
func WithLogger(l *logger.Logger) Option {
	return func(o *loadOptions) { o.logger = l }
}

type configBuilder struct {
	opts loadOptions

	runtime      Runtime
	configDir    string
	settingsPath string
	layers       []Overrides

	err error
}

func newConfigBuilder(opts ...Option) *configBuilder {
	o := loadOptions{
		fs:     afero.NewOsFs(),
		env:    OSEnvironment(),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.GetChildLogger("config")

	return &configBuilder{
		opts:   o,
		layers: make([]Overrides, 0, 2+len(o.overrides)),
	}
}

func (b *configBuilder) build() (*Configuration, error) {
	if b.err != nil {
		return nil, b.err
	}

	var merged Overrides
	for _, layer := range b.layers {
		if err := mergo.Merge(&merged, layer, mergo.WithOverride, mergo.WithoutDereference); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	cfg := Defaults(b.runtime)
	cfg.apply(merged)
	cfg.ConfigDir = b.configDir
	cfg.SettingsFile = b.settingsPath

	return &cfg, nil
}

func (b *configBuilder) withRuntime() *configBuilder {
	if b.err != nil {
		return b
	}

	b.runtime = DetectRuntime(b.opts.env)
	b.opts.logger.Debug().
		Stringer("mode", b.runtime.Mode).
		Str("root", b.runtime.Root).
		Msg("runtime detected")

	return b
}

func (b *configBuilder) withConfigDir() *configBuilder {
	if b.err != nil {
		return b
	}

	dir := b.opts.configDir
	if dir == "" {
		dir = b.opts.env.Getenv(ConfigDirEnv)
	}

	legacy := ""
	if dir == "" {
		dirs := b.platformDirs()
		version := ""
		if b.opts.versioned {
			version = Version
		}
		dir = ConfigDir(dirs, DefaultScope(dirs.GOOS), AppName, Vendor, version)
		legacy = LegacyConfigDir(dirs, AppName, Vendor)
	}

	action, err := InitConfigDir(b.opts.fs, dir, legacy)
	if err != nil {
		b.err = err
		return b
	}
	if action != DirReady {
		b.opts.logger.Info().
			Str("dir", dir).
			Str("legacy", legacy).
			Stringer("action", action).
			Msg("configuration directory initialised")
	}

	b.configDir = dir
	b.settingsPath = filepath.Join(dir, SettingsFileName)
	return b
}

func (b *configBuilder) withSettingsFile() *configBuilder {
	if b.err != nil {
		return b
	}

	created, err := EnsureSettingsFile(b.opts.fs, b.settingsPath)
	if err != nil {
		b.err = err
		return b
	}
	if created {
		b.opts.logger.Info().Str("path", b.settingsPath).Msg("default settings file written")
	}

	settings, err := LoadSettings(b.opts.fs, b.settingsPath)
	if err != nil {
		b.err = err
		return b
	}

	b.layers = append(b.layers, settings)
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	if b.err != nil {
		return b
	}

	envCfg, err := ParseEnv(b.opts.env)
	if err != nil {
		b.err = err
		return b
	}

	b.layers = append(b.layers, envCfg)
	return b
}

func (b *configBuilder) withOverrides() *configBuilder {
	if b.err != nil {
		return b
	}

	b.layers = append(b.layers, b.opts.overrides...)
	return b
}

func (b *configBuilder) platformDirs() PlatformDirs {
	if b.opts.dirs != nil {
		return *b.opts.dirs
	}
	return PlatformDirsFromEnv()
}
