package config

import (
	"github.com/spf13/pflag"
)

// Flags holds the command-line overrides bound to a flag set.
type Flags struct {
	fs *pflag.FlagSet

	configDir     string
	versioned     bool
	logLevel      string
	debug         bool
	logToConsole  bool
	pumpDirs      []string
	pumpOnStartup bool
}

// BindFlags registers the configuration flags on fs.
//
// Flags:
//
//	--config-dir        configuration directory (skips platform lookup)
//	--versioned         scope the configuration directory to the version
//	--log-level         debug | info | warning | error | critical
//	--debug             debug logging
//	--log-to-console    log to the console as well as the log file
//	--pump-dir          extra pump type directory (repeatable)
//	--pump-on-startup   start pumping immediately
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	fs.StringVar(&f.configDir, "config-dir", "", "Configuration directory")
	fs.BoolVar(&f.versioned, "versioned", false, "Use a configuration directory scoped to the application version")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warning, error, critical)")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.logToConsole, "log-to-console", false, "Write logs to the console too")
	fs.StringArrayVar(&f.pumpDirs, "pump-dir", nil, "Extra pump type directory (repeatable)")
	fs.BoolVar(&f.pumpOnStartup, "pump-on-startup", false, "Start pumping on startup")

	return f
}

// Overrides returns the settings whose flags were given on the command
// line. Flags left at their defaults do not override anything.
func (f *Flags) Overrides() Overrides {
	var o Overrides

	if f.fs.Changed("log-level") {
		o.LogLevel = &f.logLevel
	}
	if f.fs.Changed("debug") {
		o.Debug = &f.debug
	}
	if f.fs.Changed("log-to-console") {
		o.LogToConsole = &f.logToConsole
	}
	if f.fs.Changed("pump-dir") {
		o.PumpDirectories = &f.pumpDirs
	}
	if f.fs.Changed("pump-on-startup") {
		o.PumpOnStartup = &f.pumpOnStartup
	}

	return o
}

// Options converts the parsed flags into [Load] options.
func (f *Flags) Options() []Option {
	opts := []Option{WithOverrides(f.Overrides())}

	if f.configDir != "" {
		opts = append(opts, WithConfigDir(f.configDir))
	}
	if f.versioned {
		opts = append(opts, WithVersionedDir())
	}

	return opts
}
