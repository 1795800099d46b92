// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"path/filepath"
	"time"
)

// Application identity. These select the configuration directory and are
// therefore fixed before settings.json is read.
const (
	AppName = "qcpump"
	Vendor  = "QATrack Project"
	Version = "v0.3.16"

	// SettingsFileName is the name of the settings file inside the
	// configuration directory.
	SettingsFileName = "settings.json"
)

const defaultBrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/70.0.3538.102 Safari/537.36 Edge/18.19582"

// Configuration is the resolved runtime configuration of the application.
// It is produced once by [Load] and treated as read-only afterwards.
type Configuration struct {
	// AppName, Vendor and Version identify the application. They may be
	// overridden by settings.json but never move the configuration
	// directory, which is resolved before the file is read.
	AppName string
	Vendor  string
	Version string

	// LogLevel is one of debug | info | warning | error | critical.
	LogLevel string
	// Debug primarily controls how things are logged.
	Debug bool
	// LogToConsole writes logs to the console as well as the log file.
	LogToConsole bool

	// PumpDirectories lists extra directories holding user defined pump
	// types. The first party directory is always searched first, see
	// [Configuration.PumpTypeDirectories].
	PumpDirectories []string
	// DefaultPumpDirectory is the first party pump type directory.
	DefaultPumpDirectory string

	// DBConnectTimeout is the timeout for database connections where the
	// driver supports one.
	DBConnectTimeout time.Duration

	// MaxHTTP307Count is how many times an HTTP 307 Temporary Redirect is
	// retried before giving up.
	MaxHTTP307Count int
	// HTTP307SleepTime is the pause between two 307 retries.
	HTTP307SleepTime time.Duration
	// BrowserUserAgent is sent as User-Agent on QATrack+ API requests.
	// Empty disables the header.
	BrowserUserAgent string

	// PumpOnStartup starts pumping as soon as the application is up.
	PumpOnStartup bool

	// Runtime is the detected packaging mode and filesystem root.
	Runtime Runtime
	// Resources is the root resource directory.
	Resources string
	// ImgResources is where images are stored.
	ImgResources string

	// ConfigDir is the configuration directory holding SettingsFile.
	ConfigDir string
	// SettingsFile is the absolute path of settings.json.
	SettingsFile string
}

// Defaults returns the compiled default configuration for rt. Path fields
// that depend on the configuration directory are left empty.
func Defaults(rt Runtime) Configuration {
	resources := rt.ResourcePath("resources")

	return Configuration{
		AppName:              AppName,
		Vendor:               Vendor,
		Version:              Version,
		LogLevel:             "info",
		Debug:                false,
		LogToConsole:         false,
		PumpDirectories:      nil,
		DefaultPumpDirectory: rt.ResourcePath(filepath.Join("contrib", "pumps")),
		DBConnectTimeout:     30 * time.Second,
		MaxHTTP307Count:      3,
		HTTP307SleepTime:     500 * time.Millisecond,
		BrowserUserAgent:     defaultBrowserUserAgent,
		PumpOnStartup:        false,
		Runtime:              rt,
		Resources:            resources,
		ImgResources:         filepath.Join(resources, "img"),
	}
}

// ImgPath returns the full path of the image resource named fileName. The
// file is not required to exist.
func (c *Configuration) ImgPath(fileName string) string {
	return filepath.Join(c.ImgResources, fileName)
}

// Icon returns the full path of the PNG icon named iconName.
func (c *Configuration) Icon(iconName string) string {
	return filepath.Join(c.ImgResources, "icons", iconName+".png")
}

// PumpTypeDirectories returns every directory pump types are loaded from:
// the first party directory followed by the user configured ones.
func (c *Configuration) PumpTypeDirectories() []string {
	dirs := make([]string, 0, len(c.PumpDirectories)+1)
	dirs = append(dirs, c.DefaultPumpDirectory)
	return append(dirs, c.PumpDirectories...)
}

// apply copies every field set in o onto c.
func (c *Configuration) apply(o Overrides) {
	if o.AppName != nil {
		c.AppName = *o.AppName
	}
	if o.Vendor != nil {
		c.Vendor = *o.Vendor
	}
	if o.Version != nil {
		c.Version = *o.Version
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.Debug != nil {
		c.Debug = *o.Debug
	}
	if o.LogToConsole != nil {
		c.LogToConsole = *o.LogToConsole
	}
	if o.PumpDirectories != nil {
		c.PumpDirectories = append([]string(nil), (*o.PumpDirectories)...)
	}
	if o.DBConnectTimeout != nil {
		c.DBConnectTimeout = time.Duration(*o.DBConnectTimeout)
	}
	if o.MaxHTTP307Count != nil {
		c.MaxHTTP307Count = *o.MaxHTTP307Count
	}
	if o.HTTP307SleepTime != nil {
		c.HTTP307SleepTime = time.Duration(*o.HTTP307SleepTime)
	}
	if o.BrowserUserAgent != nil {
		c.BrowserUserAgent = *o.BrowserUserAgent
	}
	if o.PumpOnStartup != nil {
		c.PumpOnStartup = *o.PumpOnStartup
	}
	if o.Resources != nil {
		c.Resources = *o.Resources
	}
	if o.ImgResources != nil {
		c.ImgResources = *o.ImgResources
	}
}

// Load resolves the configuration of the running process: it detects the
// runtime, prepares the configuration directory, makes sure settings.json
// exists and merges it, the QCPUMP_* environment and opts overrides onto
// the defaults.
//
// Returns a *SettingsWriteError when the default settings file cannot be
// written and a *SettingsParseError when settings.json is not valid. Errors
// creating or migrating the configuration directory are returned unchanged.
func Load(opts ...Option) (*Configuration, error) {
	return newConfigBuilder(opts...).
		withRuntime().
		withConfigDir().
		withSettingsFile().
		withEnv().
		withOverrides().
		build()
}
