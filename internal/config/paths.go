package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Scope selects between machine wide and per user configuration storage.
type Scope int

const (
	// UserScope stores configuration for the current user only.
	UserScope Scope = iota
	// SiteScope stores configuration shared by every user of the machine.
	SiteScope
)

// PlatformDirs holds the platform identifier and the base directories
// configuration paths are derived from. Capturing them in a value keeps
// [ConfigDir] free of I/O.
type PlatformDirs struct {
	// GOOS is the platform identifier, as in runtime.GOOS.
	GOOS string

	Home          string
	XDGConfigHome string
	// LocalAppData and ProgramData are only used on Windows.
	LocalAppData string
	ProgramData  string
}

// PlatformDirsFromEnv captures the base directories of the current process.
func PlatformDirsFromEnv() PlatformDirs {
	home, _ := os.UserHomeDir()

	return PlatformDirs{
		GOOS:          runtime.GOOS,
		Home:          home,
		XDGConfigHome: os.Getenv("XDG_CONFIG_HOME"),
		LocalAppData:  os.Getenv("LOCALAPPDATA"),
		ProgramData:   os.Getenv("ProgramData"),
	}
}

// DefaultScope returns the scope the configuration directory lives in on
// goos: site wide on Windows, per user everywhere else.
func DefaultScope(goos string) Scope {
	if strings.HasPrefix(strings.ToLower(goos), "windows") {
		return SiteScope
	}
	return UserScope
}

// ConfigDir returns the configuration directory of app published by
// vendor, following the convention of dirs.GOOS. A non-empty version adds a
// trailing version segment. The vendor segment is only used on Windows.
func ConfigDir(dirs PlatformDirs, scope Scope, app, vendor, version string) string {
	var base string

	switch strings.ToLower(dirs.GOOS) {
	case "windows":
		if scope == SiteScope {
			base = orDefault(dirs.ProgramData, `C:\ProgramData`)
		} else {
			base = orDefault(dirs.LocalAppData, filepath.Join(dirs.Home, "AppData", "Local"))
		}
		base = filepath.Join(base, vendor, app)
	case "darwin", "ios":
		if scope == SiteScope {
			base = filepath.Join("/Library", "Application Support", app)
		} else {
			base = filepath.Join(dirs.Home, "Library", "Application Support", app)
		}
	default:
		if scope == SiteScope {
			base = filepath.Join("/etc", "xdg", app)
		} else {
			base = filepath.Join(orDefault(dirs.XDGConfigHome, filepath.Join(dirs.Home, ".config")), app)
		}
	}

	if version != "" {
		return filepath.Join(base, version)
	}
	return base
}

// LegacyConfigDir returns where configuration was stored before the
// directory became platform scoped: the unversioned per user directory.
func LegacyConfigDir(dirs PlatformDirs, app, vendor string) string {
	return ConfigDir(dirs, UserScope, app, vendor, "")
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
