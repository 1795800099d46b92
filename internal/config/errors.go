package config

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed settings errors, so callers can use
// [errors.Is] without caring about the path.
var (
	// ErrSettingsWrite indicates the default settings file could not be
	// created.
	ErrSettingsWrite = errors.New("unable to create settings file")
	// ErrSettingsParse indicates the settings file is not valid JSON or holds
	// a value of the wrong type.
	ErrSettingsParse = errors.New("settings file is not valid json")
)

// SettingsWriteError is returned when the default settings file cannot be
// written (permissions, disk full, path conflict).
type SettingsWriteError struct {
	Path string
	Err  error
}

func (e *SettingsWriteError) Error() string {
	return fmt.Sprintf("unable to create settings file %s: %v", e.Path, e.Err)
}

func (e *SettingsWriteError) Unwrap() error { return e.Err }

func (e *SettingsWriteError) Is(target error) bool { return target == ErrSettingsWrite }

// SettingsParseError is returned when the settings file cannot be decoded.
type SettingsParseError struct {
	Path string
	Err  error
}

func (e *SettingsParseError) Error() string {
	return fmt.Sprintf("settings file %s is not valid json: %v", e.Path, e.Err)
}

func (e *SettingsParseError) Unwrap() error { return e.Err }

func (e *SettingsParseError) Is(target error) bool { return target == ErrSettingsParse }
