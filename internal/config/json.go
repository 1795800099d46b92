package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/renameio/v2/maybe"
	"github.com/spf13/afero"
)

// Overrides is a typed overlay of the settings that can be changed without
// rebuilding. A nil field is not set; a non-nil field replaces the value
// below it. The JSON keys are the settings.json keys, unknown keys are
// ignored when decoding.
type Overrides struct {
	AppName          *string   `json:"APPNAME,omitempty"`
	Vendor           *string   `json:"VENDOR,omitempty"`
	Version          *string   `json:"VERSION,omitempty"`
	LogLevel         *string   `json:"LOG_LEVEL,omitempty"`
	Debug            *bool     `json:"DEBUG,omitempty"`
	LogToConsole     *bool     `json:"LOG_TO_CONSOLE,omitempty"`
	PumpDirectories  *[]string `json:"PUMP_DIRECTORIES,omitempty"`
	DBConnectTimeout *Seconds  `json:"DB_CONNECT_TIMEOUT,omitempty"`
	MaxHTTP307Count  *int      `json:"MAX_HTTP_307_COUNT,omitempty"`
	HTTP307SleepTime *Seconds  `json:"HTTP_307_SLEEP_TIME,omitempty"`
	BrowserUserAgent *string   `json:"BROWSER_USER_AGENT,omitempty"`
	PumpOnStartup    *bool     `json:"PUMP_ON_STARTUP,omitempty"`
	Resources        *string   `json:"RESOURCES,omitempty"`
	ImgResources     *string   `json:"IMG_RESOURCES,omitempty"`
}

// settingsKeys is the set of exact settings.json keys, taken from the json
// tags of [Overrides].
var settingsKeys = func() map[string]bool {
	t := reflect.TypeOf(Overrides{})
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		keys[name] = true
	}
	return keys
}()

var errNotObject = errors.New("top-level value is not an object")

// defaultSettings is the document written to a fresh settings.json. Field
// order is the key order in the file.
type defaultSettings struct {
	LogLevel         string   `json:"LOG_LEVEL"`
	Debug            bool     `json:"DEBUG"`
	PumpDirectories  []string `json:"PUMP_DIRECTORIES"`
	DBConnectTimeout Seconds  `json:"DB_CONNECT_TIMEOUT"`
	PumpOnStartup    bool     `json:"PUMP_ON_STARTUP"`
}

func newDefaultSettings() defaultSettings {
	return defaultSettings{
		LogLevel:         "info",
		Debug:            false,
		PumpDirectories:  []string{},
		DBConnectTimeout: Seconds(3 * time.Second),
		PumpOnStartup:    false,
	}
}

// EnsureSettingsFile writes the default settings document to path unless a
// file already exists there. It reports whether a file was written.
//
// Any failure is returned as a *SettingsWriteError.
func EnsureSettingsFile(fs afero.Fs, path string) (bool, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return false, &SettingsWriteError{Path: path, Err: err}
	}
	if exists {
		return false, nil
	}

	data, err := json.MarshalIndent(newDefaultSettings(), "", "  ")
	if err != nil {
		return false, &SettingsWriteError{Path: path, Err: err}
	}

	if err = writeFile(fs, path, data); err != nil {
		return false, &SettingsWriteError{Path: path, Err: err}
	}

	return true, nil
}

// writeFile replaces path atomically when fs is the OS filesystem.
func writeFile(fs afero.Fs, path string, data []byte) error {
	if _, ok := fs.(*afero.OsFs); ok {
		return maybe.WriteFile(path, data, 0o644)
	}
	return afero.WriteFile(fs, path, data, 0o644)
}

// LoadSettings decodes the settings file at path. The document must be a
// JSON object. Keys that do not exactly name a known setting are ignored
// (matching is case sensitive), while a known key holding a value of the
// wrong JSON type is an error.
//
// Read and decode failures are returned as a *SettingsParseError.
func LoadSettings(fs afero.Fs, path string) (Overrides, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Overrides{}, &SettingsParseError{Path: path, Err: err}
	}

	var doc map[string]json.RawMessage
	if err = json.Unmarshal(data, &doc); err != nil {
		return Overrides{}, &SettingsParseError{Path: path, Err: err}
	}
	if doc == nil {
		return Overrides{}, &SettingsParseError{Path: path, Err: errNotObject}
	}

	// encoding/json folds case when matching struct tags
	for key := range doc {
		if !settingsKeys[key] {
			delete(doc, key)
		}
	}

	known, err := json.Marshal(doc)
	if err != nil {
		return Overrides{}, &SettingsParseError{Path: path, Err: err}
	}

	var o Overrides
	if err = json.Unmarshal(known, &o); err != nil {
		return Overrides{}, &SettingsParseError{Path: path, Err: err}
	}

	return o, nil
}

// Seconds is a wrapper around time.Duration that reads JSON numbers as
// seconds (fractions allowed) and strings like "1m30s" as Go durations.
type Seconds time.Duration

func (s *Seconds) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*s = Seconds(time.Duration(value * float64(time.Second)))
		return nil
	case string:
		return s.UnmarshalText([]byte(value))
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
}

func (s Seconds) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(s).Seconds())
}

// UnmarshalText accepts a bare number of seconds or a Go duration string.
func (s *Seconds) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*s = Seconds(time.Duration(f * float64(time.Second)))
		return nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*s = Seconds(d)
	return nil
}
