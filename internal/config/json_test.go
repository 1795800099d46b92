package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSettingsPath = filepath.Join(testNewDir, SettingsFileName)

func TestEnsureSettingsFile_WritesDefaults(t *testing.T) {
	// Arrange
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testNewDir, 0o755))

	// Act
	created, err := EnsureSettingsFile(fs, testSettingsPath)

	// Assert
	require.NoError(t, err)
	assert.True(t, created)

	data, err := afero.ReadFile(fs, testSettingsPath)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, map[string]any{
		"LOG_LEVEL":          "info",
		"DEBUG":              false,
		"PUMP_DIRECTORIES":   []any{},
		"DB_CONNECT_TIMEOUT": float64(3),
		"PUMP_ON_STARTUP":    false,
	}, doc)
}

func TestEnsureSettingsFile_TwoSpaceIndent(t *testing.T) {
	// Arrange
	fs := afero.NewMemMapFs()

	// Act
	_, err := EnsureSettingsFile(fs, testSettingsPath)

	// Assert
	require.NoError(t, err)
	want := "{\n" +
		"  \"LOG_LEVEL\": \"info\",\n" +
		"  \"DEBUG\": false,\n" +
		"  \"PUMP_DIRECTORIES\": [],\n" +
		"  \"DB_CONNECT_TIMEOUT\": 3,\n" +
		"  \"PUMP_ON_STARTUP\": false\n" +
		"}"
	assert.Equal(t, want, readFile(t, fs, testSettingsPath))
}

func TestEnsureSettingsFile_KeepsExistingFile(t *testing.T) {
	// Arrange
	base := afero.NewMemMapFs()
	writeFiles(t, base, testNewDir, map[string]string{SettingsFileName: `{"DEBUG": true}`})

	// Act: a read-only view fails on any write
	created, err := EnsureSettingsFile(afero.NewReadOnlyFs(base), testSettingsPath)

	// Assert
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, `{"DEBUG": true}`, readFile(t, base, testSettingsPath))
}

func TestEnsureSettingsFile_WriteFailure(t *testing.T) {
	// Arrange
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	// Act
	created, err := EnsureSettingsFile(fs, testSettingsPath)

	// Assert
	require.Error(t, err)
	assert.False(t, created)
	assert.ErrorIs(t, err, ErrSettingsWrite)

	var writeErr *SettingsWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, testSettingsPath, writeErr.Path)
	assert.Contains(t, err.Error(), testSettingsPath)
}

func TestEnsureSettingsFile_OsFs(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, SettingsFileName)

	// Act
	created, err := EnsureSettingsFile(afero.NewOsFs(), p)

	// Assert
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	// no temporary files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEnsureSettingsFile_OsFsMissingParent(t *testing.T) {
	// Arrange
	p := filepath.Join(t.TempDir(), "missing", SettingsFileName)

	// Act
	_, err := EnsureSettingsFile(afero.NewOsFs(), p)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSettingsWrite)
}

func TestLoadSettings_KnownAndUnknownKeys(t *testing.T) {
	// Arrange
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, testNewDir, map[string]string{
		SettingsFileName: `{"LOG_LEVEL": "debug", "UNKNOWN_KEY": 123}`,
	})

	// Act
	o, err := LoadSettings(fs, testSettingsPath)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, o.LogLevel)
	assert.Equal(t, "debug", *o.LogLevel)
	assert.Equal(t, Overrides{LogLevel: o.LogLevel}, o)
}

func TestLoadSettings_KeysAreCaseSensitive(t *testing.T) {
	// Arrange
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, testNewDir, map[string]string{
		SettingsFileName: `{"LOG_LEVEL": "debug", "log_level": "error", "debug": true, "Pump_On_Startup": true}`,
	})

	// Act
	o, err := LoadSettings(fs, testSettingsPath)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, o.LogLevel)
	assert.Equal(t, "debug", *o.LogLevel)
	assert.Nil(t, o.Debug)
	assert.Nil(t, o.PumpOnStartup)

	cfg := Defaults(Runtime{Root: "/src"})
	cfg.apply(o)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.PumpOnStartup)
}

func TestSettingsKeys(t *testing.T) {
	assert.Len(t, settingsKeys, 14)
	assert.True(t, settingsKeys["MAX_HTTP_307_COUNT"])
	assert.False(t, settingsKeys["max_http_307_count"])
}

func TestLoadSettings_AllKeys(t *testing.T) {
	// Arrange
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, testNewDir, map[string]string{SettingsFileName: `{
		"APPNAME": "pump",
		"VENDOR": "Clinic",
		"VERSION": "v9",
		"LOG_LEVEL": "error",
		"DEBUG": true,
		"LOG_TO_CONSOLE": true,
		"PUMP_DIRECTORIES": ["/a", "/b"],
		"DB_CONNECT_TIMEOUT": 3,
		"MAX_HTTP_307_COUNT": 5,
		"HTTP_307_SLEEP_TIME": 0.25,
		"BROWSER_USER_AGENT": "",
		"PUMP_ON_STARTUP": true,
		"RESOURCES": "/res",
		"IMG_RESOURCES": "/res/images"
	}`})

	// Act
	o, err := LoadSettings(fs, testSettingsPath)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pump", *o.AppName)
	assert.Equal(t, "Clinic", *o.Vendor)
	assert.Equal(t, "v9", *o.Version)
	assert.Equal(t, "error", *o.LogLevel)
	assert.True(t, *o.Debug)
	assert.True(t, *o.LogToConsole)
	assert.Equal(t, []string{"/a", "/b"}, *o.PumpDirectories)
	assert.Equal(t, Seconds(3*time.Second), *o.DBConnectTimeout)
	assert.Equal(t, 5, *o.MaxHTTP307Count)
	assert.Equal(t, Seconds(250*time.Millisecond), *o.HTTP307SleepTime)
	assert.Equal(t, "", *o.BrowserUserAgent)
	assert.True(t, *o.PumpOnStartup)
	assert.Equal(t, "/res", *o.Resources)
	assert.Equal(t, "/res/images", *o.ImgResources)
}

func TestLoadSettings_NullLeavesDefault(t *testing.T) {
	// Arrange
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, testNewDir, map[string]string{SettingsFileName: `{"PUMP_DIRECTORIES": null}`})

	// Act
	o, err := LoadSettings(fs, testSettingsPath)

	// Assert
	require.NoError(t, err)
	assert.Nil(t, o.PumpDirectories)
}

func TestLoadSettings_InvalidJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "truncated", body: `{"LOG_LEVEL": "deb`},
		{name: "empty file", body: ``},
		{name: "array", body: `["LOG_LEVEL"]`},
		{name: "null", body: `null`},
		{name: "string", body: `"LOG_LEVEL"`},
		{name: "wrong type", body: `{"DEBUG": "yes"}`},
		{name: "bad duration", body: `{"DB_CONNECT_TIMEOUT": "soon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			fs := afero.NewMemMapFs()
			writeFiles(t, fs, testNewDir, map[string]string{SettingsFileName: tt.body})

			// Act
			_, err := LoadSettings(fs, testSettingsPath)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSettingsParse)

			var parseErr *SettingsParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, testSettingsPath, parseErr.Path)
			assert.Contains(t, err.Error(), testSettingsPath)
		})
	}
}

func TestSeconds_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: `3`, want: 3 * time.Second},
		{in: `0.5`, want: 500 * time.Millisecond},
		{in: `"1m30s"`, want: 90 * time.Second},
		{in: `"2"`, want: 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var s Seconds
			require.NoError(t, json.Unmarshal([]byte(tt.in), &s))
			assert.Equal(t, tt.want, time.Duration(s))
		})
	}
}

func TestSeconds_UnmarshalJSON_Invalid(t *testing.T) {
	var s Seconds
	assert.Error(t, json.Unmarshal([]byte(`true`), &s))
	assert.Error(t, json.Unmarshal([]byte(`"later"`), &s))
}

func TestSeconds_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Seconds(1500 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, `1.5`, string(data))
}
