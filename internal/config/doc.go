// Package config resolves the runtime configuration of the qcpump
// application.
//
// Loading is a linear bootstrap executed once at process start:
//  1. Detect the [Runtime] (source run or packaged executable) and its root.
//  2. Compute the platform configuration directory ([ConfigDir]).
//  3. Migrate a legacy directory forward, or create the directory
//     ([InitConfigDir]).
//  4. Write a default settings.json when none exists
//     ([EnsureSettingsFile]).
//  5. Decode settings.json into [Overrides] ([LoadSettings]) and merge it,
//     the QCPUMP_* environment and any explicit overrides onto the compiled
//     defaults.
//
// Later sources override earlier ones (lowest first):
//  1. Compiled defaults
//  2. settings.json
//  3. Environment variables
//  4. Explicit overrides (command-line flags)
//
// The main entry point is [Load]. The returned [Configuration] is not
// modified afterwards and may be shared between goroutines.
package config
