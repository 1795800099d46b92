// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// envSettings mirrors [Overrides] for the QCPUMP_* environment variables.
// Fields are plain values; which of them were actually set is tracked
// separately by ParseEnv.
type envSettings struct {
	LogLevel         string  `env:"QCPUMP_LOG_LEVEL"`
	Debug            bool    `env:"QCPUMP_DEBUG"`
	LogToConsole     bool    `env:"QCPUMP_LOG_TO_CONSOLE"`
	PumpDirectories  string  `env:"QCPUMP_PUMP_DIRECTORIES"`
	DBConnectTimeout Seconds `env:"QCPUMP_DB_CONNECT_TIMEOUT"`
	MaxHTTP307Count  int     `env:"QCPUMP_MAX_HTTP_307_COUNT"`
	HTTP307SleepTime Seconds `env:"QCPUMP_HTTP_307_SLEEP_TIME"`
	BrowserUserAgent string  `env:"QCPUMP_BROWSER_USER_AGENT"`
	PumpOnStartup    bool    `env:"QCPUMP_PUMP_ON_STARTUP"`
}

// ParseEnv reads the QCPUMP_* variables of e into an [Overrides] using the
// caarlos0/env library. Only variables that are set and non-empty produce a
// non-nil field. QCPUMP_PUMP_DIRECTORIES is a list separated by the OS path
// list separator.
//
// Returns a wrapped error if a value cannot be converted to the target type.
func ParseEnv(e Environment) (Overrides, error) {
	var raw envSettings

	params, err := env.GetFieldParams(&raw)
	if err != nil {
		return Overrides{}, fmt.Errorf("error getting env configs: %w", err)
	}

	vars := make(map[string]string, len(params))
	for _, p := range params {
		if v := e.Getenv(p.Key); v != "" {
			vars[p.Key] = v
		}
	}

	set := make(map[string]bool)
	err = env.ParseWithOptions(&raw, env.Options{
		Environment: vars,
		OnSet: func(tag string, value interface{}, isDefault bool) {
			if s, ok := value.(string); ok && s != "" {
				set[tag] = true
			}
		},
	})
	if err != nil {
		return Overrides{}, fmt.Errorf("error getting env configs: %w", err)
	}

	var o Overrides
	if set["QCPUMP_LOG_LEVEL"] {
		o.LogLevel = &raw.LogLevel
	}
	if set["QCPUMP_DEBUG"] {
		o.Debug = &raw.Debug
	}
	if set["QCPUMP_LOG_TO_CONSOLE"] {
		o.LogToConsole = &raw.LogToConsole
	}
	if set["QCPUMP_PUMP_DIRECTORIES"] {
		dirs := filepath.SplitList(raw.PumpDirectories)
		o.PumpDirectories = &dirs
	}
	if set["QCPUMP_DB_CONNECT_TIMEOUT"] {
		o.DBConnectTimeout = &raw.DBConnectTimeout
	}
	if set["QCPUMP_MAX_HTTP_307_COUNT"] {
		o.MaxHTTP307Count = &raw.MaxHTTP307Count
	}
	if set["QCPUMP_HTTP_307_SLEEP_TIME"] {
		o.HTTP307SleepTime = &raw.HTTP307SleepTime
	}
	if set["QCPUMP_BROWSER_USER_AGENT"] {
		o.BrowserUserAgent = &raw.BrowserUserAgent
	}
	if set["QCPUMP_PUMP_ON_STARTUP"] {
		o.PumpOnStartup = &raw.PumpOnStartup
	}

	return o, nil
}
