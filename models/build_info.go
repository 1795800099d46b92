// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds plain data types shared between qcpump packages.
package models

import "fmt"

// NotAvailable replaces build metadata that was not injected at link time.
const NotAvailable = "N/A"

// BuildInfo carries build-time metadata embedded into the binary through
// -ldflags -X, next to the application version the configuration reports.
type BuildInfo struct {
	appVersion   string
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewBuildInfo constructs [BuildInfo]. Empty values become [NotAvailable].
func NewBuildInfo(appVersion, buildVersion, buildDate, buildCommit string) BuildInfo {
	return BuildInfo{
		appVersion:   orNotAvailable(appVersion),
		buildVersion: orNotAvailable(buildVersion),
		buildDate:    orNotAvailable(buildDate),
		buildCommit:  orNotAvailable(buildCommit),
	}
}

func (b BuildInfo) AppVersion() string   { return b.appVersion }
func (b BuildInfo) BuildVersion() string { return b.buildVersion }
func (b BuildInfo) BuildDate() string    { return b.buildDate }
func (b BuildInfo) BuildCommit() string  { return b.buildCommit }

// String renders the metadata one field per line.
func (b BuildInfo) String() string {
	return fmt.Sprintf("QCPump version: %s\nBuild version: %s\nBuild date: %s\nBuild commit: %s\n",
		b.appVersion, b.buildVersion, b.buildDate, b.buildCommit)
}

func orNotAvailable(v string) string {
	if v == "" {
		return NotAvailable
	}
	return v
}
