// Copyright (c) 2026 Inkwell Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

// Build-time version information injected via ldflags.
var (
	// Version is the semantic version from git tags (e.g., "v1.2.3").
	Version = "dev"
	// GitCommit is the short git commit hash (e.g., "abc1234").
	GitCommit = "unknown"
	// BuildTime is the build timestamp in RFC3339 format.
	BuildTime = "unknown"
)
