/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package version provides build version information.
package version

// Version is the current version of skald.
// This is set at build time via ldflags:
//
//	-X github.com/friendsincode/skald/version.Version=X.Y.Z
var Version = "0.4.1"

// UserAgent returns the identification string used on outgoing HTTP requests.
func UserAgent() string {
	return "skald/" + Version + " (https://github.com/friendsincode/skald)"
}
