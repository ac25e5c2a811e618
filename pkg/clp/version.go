// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clp

import (
	"runtime/debug"
	"strings"
)

// Version is the release of the parser grammar and error vocabulary.
// Schemas constrain it with their requires field.
const Version = "0.1.0"

// buildVersion is injected at build time via -ldflags.
var buildVersion string

// BuildVersion returns the release version if set, otherwise Version with
// the commit hash as build metadata.
func BuildVersion() string {
	if v := strings.TrimSpace(buildVersion); v != "" {
		return v
	}
	if c := Commit(); c != "dev" && c != "unknown" {
		return Version + "+" + strings.ReplaceAll(c, "+", ".")
	}
	return Version
}

// Commit returns the commit hash of the current build.
func Commit() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	var dirty bool
	var commit string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if commit == "" {
		return "dev"
	}
	if len(commit) >= 9 {
		commit = commit[:9]
	}
	if dirty {
		commit += "+dirty"
	}
	return commit
}
