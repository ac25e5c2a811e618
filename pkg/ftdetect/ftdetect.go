// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ftdetect detects the format of schema documents.
package ftdetect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

type FileType int

const (
	Unknown FileType = iota
	TOML
	YAML
	JSON
	Zstd
)

func (ft FileType) String() string {
	switch ft {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	case Zstd:
		return "zstd"
	}
	return "unknown"
}

// ParseFileType returns the FileType named s, as accepted by --schema-format.
func ParseFileType(s string) (FileType, error) {
	switch strings.ToLower(s) {
	case "toml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	case "json", "hujson":
		return JSON, nil
	}
	return Unknown, fmt.Errorf("unknown schema format %q", s)
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// IsZstd reports whether b starts with the zstd frame magic number.
func IsZstd(b []byte) bool {
	return bytes.HasPrefix(b, zstdMagic)
}

// DetectSchema returns the format of a schema document named name. The
// extension decides first; a ".zst" suffix is ignored. Otherwise the content
// is sniffed for a JSON, TOML or YAML document with an identifier.
func DetectSchema(name string, data []byte) (FileType, error) {
	if IsZstd(data) {
		return Unknown, fmt.Errorf("schema %s is still compressed", name)
	}
	if ft, ok := detectByName(name); ok {
		return ft, nil
	}
	if detectJSON(data) {
		return JSON, nil
	}
	if detectTOML(data) {
		return TOML, nil
	}
	if detectYAML(data) {
		return YAML, nil
	}
	return Unknown, fmt.Errorf("unable to detect schema format of %s", name)
}

func detectByName(name string) (FileType, bool) {
	if name == "" || name == "-" {
		return Unknown, false
	}

	base := strings.ToLower(filepath.Base(name))
	for _, suffix := range []string{".zst", ".zstd"} {
		base = strings.TrimSuffix(base, suffix)
	}

	switch filepath.Ext(base) {
	case ".toml":
		return TOML, true
	case ".yml", ".yaml":
		return YAML, true
	case ".json", ".hujson":
		return JSON, true
	}
	return Unknown, false
}

// identifierForm is the smallest shape every schema format shares.
type identifierForm struct {
	Identifier string `json:"identifier" toml:"identifier" yaml:"identifier"`
}

// detectJSON accepts JSON with comments and trailing commas.
func detectJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' && trimmed[0] != '/' {
		return false
	}
	std, err := hujson.Standardize(bytes.Clone(trimmed))
	if err != nil {
		return false
	}
	var form identifierForm
	if err := json.Unmarshal(std, &form); err != nil {
		return false
	}
	return form.Identifier != ""
}

func detectTOML(data []byte) bool {
	var form identifierForm
	if _, err := toml.Decode(string(data), &form); err != nil {
		return false
	}
	return form.Identifier != ""
}

func detectYAML(data []byte) bool {
	var form identifierForm
	if err := yaml.Unmarshal(data, &form); err != nil {
		return false
	}
	return form.Identifier != ""
}
