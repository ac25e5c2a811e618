// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema declares clp parsers in TOML, YAML or JSON documents.
//
// A schema names the identifier and lists the parameters in order:
//
//	identifier = "greet"
//	requires = ">= 0.1"
//
//	[[param]]
//	short = ["n"]
//	long = ["name"]
//	brief = "who to greet"
//	type = "string"
//	required = true
//
//	[[param]]
//	short = ["t"]
//	long = ["times"]
//	type = "int"
//	default = 1
//
// JSON schemas may carry comments and trailing commas.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/tailscale/hujson"
	"github.com/yeetrun/clp/pkg/clp"
	"github.com/yeetrun/clp/pkg/codecutil"
	"github.com/yeetrun/clp/pkg/ftdetect"
	"gopkg.in/yaml.v3"
	"tailscale.com/types/logger"
)

// Schema is a parser declaration.
type Schema struct {
	Identifier string     `json:"identifier" toml:"identifier" yaml:"identifier"`
	Requires   string     `json:"requires,omitempty" toml:"requires,omitempty" yaml:"requires,omitempty"`
	Params     []ParamDef `json:"param" toml:"param" yaml:"param"`
}

// ParamDef declares one parameter. Short keys are single characters.
type ParamDef struct {
	Short    []string `json:"short,omitempty" toml:"short,omitempty" yaml:"short,omitempty"`
	Long     []string `json:"long,omitempty" toml:"long,omitempty" yaml:"long,omitempty"`
	Brief    string   `json:"brief,omitempty" toml:"brief,omitempty" yaml:"brief,omitempty"`
	Type     string   `json:"type" toml:"type" yaml:"type"`
	Required bool     `json:"required,omitempty" toml:"required,omitempty" yaml:"required,omitempty"`
	// Default is converted like a command-line word. Numbers and booleans
	// are accepted as well as strings.
	Default any `json:"default,omitempty" toml:"default,omitempty" yaml:"default,omitempty"`
}

// DefaultText returns the default as the word a command line would carry.
// Floats decoded from YAML or TOML are written without exponents.
func (d ParamDef) DefaultText() (string, bool) {
	switch v := d.Default.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return fmt.Sprint(v), true
	}
}

// Keys returns the keys of d with their dashes, short keys first.
func (d ParamDef) Keys() []string {
	keys := make([]string, 0, len(d.Short)+len(d.Long))
	for _, s := range d.Short {
		keys = append(keys, "-"+s)
	}
	for _, l := range d.Long {
		keys = append(keys, "--"+l)
	}
	return keys
}

// Load reads a schema from path, or stdin for "-". The file may be zstd
// compressed.
func Load(path string) (*Schema, error) {
	data, err := codecutil.ReadInput(path)
	if err != nil {
		return nil, err
	}
	ft, err := ftdetect.DetectSchema(path, data)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data, ft)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a schema document of the given format and validates it.
// Unknown fields are rejected.
func Parse(data []byte, ft ftdetect.FileType) (*Schema, error) {
	var s Schema
	switch ft {
	case ftdetect.TOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, fmt.Errorf("failed to decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown toml field %q", undecoded[0].String())
		}
	case ftdetect.YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	case ftdetect.JSON:
		std, err := hujson.Standardize(bytes.Clone(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode json: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(std))
		dec.DisallowUnknownFields()
		dec.UseNumber()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported schema format %v", ft)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the schema without building it. It reports every problem
// it finds.
func (s *Schema) Validate() error {
	var errs []error
	if s.Identifier == "" {
		errs = append(errs, errors.New("identifier is empty"))
	} else if strings.ContainsFunc(s.Identifier, unicode.IsSpace) {
		errs = append(errs, fmt.Errorf("identifier %q contains whitespace", s.Identifier))
	}
	if s.Requires != "" {
		if _, err := semver.NewConstraint(s.Requires); err != nil {
			errs = append(errs, fmt.Errorf("requires %q: %w", s.Requires, err))
		}
	}
	for i, d := range s.Params {
		if len(d.Short) == 0 && len(d.Long) == 0 {
			errs = append(errs, fmt.Errorf("param %d: no keys", i))
		}
		for _, short := range d.Short {
			if utf8.RuneCountInString(short) != 1 {
				errs = append(errs, fmt.Errorf("param %d: short key %q is not a single character", i, short))
			}
		}
		if !KnownType(d.Type) {
			errs = append(errs, fmt.Errorf("param %d: unknown type %q", i, d.Type))
		}
	}
	return errors.Join(errs...)
}

// CheckVersion reports an error if the schema's requires constraint does not
// admit version.
func (s *Schema) CheckVersion(version string) error {
	if s.Requires == "" {
		return nil
	}
	c, err := semver.NewConstraint(s.Requires)
	if err != nil {
		return fmt.Errorf("requires %q: %w", s.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("version %q: %w", version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("schema requires %s, have %s", s.Requires, version)
	}
	return nil
}

// Option configures the parser returned by Build.
type Option func(*clp.Parser)

// WithLogf traces every parse of the built parser to logf.
func WithLogf(logf logger.Logf) Option {
	return func(p *clp.Parser) {
		p.SetLogf(logf)
	}
}

// Build returns a new parser for the schema. Each call returns independent
// parameters, so parsers built from one schema may run concurrently.
func (s *Schema) Build(opts ...Option) (*clp.Parser, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	params := make([]clp.Parameter, 0, len(s.Params))
	for i, d := range s.Params {
		shorts := make([]rune, 0, len(d.Short))
		for _, short := range d.Short {
			r, _ := utf8.DecodeRuneInString(short)
			shorts = append(shorts, r)
		}
		p, err := types[d.Type](d, shorts)
		if err != nil {
			return nil, fmt.Errorf("param %d (%s): %w", i, strings.Join(d.Keys(), "|"), err)
		}
		params = append(params, p)
	}
	p, err := clp.New(s.Identifier, params...)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}
