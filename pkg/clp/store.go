// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clp

import (
	"strconv"
	"strings"
	"unicode"

	"tailscale.com/util/set"
)

// key is a single short or long key with its dashes removed.
type key struct {
	short rune
	long  string
}

func shortKey(r rune) key     { return key{short: r} }
func longKey(name string) key { return key{long: name} }

func (k key) isShort() bool { return k.long == "" }

func (k key) String() string {
	if k.isShort() {
		return string([]rune{dash, k.short})
	}
	return "--" + k.long
}

// Values holds one value per declared parameter, in declaration order.
type Values []any

// Get returns v[i] as a T, or the zero T if the types differ.
func Get[T any](v Values, i int) T {
	t, _ := Lookup[T](v, i)
	return t
}

// Lookup returns v[i] as a T. The boolean is false when i is out of range
// or the value is not a T.
func Lookup[T any](v Values, i int) (T, bool) {
	if i < 0 || i >= len(v) {
		var zero T
		return zero, false
	}
	t, ok := v[i].(T)
	return t, ok
}

// store is the ordered parameter collection of one parser.
type store struct {
	params []Parameter
	dirty  bool
	cache  Values
}

func newStore(params []Parameter) (*store, error) {
	shorts := make(map[rune]int)
	longs := make(map[string]int)
	for i, p := range params {
		if p == nil {
			return nil, &DefinitionError{Index: i, Reason: "nil parameter"}
		}
		if d, ok := p.(definer); ok {
			if err := d.definitionErr(); err != nil {
				return nil, &DefinitionError{Index: i, Reason: err.Error()}
			}
		}
		for _, r := range p.ShortKeys() {
			k := shortKey(r)
			if r == dash || unicode.IsSpace(r) || r == singleQuote || r == doubleQuote || r == escapeChar {
				return nil, &DefinitionError{Index: i, Key: k.String(), Reason: "invalid short key"}
			}
			if j, ok := shorts[r]; ok {
				return nil, &DefinitionError{Index: i, Key: k.String(), Reason: duplicateReason(i, j)}
			}
			shorts[r] = i
		}
		for _, name := range p.LongKeys() {
			k := longKey(name)
			if name == "" || strings.HasPrefix(name, "-") || strings.ContainsFunc(name, unicode.IsSpace) {
				return nil, &DefinitionError{Index: i, Key: k.String(), Reason: "invalid long key"}
			}
			if j, ok := longs[name]; ok {
				return nil, &DefinitionError{Index: i, Key: k.String(), Reason: duplicateReason(i, j)}
			}
			longs[name] = i
		}
	}
	return &store{params: params, dirty: true}, nil
}

func duplicateReason(i, j int) string {
	if i == j {
		return "key declared twice"
	}
	return "key already declared by parameter " + strconv.Itoa(j)
}

func (s *store) len() int { return len(s.params) }

func (s *store) at(i int) Parameter { return s.params[i] }

// index returns the position of the parameter declaring k, or -1.
func (s *store) index(k key) int {
	for i, p := range s.params {
		if k.isShort() && p.ContainsShort(k.short) || !k.isShort() && p.ContainsLong(k.long) {
			return i
		}
	}
	return -1
}

func (s *store) contains(k key) bool {
	return s.index(k) >= 0
}

func (s *store) isBoolean(i int) bool {
	return s.params[i].Kind() == KindBool
}

// requiredWithoutDefault returns the indexes that must be assigned by the
// command line.
func (s *store) requiredWithoutDefault() set.Set[int] {
	req := make(set.Set[int])
	for i, p := range s.params {
		if p.Required() && !p.HasDefault() {
			req.Add(i)
		}
	}
	return req
}

// clear removes every current value. Defaults are kept.
func (s *store) clear() {
	for _, p := range s.params {
		p.RemoveValue()
	}
	s.invalidate()
}

func (s *store) invalidate() {
	s.dirty = true
}

// values returns the cached snapshot, recomputing it after any assignment.
func (s *store) values() Values {
	if s.dirty || s.cache == nil {
		s.cache = make(Values, len(s.params))
		for i, p := range s.params {
			if p.HasValue() {
				s.cache[i] = p.Value()
			} else {
				s.cache[i] = p.Zero()
			}
		}
		s.dirty = false
	}
	return s.cache
}
