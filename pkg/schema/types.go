// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"
	"net/netip"
	"slices"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/yeetrun/clp/pkg/clp"
	"tailscale.com/util/mak"
)

// buildFunc declares one parameter of a registered type.
type buildFunc func(def ParamDef, shorts []rune) (clp.Parameter, error)

var types map[string]buildFunc

func init() {
	register[string]("string", nil)
	register[bool]("bool", nil)
	register[int]("int", nil)
	register[int8]("int8", nil)
	register[int16]("int16", nil)
	register[int32]("int32", nil)
	register[int64]("int64", nil)
	register[uint]("uint", nil)
	register[uint8]("uint8", nil)
	register[uint16]("uint16", nil)
	register[uint32]("uint32", nil)
	register[uint64]("uint64", nil)
	register[float32]("float32", nil)
	register[float64]("float64", nil)
	register[clp.Char]("char", nil)
	register[time.Duration]("duration", time.ParseDuration)
	register[uuid.UUID]("uuid", uuid.Parse)
	register[*semver.Version]("semver", semver.NewVersion)
	register[netip.Addr]("addr", netip.ParseAddr)
	register[netip.Prefix]("prefix", netip.ParsePrefix)
}

// register adds the type name. A nil conv keeps the conversion chosen by
// the clp package.
func register[T any](name string, conv func(string) (T, error)) {
	mak.Set(&types, name, func(def ParamDef, shorts []rune) (clp.Parameter, error) {
		var p *clp.Param[T]
		if def.Required {
			p = clp.Required[T](shorts, def.Long, def.Brief)
		} else {
			p = clp.Optional[T](shorts, def.Long, def.Brief)
		}
		if conv != nil {
			p.WithConverter(conv)
		}
		if text, ok := def.DefaultText(); ok {
			v, err := p.Convert(text)
			if err != nil {
				return nil, fmt.Errorf("default %q: %w", text, err)
			}
			p.Default(v)
		}
		return p, nil
	})
}

// Types returns the registered type names in sorted order.
func Types() []string {
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// KnownType reports whether name is a registered parameter type.
func KnownType(name string) bool {
	_, ok := types[name]
	return ok
}
