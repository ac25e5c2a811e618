// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clp

import (
	"strconv"
	"strings"
)

// assigner writes converted values into the store and keeps the input it
// could not use for diagnostics.
type assigner struct {
	store   *store
	pending []string
	lastErr error
}

// assignSingle converts words into the parameter declaring k. The key must
// already be known to be valid.
func (a *assigner) assignSingle(k key, words []string, v *verifier) {
	i := a.store.index(k)
	rest, err := a.store.at(i).Assign(words)
	if err != nil {
		v.markFail()
		a.pending = words
		a.lastErr = err
		return
	}
	v.setAssignedIndex(i)
	a.store.invalidate()
	if len(rest) > 0 {
		v.markBad()
		a.pending = rest
	}
}

// assignComplex sets every parameter named by bundle to true. It keeps
// going after a failure so the whole bundle is accounted for.
func (a *assigner) assignComplex(bundle string, v *verifier) {
	for _, r := range bundle {
		k := shortKey(r)
		i := a.store.index(k)
		if i < 0 {
			v.markFail()
			a.pending = append(a.pending, k.String())
			continue
		}
		if err := a.store.at(i).AssignBool(true); err != nil {
			v.markFail()
			a.pending = append(a.pending, k.String())
			a.lastErr = err
			continue
		}
		v.setAssignedIndex(i)
	}
	a.store.invalidate()
}

// unassigned returns the pending input and forgets it.
func (a *assigner) unassigned() []string {
	out := a.pending
	a.pending = nil
	return out
}

func (a *assigner) clear() {
	a.pending = nil
	a.lastErr = nil
}

func quoteWords(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = strconv.Quote(w)
	}
	return strings.Join(quoted, " ")
}
