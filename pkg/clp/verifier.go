// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clp

import "tailscale.com/util/set"

// verifier tracks which parameters have been assigned during one parse and
// whether the last assignment failed.
//
// fail means the value words could not be converted; bad means the
// conversion succeeded but left input unread.
type verifier struct {
	identifier string
	assigned   set.Set[int]
	fail       bool
	bad        bool
}

func newVerifier(identifier string) verifier {
	return verifier{identifier: identifier, assigned: make(set.Set[int])}
}

func (v *verifier) isValidIdentifier(word string) bool {
	return word == v.identifier
}

func (v *verifier) startsWithShortKey(tok Token) bool {
	return IsShortKey(tok.Leading)
}

func (v *verifier) startsWithLongKey(tok Token) bool {
	return IsLongKey(tok.Leading)
}

func (v *verifier) startsWithComplexKey(tok Token) bool {
	return IsComplexKey(tok.Leading)
}

func (v *verifier) isValidSingleKey(k key, s *store) bool {
	return s.contains(k)
}

// isValidComplexKey reports whether every rune of bundle names a declared
// boolean parameter.
func (v *verifier) isValidComplexKey(bundle string, s *store) bool {
	for _, r := range bundle {
		i := s.index(shortKey(r))
		if i < 0 || !s.isBoolean(i) {
			return false
		}
	}
	return true
}

func (v *verifier) isDuplicatedAssignment(k key, s *store) bool {
	return isDuplicated(k, s, v.assigned)
}

// isDuplicatedComplexAssignment reports whether any rune of bundle targets
// a parameter assigned by an earlier token.
func (v *verifier) isDuplicatedComplexAssignment(bundle string, s *store) bool {
	for _, r := range bundle {
		if isDuplicated(shortKey(r), s, v.assigned) {
			return true
		}
	}
	return false
}

// hasRepeatInBundle reports whether two runes of bundle target the same
// parameter, as in "-aa" or "-aA" when both keys belong to one parameter.
func (v *verifier) hasRepeatInBundle(bundle string, s *store) bool {
	shadow := make(set.Set[int])
	for _, r := range bundle {
		k := shortKey(r)
		if isDuplicated(k, s, shadow) {
			return true
		}
		setAssigned(k, s, shadow)
	}
	return false
}

func isDuplicated(k key, s *store, assigned set.Set[int]) bool {
	i := s.index(k)
	return i >= 0 && assigned.Contains(i)
}

func setAssigned(k key, s *store, assigned set.Set[int]) {
	if i := s.index(k); i >= 0 {
		assigned.Add(i)
	}
}

func (v *verifier) setAssignedIndex(i int) {
	v.assigned.Add(i)
}

// satisfiesRequired reports whether every required parameter without a
// default has been assigned.
func (v *verifier) satisfiesRequired(s *store) bool {
	for i := range s.requiredWithoutDefault() {
		if !v.assigned.Contains(i) {
			return false
		}
	}
	return true
}

// missingRequired returns the required, default-less indexes that were not
// assigned, in declaration order.
func (v *verifier) missingRequired(s *store) []int {
	req := s.requiredWithoutDefault()
	var missing []int
	for i := range s.len() {
		if req.Contains(i) && !v.assigned.Contains(i) {
			missing = append(missing, i)
		}
	}
	return missing
}

func (v *verifier) markFail() { v.fail = true }
func (v *verifier) markBad()  { v.bad = true }

func (v *verifier) good() bool { return !v.fail && !v.bad }

func (v *verifier) clear() {
	v.assigned = make(set.Set[int])
	v.fail = false
	v.bad = false
}
