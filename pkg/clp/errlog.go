// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clp

import (
	"fmt"
	"strings"
)

const errPrefix = "[clp] error: "

// errorLog records the first error of a parse and accumulates the
// diagnostic text.
type errorLog struct {
	code  ErrorCode
	key   string
	words []string
	cause error
	msg   strings.Builder
}

// lock records the origin of the first error only; later calls add text.
func (l *errorLog) lock(code ErrorCode, key string, words []string, cause error) {
	if l.code != CodeNone {
		return
	}
	l.code = code
	l.key = key
	l.words = words
	l.cause = cause
}

func (l *errorLog) identifierNotGiven() {
	l.lock(CodeIdentifierNotGiven, "", nil, nil)
	l.msg.WriteString(errPrefix + "didn't receive identifier, command line is empty.\n")
}

func (l *errorLog) invalidIdentifier(got, want string) {
	l.lock(CodeInvalidIdentifier, got, nil, nil)
	fmt.Fprintf(&l.msg, errPrefix+"invalid identifier specified.\n\texpected %q but received %q\n", want, got)
}

func (l *errorLog) keyNotGiven(word string) {
	l.lock(CodeKeyNotGiven, word, nil, nil)
	fmt.Fprintf(&l.msg, errPrefix+"key is not given.\n\treceived %q where a key was expected\n", word)
}

func (l *errorLog) undefinedKey(k string) {
	l.lock(CodeUndefinedKey, k, nil, nil)
	fmt.Fprintf(&l.msg, errPrefix+"undefined key %q received.\n", k)
}

func (l *errorLog) incompatibleArgument(k string, words []string, cause error) {
	l.lock(CodeIncompatibleArgument, k, words, cause)
	fmt.Fprintf(&l.msg, errPrefix+"received arguments are incompatible with the specified key %q.\n\treceived: [%s]\n", k, quoteWords(words))
	if cause != nil {
		fmt.Fprintf(&l.msg, "\treason: %v\n", cause)
	}
}

func (l *errorLog) unparsedArgument(k string, rest []string) {
	l.lock(CodeUnparsedArgument, k, rest, nil)
	fmt.Fprintf(&l.msg, errPrefix+"unparsed arguments detected.\n\tremaining tokens: %s\n", quoteWords(rest))
}

func (l *errorLog) wrongComplexKey(bundle string) {
	l.lock(CodeWrongComplexKey, bundle, nil, nil)
	fmt.Fprintf(&l.msg, errPrefix+"at least one of the keys in complex key received isn't defined as boolean parameter or is repeated.\n\treceived: %q\n", bundle)
}

func (l *errorLog) duplicatedAssignments(k string) {
	l.lock(CodeDuplicatedAssignments, k, nil, nil)
	fmt.Fprintf(&l.msg, errPrefix+"duplicated assignments detected when parsing %q.\n\tmore than one key assigns a value to the same parameter.\n", k)
}

// requiredKeyNotGiven lists each missing parameter with all of its keys and
// its brief text.
func (l *errorLog) requiredKeyNotGiven(s *store, missing []int) {
	first := ""
	if len(missing) > 0 {
		first = keyList(s.at(missing[0]))
	}
	l.lock(CodeRequiredKeyNotGiven, first, nil, nil)
	l.msg.WriteString(errPrefix + "required keys are not given.\nrequired keys:\n")
	for _, i := range missing {
		p := s.at(i)
		fmt.Fprintf(&l.msg, "\t[%s]: %s\n", keyList(p), p.Brief())
	}
}

func keyList(p Parameter) string {
	var keys []string
	for _, r := range p.ShortKeys() {
		keys = append(keys, shortKey(r).String())
	}
	for _, name := range p.LongKeys() {
		keys = append(keys, longKey(name).String())
	}
	return strings.Join(keys, "|")
}

func (l *errorLog) message() string { return l.msg.String() }

// err returns the recorded error, or nil after a successful parse.
func (l *errorLog) err() error {
	if l.code == CodeNone {
		return nil
	}
	return &ParseError{
		Code:    l.code,
		Key:     l.key,
		Words:   l.words,
		Message: l.msg.String(),
		Err:     l.cause,
	}
}

func (l *errorLog) clear() {
	l.code = CodeNone
	l.key = ""
	l.words = nil
	l.cause = nil
	l.msg.Reset()
}
