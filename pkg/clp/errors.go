// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies the first failure detected by a Parse call.
type ErrorCode int

const (
	// CodeNone means the last parse succeeded.
	CodeNone ErrorCode = iota
	CodeIdentifierNotGiven
	CodeInvalidIdentifier
	CodeKeyNotGiven
	CodeUndefinedKey
	CodeUnparsedArgument
	CodeIncompatibleArgument
	CodeWrongComplexKey
	CodeRequiredKeyNotGiven
	CodeDuplicatedAssignments
)

var codeNames = [...]string{
	CodeNone:                  "none",
	CodeIdentifierNotGiven:    "identifier_not_given",
	CodeInvalidIdentifier:     "invalid_identifier",
	CodeKeyNotGiven:           "key_not_given",
	CodeUndefinedKey:          "undefined_key",
	CodeUnparsedArgument:      "unparsed_argument",
	CodeIncompatibleArgument:  "incompatible_argument",
	CodeWrongComplexKey:       "wrong_complex_key",
	CodeRequiredKeyNotGiven:   "required_key_not_given",
	CodeDuplicatedAssignments: "duplicated_assignments",
}

func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
	return codeNames[c]
}

// Sentinel errors, one per ErrorCode. A *ParseError unwraps to the sentinel
// of its code so callers can use errors.Is.
var (
	ErrIdentifierNotGiven   = errors.New("identifier not given")
	ErrInvalidIdentifier    = errors.New("invalid identifier")
	ErrKeyNotGiven          = errors.New("key not given")
	ErrUndefinedKey         = errors.New("undefined key")
	ErrUnparsedArgument     = errors.New("unparsed argument")
	ErrIncompatibleArgument = errors.New("incompatible argument")
	ErrWrongComplexKey      = errors.New("wrong complex key")
	ErrRequiredKeyNotGiven  = errors.New("required key not given")
	ErrDuplicatedAssignment = errors.New("duplicated assignments")
)

func (c ErrorCode) sentinel() error {
	switch c {
	case CodeIdentifierNotGiven:
		return ErrIdentifierNotGiven
	case CodeInvalidIdentifier:
		return ErrInvalidIdentifier
	case CodeKeyNotGiven:
		return ErrKeyNotGiven
	case CodeUndefinedKey:
		return ErrUndefinedKey
	case CodeUnparsedArgument:
		return ErrUnparsedArgument
	case CodeIncompatibleArgument:
		return ErrIncompatibleArgument
	case CodeWrongComplexKey:
		return ErrWrongComplexKey
	case CodeRequiredKeyNotGiven:
		return ErrRequiredKeyNotGiven
	case CodeDuplicatedAssignments:
		return ErrDuplicatedAssignment
	}
	return nil
}

// ParseError is returned by Parse when the command line is rejected.
// Message holds the full diagnostic text; Error returns a one-line summary.
type ParseError struct {
	Code    ErrorCode
	Key     string   // offending key or word, if any
	Words   []string // received value words, if any
	Message string
	Err     error // conversion error behind an incompatible argument
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("clp: ")
	sb.WriteString(e.Code.sentinel().Error())
	if e.Key != "" {
		fmt.Fprintf(&sb, " %q", e.Key)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Code.sentinel()}
	}
	return []error{e.Code.sentinel(), e.Err}
}

// DefinitionError is returned by New when the declared parameters cannot
// form a parser.
type DefinitionError struct {
	Index  int    // position of the offending parameter
	Key    string // offending key, with its dashes, if any
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("clp: parameter %d: key %q: %s", e.Index, e.Key, e.Reason)
	}
	return fmt.Sprintf("clp: parameter %d: %s", e.Index, e.Reason)
}

// CodeOf reports the ErrorCode carried by err, or CodeNone.
func CodeOf(err error) ErrorCode {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return CodeNone
}
