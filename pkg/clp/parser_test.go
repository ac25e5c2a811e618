// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clp

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newTestParser returns a fresh parser over eleven parameters of mixed
// types, several keys each.
func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := New("TestCLI",
		Optional[int]([]rune{'a', 'A'}, []string{"aa", "AA", "int", "integer", "Integer"}, "an optional integer parameter"),
		Optional[float64]([]rune{'b', 'B'}, []string{"bb", "BB", "double", "real", "Double", "Real"}, "an optional real parameter"),
		Required[Char]([]rune{'c', 'C'}, []string{"cc", "CC", "char", "character", "Character"}, "a required character parameter"),
		Required[string]([]rune{'d', 'D', 's', 'S'}, []string{"dd", "DD", "string", "String"}, "a required string parameter"),
		Optional[string]([]rune{'e', 'E'}, []string{"ee", "EE"}, "an optional string parameter"),
		Optional[float32]([]rune{'f', 'F'}, []string{"ff", "FF", "float", "Float"}, "an optional float parameter"),
		Required[uint16]([]rune{'g', 'G', 'u', 'U'}, []string{"gg", "GG", "unsigned_short", "UnsignedShort", "ushort"}, "a required unsigned short parameter"),
		Optional[bool]([]rune{'h', 'H'}, []string{"hh", "HH"}, "an optional boolean parameter"),
		Optional[bool]([]rune{'i', 'I'}, []string{"ii", "II"}, "an optional boolean parameter"),
		Required[bool]([]rune{'j', 'J'}, []string{"jj", "JJ"}, "a required boolean parameter"),
		Required[bool]([]rune{'k', 'K'}, []string{"kk", "KK"}, "a required boolean parameter"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

const fullLine = "TestCLI -a 1 -b 3.14 -c c -d Hello -e World! -f 1.6 -g 1 -h -i -j -k"

var fullValues = Values{1, 3.14, Char('c'), "Hello", "World!", float32(1.6), uint16(1), true, true, true, true}

func TestParseAllParameters(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		line string
		want Values
	}{
		{name: "short_keys", line: fullLine, want: fullValues},
		{
			name: "aliases",
			line: "TestCLI --Integer 1 --Real 3.14 -C c -S Hello --EE World! --float 1.6 --ushort 1 -H --ii -J --kk",
			want: fullValues,
		},
		{
			name: "twisted_order",
			line: "TestCLI -k -j -i -h -g 1 -f 1.6 -e World! -d Hello -c c -b 3.14 -a 1",
			want: fullValues,
		},
		{
			name: "quoted_strings",
			line: `TestCLI -a 1 -b 3.14 -c c -d "Hello World!" -e "Bye World!" -f 1.6 -g 1 -hijk`,
			want: Values{1, 3.14, Char('c'), "Hello World!", "Bye World!", float32(1.6), uint16(1), true, true, true, true},
		},
		{
			name: "string_joins_words",
			line: "TestCLI -c c -d He llo -e Wo rld ! -g 1 -jk",
			want: Values{0, 0.0, Char('c'), "He llo", "Wo rld !", float32(0), uint16(1), false, false, true, true},
		},
		{
			name: "complex_key",
			line: "TestCLI -c c -d x -g 7 -hKj",
			want: Values{0, 0.0, Char('c'), "x", "", float32(0), uint16(7), true, false, true, true},
		},
		{
			name: "explicit_false",
			line: "TestCLI -c c -d x -g 7 -j false -k 0",
			want: Values{0, 0.0, Char('c'), "x", "", float32(0), uint16(7), false, false, false, false},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := newTestParser(t)
			got, err := p.Parse(tc.line)
			if err != nil {
				t.Fatalf("Parse(%q): %v\n%s", tc.line, err, p.ErrorMessage())
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("values mismatch (-want +got):\n%s", diff)
			}
			if p.Code() != CodeNone || p.Err() != nil || p.ErrorMessage() != "" {
				t.Fatalf("error state after success: code=%v err=%v msg=%q", p.Code(), p.Err(), p.ErrorMessage())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		line      string
		code      ErrorCode
		sentinel  error
		key       string
		words     []string
		msgSubstr string
	}{
		{name: "empty", line: "", code: CodeIdentifierNotGiven, sentinel: ErrIdentifierNotGiven, msgSubstr: "command line is empty"},
		{name: "blank", line: "   ", code: CodeIdentifierNotGiven, sentinel: ErrIdentifierNotGiven},
		{name: "tab_joins_identifier", line: "TestCLI\t-a 1", code: CodeInvalidIdentifier, sentinel: ErrInvalidIdentifier, key: "TestCLI\t-a"},
		{
			name: "wrong_identifier", line: strings.Replace(fullLine, "TestCLI", "WrongCLI", 1),
			code: CodeInvalidIdentifier, sentinel: ErrInvalidIdentifier, key: "WrongCLI",
			msgSubstr: `expected "TestCLI" but received "WrongCLI"`,
		},
		{
			name: "value_before_first_key", line: "TestCLI 1 -b 3.14 -c c -d Hello -g 1 -j -k",
			code: CodeKeyNotGiven, sentinel: ErrKeyNotGiven, key: "1",
		},
		{
			name: "incompatible", line: "TestCLI -a abc -b 3.14 -c c -d Hello -g 1 -j -k",
			code: CodeIncompatibleArgument, sentinel: ErrIncompatibleArgument, key: "-a", words: []string{"abc"},
			msgSubstr: `received: ["abc"]`,
		},
		{
			name: "missing_value", line: "TestCLI -c c -d x -g -j -k",
			code: CodeIncompatibleArgument, sentinel: ErrIncompatibleArgument, key: "-g",
		},
		{
			name: "negative_looks_like_key", line: "TestCLI -a -5 -c c -d x -g 1 -jk",
			code: CodeIncompatibleArgument, sentinel: ErrIncompatibleArgument, key: "-a",
		},
		{
			name: "unsigned_overflow", line: "TestCLI -c c -d x -g 70000 -jk",
			code: CodeIncompatibleArgument, sentinel: ErrIncompatibleArgument, key: "-g", words: []string{"70000"},
		},
		{
			name: "bool_word", line: "TestCLI -c c -d x -g 1 -j yes -k",
			code: CodeIncompatibleArgument, sentinel: ErrIncompatibleArgument, key: "-j", words: []string{"yes"},
		},
		{
			name: "undefined_short", line: "TestCLI -a 1 -b 3.14 -x c -d Hello -g 1 -j -k",
			code: CodeUndefinedKey, sentinel: ErrUndefinedKey, key: "-x",
		},
		{
			name: "undefined_long", line: "TestCLI --nope 1",
			code: CodeUndefinedKey, sentinel: ErrUndefinedKey, key: "--nope",
		},
		{
			name: "extra_value_words", line: "TestCLI -a 1 2 -c c -d x -g 1 -jk",
			code: CodeUnparsedArgument, sentinel: ErrUnparsedArgument, key: "-a", words: []string{"2"},
			msgSubstr: `remaining tokens: "2"`,
		},
		{
			name: "int_trailing_text", line: "TestCLI -a 5x -c c -d x -g 1 -jk",
			code: CodeUnparsedArgument, sentinel: ErrUnparsedArgument, key: "-a", words: []string{"x"},
		},
		{
			name: "unsigned_fraction", line: "TestCLI -c c -d x -g 1.5 -jk",
			code: CodeUnparsedArgument, sentinel: ErrUnparsedArgument, key: "-g", words: []string{".5"},
		},
		{
			name: "int_not_a_number", line: "TestCLI -a x5 -c c -d x -g 1 -jk",
			code: CodeIncompatibleArgument, sentinel: ErrIncompatibleArgument, key: "-a", words: []string{"x5"},
		},
		{
			name: "char_too_long", line: "TestCLI -c cc -d x -g 1 -jk",
			code: CodeUnparsedArgument, sentinel: ErrUnparsedArgument, key: "-c", words: []string{"c"},
		},
		{
			name: "bool_extra_word", line: "TestCLI -c c -d x -g 1 -j true false -k",
			code: CodeUnparsedArgument, sentinel: ErrUnparsedArgument, key: "-j", words: []string{"false"},
		},
		{
			name: "complex_with_non_bool", line: "TestCLI -c c -d x -g 1 -jka",
			code: CodeWrongComplexKey, sentinel: ErrWrongComplexKey, key: "-jka",
		},
		{
			name: "complex_with_undefined", line: "TestCLI -c c -d x -g 1 -jkz",
			code: CodeWrongComplexKey, sentinel: ErrWrongComplexKey, key: "-jkz",
		},
		{
			name: "complex_repeats_key", line: "TestCLI -c c -d x -g 1 -hijkhijk",
			code: CodeWrongComplexKey, sentinel: ErrWrongComplexKey, key: "-hijkhijk",
		},
		{
			name: "complex_repeats_alias", line: "TestCLI -c c -d x -g 1 -jkJ",
			code: CodeWrongComplexKey, sentinel: ErrWrongComplexKey, key: "-jkJ",
		},
		{
			name: "complex_with_value", line: "TestCLI -c c -d x -g 1 -jk true",
			code: CodeKeyNotGiven, sentinel: ErrKeyNotGiven, key: "true",
		},
		{
			name: "same_key_twice", line: "TestCLI -a 1 -b 3.14 -c c -a 2 -d Hello -g 1 -j -k",
			code: CodeDuplicatedAssignments, sentinel: ErrDuplicatedAssignment, key: "-a",
		},
		{
			name: "alias_twice", line: "TestCLI -a 1 -b 3.14 -c c --AA 2 -d Hello -g 1 -j -k",
			code: CodeDuplicatedAssignments, sentinel: ErrDuplicatedAssignment, key: "--AA",
		},
		{
			name: "complex_after_single", line: "TestCLI -c c -d x -g 1 -j -hk -ij",
			code: CodeDuplicatedAssignments, sentinel: ErrDuplicatedAssignment, key: "-ij",
		},
		{
			name: "missing_required", line: "TestCLI -a 1",
			code: CodeRequiredKeyNotGiven, sentinel: ErrRequiredKeyNotGiven, key: "-c|-C|--cc|--CC|--char|--character|--Character",
			msgSubstr: "\t[-c|-C|--cc|--CC|--char|--character|--Character]: a required character parameter\n",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := newTestParser(t)
			_, err := p.Parse(tc.line)
			if err == nil {
				t.Fatalf("Parse(%q): expected %v, got success", tc.line, tc.code)
			}
			if p.Code() != tc.code || CodeOf(err) != tc.code {
				t.Fatalf("code: got %v (CodeOf %v) want %v\n%s", p.Code(), CodeOf(err), tc.code, p.ErrorMessage())
			}
			if !errors.Is(err, tc.sentinel) {
				t.Fatalf("errors.Is(%v, %v) = false", err, tc.sentinel)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not a *ParseError", err)
			}
			if pe.Key != tc.key {
				t.Fatalf("key: got %q want %q", pe.Key, tc.key)
			}
			if tc.words != nil {
				if diff := cmp.Diff(tc.words, pe.Words); diff != "" {
					t.Fatalf("words mismatch (-want +got):\n%s", diff)
				}
			}
			msg := p.ErrorMessage()
			if !strings.HasPrefix(msg, "[clp] error: ") {
				t.Fatalf("message %q lacks prefix", msg)
			}
			if tc.msgSubstr != "" && !strings.Contains(msg, tc.msgSubstr) {
				t.Fatalf("message %q does not contain %q", msg, tc.msgSubstr)
			}
			if pe.Message != msg {
				t.Fatalf("ParseError.Message differs from ErrorMessage")
			}
		})
	}
}

func TestRequiredMessageListsEveryMissingParameter(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)
	vals, err := p.Parse("TestCLI -a 1")
	if CodeOf(err) != CodeRequiredKeyNotGiven {
		t.Fatalf("code: got %v want %v", CodeOf(err), CodeRequiredKeyNotGiven)
	}
	msg := p.ErrorMessage()
	want := []string{
		"[-c|-C|--cc|--CC|--char|--character|--Character]: a required character parameter",
		"[-d|-D|-s|-S|--dd|--DD|--string|--String]: a required string parameter",
		"[-g|-G|-u|-U|--gg|--GG|--unsigned_short|--UnsignedShort|--ushort]: a required unsigned short parameter",
		"[-j|-J|--jj|--JJ]: a required boolean parameter",
		"[-k|-K|--kk|--KK]: a required boolean parameter",
	}
	last := -1
	for _, line := range want {
		i := strings.Index(msg, "\t"+line+"\n")
		if i < 0 {
			t.Fatalf("message missing %q:\n%s", line, msg)
		}
		if i < last {
			t.Fatalf("%q listed out of declaration order:\n%s", line, msg)
		}
		last = i
	}
	if strings.Contains(msg, "optional") {
		t.Fatalf("message lists an optional parameter:\n%s", msg)
	}
	if got := Get[int](vals, 0); got != 1 {
		t.Fatalf("assigned value lost on error: got %d want 1", got)
	}
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	p := MustNew("identifier",
		Optional[int]([]rune{'a'}, []string{"aa"}, "an optional int").Default(3),
		Required[string]([]rune{'b'}, []string{"bb"}, "a required string").Default("Hello, World!"),
	)

	got, err := p.Parse("identifier")
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, p.ErrorMessage())
	}
	if diff := cmp.Diff(Values{3, "Hello, World!"}, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	got, err = p.Parse("identifier -a 9 --bb bye")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(Values{9, "bye"}, got); diff != "" {
		t.Fatalf("assigned mismatch (-want +got):\n%s", diff)
	}

	got, _ = p.Parse("identifier")
	if diff := cmp.Diff(Values{3, "Hello, World!"}, got); diff != "" {
		t.Fatalf("defaults after reparse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJustIdentifier(t *testing.T) {
	t.Parallel()

	p := MustNew("identifier")
	got, err := p.Parse("identifier")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("values: got %v want none", got)
	}
	if p.Identifier() != "identifier" || p.Len() != 0 {
		t.Fatalf("Identifier=%q Len=%d", p.Identifier(), p.Len())
	}
}

func TestShortAndLongKeysAgree(t *testing.T) {
	t.Parallel()

	p := MustNew("identifier", Required[int]([]rune{'a'}, []string{"aa"}, "a required int"))
	short, err := p.Parse("identifier -a 3")
	if err != nil {
		t.Fatalf("short: %v", err)
	}
	if got := Get[int](short, 0); got != 3 {
		t.Fatalf("short: got %d want 3", got)
	}
	long, err := p.Parse("identifier --aa 3")
	if err != nil {
		t.Fatalf("long: %v", err)
	}
	if diff := cmp.Diff(short, long); diff != "" {
		t.Fatalf("short and long differ (-short +long):\n%s", diff)
	}
}

func TestParseArgsMatchesParse(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)
	fromLine, err := p.Parse(fullLine)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fromArgs, err := p.ParseArgs(strings.Fields(fullLine))
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if diff := cmp.Diff(fromLine, fromArgs); diff != "" {
		t.Fatalf("ParseArgs differs from Parse (-line +args):\n%s", diff)
	}
}

func TestReparseStartsClean(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)
	first, err := p.Parse(fullLine)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := p.Parse(fullLine)
	if err != nil {
		t.Fatalf("second parse of the same line: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("reparse mismatch (-first +second):\n%s", diff)
	}

	if _, err := p.Parse("TestCLI -x"); CodeOf(err) != CodeUndefinedKey {
		t.Fatalf("failing parse: got %v want %v", CodeOf(err), CodeUndefinedKey)
	}
	again, err := p.Parse(fullLine)
	if err != nil {
		t.Fatalf("parse after failure: %v\n%s", err, p.ErrorMessage())
	}
	if diff := cmp.Diff(first, again); diff != "" {
		t.Fatalf("values after failure mismatch (-want +got):\n%s", diff)
	}

	p.Clear()
	if p.Err() != nil || p.ErrorMessage() != "" {
		t.Fatalf("Clear left error state: %v %q", p.Err(), p.ErrorMessage())
	}
	if got := Get[int](p.Values(), 0); got != 0 {
		t.Fatalf("Clear left value %d", got)
	}
}

func TestValuesIsACopy(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)
	vals, err := p.Parse(fullLine)
	if err != nil {
		t.Fatal(err)
	}
	vals[0] = 100
	if got := Get[int](p.Values(), 0); got != 1 {
		t.Fatalf("mutating returned Values changed the parser: got %d", got)
	}
}

func TestFirstErrorWins(t *testing.T) {
	t.Parallel()

	// The line has an undefined key and leaves required keys missing; only
	// the first problem is reported.
	p := newTestParser(t)
	_, err := p.Parse("TestCLI -x 1")
	if CodeOf(err) != CodeUndefinedKey {
		t.Fatalf("code: got %v want %v", CodeOf(err), CodeUndefinedKey)
	}
	if strings.Contains(p.ErrorMessage(), "required keys") {
		t.Fatalf("message reports more than the first error:\n%s", p.ErrorMessage())
	}
}

func TestParseErrorString(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)
	_, err := p.Parse("TestCLI -x 1")
	if got, want := err.Error(), `clp: undefined key "-x"`; got != want {
		t.Fatalf("Error(): got %q want %q", got, want)
	}

	_, err = p.Parse("TestCLI -a abc")
	if !strings.HasPrefix(err.Error(), `clp: incompatible argument "-a": `) {
		t.Fatalf("Error(): got %q", err.Error())
	}
}

func TestErrorCodeString(t *testing.T) {
	t.Parallel()

	for code, want := range map[ErrorCode]string{
		CodeNone:                  "none",
		CodeIdentifierNotGiven:    "identifier_not_given",
		CodeRequiredKeyNotGiven:   "required_key_not_given",
		CodeDuplicatedAssignments: "duplicated_assignments",
		ErrorCode(42):             "ErrorCode(42)",
	} {
		if got := code.String(); got != want {
			t.Errorf("%d.String(): got %q want %q", int(code), got, want)
		}
	}
	if CodeOf(errors.New("plain")) != CodeNone {
		t.Errorf("CodeOf(plain error) != CodeNone")
	}
}

func TestNewRejectsBadDefinitions(t *testing.T) {
	t.Parallel()

	type opaque struct{ n int }

	cases := []struct {
		name   string
		params []Parameter
		key    string
	}{
		{
			name: "shared_short",
			params: []Parameter{
				Optional[int]([]rune{'a'}, nil, ""),
				Optional[bool]([]rune{'b', 'a'}, nil, ""),
			},
			key: "-a",
		},
		{
			name: "shared_long",
			params: []Parameter{
				Optional[int](nil, []string{"name"}, ""),
				Optional[string](nil, []string{"name"}, ""),
			},
			key: "--name",
		},
		{
			name:   "repeated_in_one_param",
			params: []Parameter{Optional[int]([]rune{'a', 'a'}, nil, "")},
			key:    "-a",
		},
		{
			name:   "dash_short",
			params: []Parameter{Optional[int]([]rune{'-'}, nil, "")},
			key:    "--",
		},
		{
			name:   "dashed_long",
			params: []Parameter{Optional[int](nil, []string{"-x"}, "")},
			key:    "---x",
		},
		{
			name:   "spaced_long",
			params: []Parameter{Optional[int](nil, []string{"a b"}, "")},
			key:    "--a b",
		},
		{
			name:   "unsupported_type",
			params: []Parameter{Optional[opaque]([]rune{'o'}, nil, "")},
		},
		{
			name:   "nil_param",
			params: []Parameter{nil},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := New("id", tc.params...)
			var de *DefinitionError
			if !errors.As(err, &de) {
				t.Fatalf("New: got %v, want *DefinitionError", err)
			}
			if de.Key != tc.key {
				t.Fatalf("key: got %q want %q", de.Key, tc.key)
			}
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("MustNew did not panic")
		}
	}()
	MustNew("id", Optional[int]([]rune{'a'}, nil, ""), Optional[int]([]rune{'a'}, nil, ""))
}

func TestSetLogfTracesTokens(t *testing.T) {
	t.Parallel()

	p := MustNew("id", Optional[int]([]rune{'n'}, nil, "number"))
	var lines []string
	p.SetLogf(func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})
	if _, err := p.Parse("id -n 4"); err != nil {
		t.Fatal(err)
	}
	if len(lines) == 0 || !strings.Contains(lines[0], `"-n"`) {
		t.Fatalf("trace: got %q", lines)
	}

	lines = nil
	p.Parse("id -z")
	if len(lines) == 0 || !strings.Contains(lines[len(lines)-1], "undefined key") {
		t.Fatalf("error trace: got %q", lines)
	}

	p.SetLogf(nil)
	p.Parse("id -n 5")
}

func TestCharAndIntScenario(t *testing.T) {
	t.Parallel()

	p := MustNew("id",
		Optional[int]([]rune{'a'}, []string{"aa"}, "count"),
		Required[Char]([]rune{'c'}, []string{"cc"}, "mode"),
	)

	got, err := p.Parse("id -c x -a 5")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(Values{5, Char('x')}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if _, err := p.Parse("id -a 5"); !errors.Is(err, ErrRequiredKeyNotGiven) {
		t.Fatalf("missing -c: got %v", err)
	}
	if _, err := p.Parse("wrong -c x"); !errors.Is(err, ErrInvalidIdentifier) {
		t.Fatalf("wrong identifier: got %v", err)
	}
}

func TestParseWordsKeepsArgumentBoundaries(t *testing.T) {
	t.Parallel()

	p := MustNew("id",
		Optional[Char]([]rune{'c'}, nil, "a character"),
		Optional[string]([]rune{'s'}, nil, "a string"),
	)

	// "x y" is one argument: split again by ParseArgs it would leave "y"
	// unparsed after the character.
	args := []string{"id", "-c", "x", "-s", "it's here"}
	got, err := p.ParseWords(args)
	if err != nil {
		t.Fatalf("ParseWords: %v\n%s", err, p.ErrorMessage())
	}
	if diff := cmp.Diff(Values{Char('x'), "it's here"}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if _, err := p.ParseWords([]string{"id", "-c", "x y"}); CodeOf(err) != CodeUnparsedArgument {
		t.Fatalf("ParseWords with spaced char: got %v want %v", CodeOf(err), CodeUnparsedArgument)
	}
	if _, err := p.ParseArgs([]string{"id", "-c", "x y"}); CodeOf(err) != CodeUnparsedArgument {
		t.Fatalf("ParseArgs with spaced char: got %v want %v", CodeOf(err), CodeUnparsedArgument)
	}
	if _, err := p.Parse(JoinWords([]string{"id", "-s", "it's here"})); err != nil {
		t.Fatalf("Parse(JoinWords): %v", err)
	}
	if _, err := p.ParseWords(nil); CodeOf(err) != CodeIdentifierNotGiven {
		t.Fatalf("ParseWords(nil): got %v", CodeOf(err))
	}
}
