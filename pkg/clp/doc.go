// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clp parses a command line against a declared, ordered list of
// parameters and returns one typed value per parameter.
//
// # Basic Usage
//
//	count := clp.Optional[int]([]rune{'n'}, []string{"count"}, "number of runs")
//	name := clp.Required[string]([]rune{'s'}, []string{"name"}, "who to greet")
//	verbose := clp.Optional[bool]([]rune{'v'}, []string{"verbose"}, "be chatty")
//
//	p, err := clp.New("greet", count, name, verbose)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vals, err := p.ParseArgs(append([]string{"greet"}, os.Args[1:]...))
//	if err != nil {
//	    fmt.Fprint(os.Stderr, p.ErrorMessage())
//	    os.Exit(1)
//	}
//	n := clp.Get[int](vals, 0) // or count.Get()
//
// # Command Line Grammar
//
// The first word must be the parser's identifier. Every following word is
// either a key or a value word belonging to the key before it:
//
//	<identifier> [ <key> [value-words...] ]*
//	key := -c | --name | -abc
//
// "-abc" bundles the boolean switches -a, -b and -c. Every character in a
// bundle must name a boolean parameter, and no parameter may appear twice.
//
// Words are separated by spaces. Quotes group spaces into one word, and a
// backslash makes the next character literal:
//
//	greet -s "Hello World!" --count 3
//	greet -s It\'s
//
// # Conversions
//
// Boolean parameters are true when their key is given alone, and otherwise
// read "true", "false" or an integer (nonzero is true). String parameters
// take every following value word, joined by single spaces. Every other
// type reads exactly one word: integers, unsigned integers and floats in
// decimal, time.Duration, Char, and any type implementing
// encoding.TextUnmarshaler. Param.WithConverter installs a custom
// conversion.
//
// Numbers and characters are read from the front of their word, so "5x"
// gives 5 and leaves "x", which is reported as unparsed_argument. A word
// that does not start with a value, like "x5", is incompatible_argument.
//
// # Errors
//
// Parse stops at the first error and returns a *ParseError carrying an
// ErrorCode. The errors unwrap to sentinels such as ErrUndefinedKey, and
// Parser.ErrorMessage returns the full diagnostic text. A parameter that is
// required and has no default must appear on every command line.
package clp
