// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clp

import (
	"slices"
	"strings"

	"tailscale.com/types/logger"
)

// Parser parses command lines against a fixed, ordered list of parameters.
//
// A Parser is not safe for concurrent use: Parse mutates the parameters it
// was built with. Independent parsers may be used concurrently.
type Parser struct {
	identifier string
	store      *store
	verifier   verifier
	assigner   assigner
	log        errorLog
	logf       logger.Logf
}

// New returns a parser for command lines that start with identifier. The
// parameters keep their order in the result Values. New fails if two
// parameters share a key or a parameter's type has no conversion.
func New(identifier string, params ...Parameter) (*Parser, error) {
	s, err := newStore(params)
	if err != nil {
		return nil, err
	}
	return &Parser{
		identifier: identifier,
		store:      s,
		verifier:   newVerifier(identifier),
		assigner:   assigner{store: s},
		logf:       logger.Discard,
	}, nil
}

// MustNew is like New but panics on a definition error.
func MustNew(identifier string, params ...Parameter) *Parser {
	p, err := New(identifier, params...)
	if err != nil {
		panic(err)
	}
	return p
}

// SetLogf sets a logger for tracing each parse step. A nil logf disables
// tracing.
func (p *Parser) SetLogf(logf logger.Logf) {
	if logf == nil {
		logf = logger.Discard
	}
	p.logf = logf
}

// Identifier returns the word every command line must start with.
func (p *Parser) Identifier() string { return p.identifier }

// Len returns the number of declared parameters.
func (p *Parser) Len() int { return p.store.len() }

// Param returns the i'th declared parameter.
func (p *Parser) Param(i int) Parameter { return p.store.at(i) }

// Err returns the error of the last parse, or nil.
func (p *Parser) Err() error { return p.log.err() }

// Code returns the error code of the last parse, or CodeNone.
func (p *Parser) Code() ErrorCode { return p.log.code }

// ErrorMessage returns the diagnostic text of the last parse.
func (p *Parser) ErrorMessage() string { return p.log.message() }

// Values returns a copy of the value snapshot of the last parse.
func (p *Parser) Values() Values { return slices.Clone(p.store.values()) }

// Clear resets the parser and the current values of its parameters.
// Defaults are kept.
func (p *Parser) Clear() {
	p.store.clear()
	p.verifier.clear()
	p.assigner.clear()
	p.log.clear()
}

// ParseArgs joins args with single spaces and parses the result, so an
// argument that contains spaces is split again unless it is quoted.
func (p *Parser) ParseArgs(args []string) (Values, error) {
	return p.Parse(strings.Join(args, " "))
}

// ParseWords parses a command line that is already split into words, such
// as os.Args. The words are used as given; no quoting is interpreted.
func (p *Parser) ParseWords(words []string) (Values, error) {
	return p.parse(NewTokenizerWords(words))
}

// Parse parses one command line. It always starts from a clean state.
//
// The returned Values hold one entry per parameter: the value assigned by
// the line, else the default, else the zero value. On error they are a best
// effort and the error is a *ParseError.
func (p *Parser) Parse(line string) (Values, error) {
	return p.parse(NewTokenizer(line))
}

func (p *Parser) parse(tk *Tokenizer) (Values, error) {
	p.Clear()
	p.run(tk)
	if err := p.log.err(); err != nil {
		p.logf("clp: %s: %v", p.identifier, err)
		return p.Values(), err
	}
	return p.Values(), nil
}

func (p *Parser) run(tk *Tokenizer) {
	if tk.Done() {
		p.log.identifierNotGiven()
		return
	}

	id, _ := tk.Next()
	if !p.verifier.isValidIdentifier(id.Leading) {
		p.log.invalidIdentifier(id.Leading, p.identifier)
		return
	}
	if len(id.Followings) > 0 {
		p.log.keyNotGiven(id.Followings[0])
		return
	}

	for !tk.Done() {
		if !tk.FacingKey() {
			// Tokens always end before a key, so only a bug gets here.
			w := tk.Words()[len(tk.Words())-tk.Remaining()]
			p.log.keyNotGiven(w)
			return
		}
		tok, _ := tk.Next()
		p.logf("clp: %s: token %q %q", p.identifier, tok.Leading, tok.Followings)

		name := TrimDashes(tok.Leading)
		var ok bool
		switch {
		case p.verifier.startsWithShortKey(tok):
			r := []rune(name)[0]
			ok = p.parseSingleKey(shortKey(r), tok.Followings)
		case p.verifier.startsWithLongKey(tok):
			ok = p.parseSingleKey(longKey(name), tok.Followings)
		case p.verifier.startsWithComplexKey(tok):
			ok = p.parseComplexKey(tok.Leading, name, tok.Followings)
		default:
			p.log.keyNotGiven(tok.Leading)
		}
		if !ok {
			return
		}
	}

	if !p.verifier.satisfiesRequired(p.store) {
		p.log.requiredKeyNotGiven(p.store, p.verifier.missingRequired(p.store))
	}
}

func (p *Parser) parseSingleKey(k key, words []string) bool {
	if !p.verifier.isValidSingleKey(k, p.store) {
		p.log.undefinedKey(k.String())
		return false
	}
	if p.verifier.isDuplicatedAssignment(k, p.store) {
		p.log.duplicatedAssignments(k.String())
		return false
	}

	p.assigner.assignSingle(k, words, &p.verifier)

	switch {
	case p.verifier.good():
		return true
	case p.verifier.fail:
		p.log.incompatibleArgument(k.String(), p.assigner.unassigned(), p.assigner.lastErr)
	default:
		p.log.unparsedArgument(k.String(), p.assigner.unassigned())
	}
	return false
}

func (p *Parser) parseComplexKey(word, bundle string, words []string) bool {
	if len(words) > 0 {
		// Bundled switches never take values.
		p.log.keyNotGiven(words[0])
		return false
	}
	if !p.verifier.isValidComplexKey(bundle, p.store) || p.verifier.hasRepeatInBundle(bundle, p.store) {
		p.log.wrongComplexKey(word)
		return false
	}
	if p.verifier.isDuplicatedComplexAssignment(bundle, p.store) {
		p.log.duplicatedAssignments(word)
		return false
	}

	p.assigner.assignComplex(bundle, &p.verifier)

	if p.verifier.fail {
		p.log.wrongComplexKey(word)
		return false
	}
	if p.verifier.bad {
		panic("clp: complex key left unparsed input")
	}
	return true
}
