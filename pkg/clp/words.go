// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clp

import (
	"strings"
	"unicode/utf8"
)

const (
	dash        = '-'
	escapeChar  = '\\'
	singleQuote = '\''
	doubleQuote = '"'
)

// isDelim reports whether r separates words. Only the space does; tabs and
// newlines are ordinary characters.
func isDelim(r rune) bool {
	return r == ' '
}

// SplitWords splits a raw command line into words.
//
// Words are separated by runs of spaces. A single or double quote at the
// start of a word opens a quoted word that ends at the matching quote; the
// quotes themselves are dropped. A backslash makes the next character
// literal, so it never acts as a delimiter or quote. Empty words are never
// returned.
func SplitWords(line string) []string {
	var (
		words   []string
		cur     strings.Builder
		inWord  bool
		escaped bool
		quote   rune
	)
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
		}
		cur.Reset()
		inWord = false
	}

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == escapeChar:
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
				flush()
				continue
			}
			cur.WriteRune(r)
		case isDelim(r):
			flush()
		case !inWord && (r == singleQuote || r == doubleQuote):
			quote = r
			inWord = true
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if escaped {
		// A trailing backslash has nothing to escape.
		cur.WriteRune(escapeChar)
	}
	flush()
	return words
}

// QuoteWord returns word escaped so that SplitWords reads it back as one
// word. Words without spaces, quotes or backslashes are returned as is.
func QuoteWord(word string) string {
	if !strings.ContainsFunc(word, needsEscape) {
		return word
	}
	var sb strings.Builder
	for _, r := range word {
		if needsEscape(r) {
			sb.WriteRune(escapeChar)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// JoinWords quotes each word and joins them with spaces. Empty words are
// lost, since SplitWords never returns one.
func JoinWords(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = QuoteWord(w)
	}
	return strings.Join(quoted, " ")
}

func needsEscape(r rune) bool {
	return isDelim(r) || r == escapeChar || r == singleQuote || r == doubleQuote
}

func dashCount(word string) int {
	return len(word) - len(strings.TrimLeft(word, "-"))
}

// IsKey reports whether word is shaped like a key: one or two dashes
// followed by at least one more character.
func IsKey(word string) bool {
	n := dashCount(word)
	return (n == 1 || n == 2) && len(word) > n
}

// IsShortKey reports whether word is a single dash followed by exactly one
// character, like "-a".
func IsShortKey(word string) bool {
	return IsKey(word) && dashCount(word) == 1 && utf8.RuneCountInString(word[1:]) == 1
}

// IsLongKey reports whether word is a double dash followed by a name, like
// "--alpha".
func IsLongKey(word string) bool {
	return IsKey(word) && dashCount(word) == 2
}

// IsComplexKey reports whether word bundles several single-character
// switches behind one dash, like "-abc".
func IsComplexKey(word string) bool {
	return IsKey(word) && dashCount(word) == 1 && utf8.RuneCountInString(word[1:]) > 1
}

// TrimDashes returns word without its leading dashes.
func TrimDashes(word string) string {
	return strings.TrimLeft(word, "-")
}
