// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clp

// Token is a key word together with the value words that follow it up to
// the next key.
type Token struct {
	Leading    string
	Followings []string
}

// Tokenizer walks the words of one command line, grouping them into tokens.
type Tokenizer struct {
	words []string
	cur   int
}

// NewTokenizer splits line into words and positions the cursor at the first
// word.
func NewTokenizer(line string) *Tokenizer {
	return &Tokenizer{words: SplitWords(line)}
}

// NewTokenizerWords is like NewTokenizer but takes already split words.
func NewTokenizerWords(words []string) *Tokenizer {
	return &Tokenizer{words: words}
}

// Words returns every word of the command line.
func (tk *Tokenizer) Words() []string {
	return tk.words
}

// Done reports whether every word has been consumed.
func (tk *Tokenizer) Done() bool {
	return tk.cur >= len(tk.words)
}

// FacingKey reports whether the next word is key-shaped.
func (tk *Tokenizer) FacingKey() bool {
	return !tk.Done() && IsKey(tk.words[tk.cur])
}

// Remaining returns the number of words not yet consumed.
func (tk *Tokenizer) Remaining() int {
	return len(tk.words) - tk.cur
}

// Reset restarts traversal from the first word.
func (tk *Tokenizer) Reset() {
	tk.cur = 0
}

// Next returns the next token. The leading word is consumed whatever its
// shape; following words are consumed until the next key-shaped word, which
// is left for the following call. It returns false when no words remain.
func (tk *Tokenizer) Next() (Token, bool) {
	if tk.Done() {
		return Token{}, false
	}
	tok := Token{Leading: tk.words[tk.cur]}
	tk.cur++
	for !tk.Done() && !tk.FacingKey() {
		tok.Followings = append(tok.Followings, tk.words[tk.cur])
		tk.cur++
	}
	return tok, true
}
