// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/yeetrun/clp/pkg/cli"
	"github.com/yeetrun/clp/pkg/clp"
)

type wordInfo struct {
	Word  string `json:"word"`
	Shape string `json:"shape"`
}

type tokenInfo struct {
	Key    string   `json:"key"`
	Values []string `json:"values,omitempty"`
}

type wordsResult struct {
	Line   string      `json:"line"`
	Words  []wordInfo  `json:"words"`
	Tokens []tokenInfo `json:"tokens"`
}

// wordShape names how the parser reads word at position i.
func wordShape(i int, word string) string {
	switch {
	case i == 0:
		return "identifier"
	case clp.IsComplexKey(word):
		return "complex key"
	case clp.IsShortKey(word):
		return "short key"
	case clp.IsLongKey(word):
		return "long key"
	}
	return "value"
}

// splitLine runs a line through the tokenizer. A single argument is split
// as a command line; several arguments are joined the way ParseArgs joins
// them.
func splitLine(args []string) wordsResult {
	line := strings.Join(args, " ")
	tk := clp.NewTokenizer(line)
	res := wordsResult{Line: line, Words: []wordInfo{}, Tokens: []tokenInfo{}}
	for i, w := range tk.Words() {
		res.Words = append(res.Words, wordInfo{Word: w, Shape: wordShape(i, w)})
	}
	for {
		tok, ok := tk.Next()
		if !ok {
			break
		}
		res.Tokens = append(res.Tokens, tokenInfo{Key: tok.Leading, Values: tok.Followings})
	}
	return res
}

func handleWords(_ context.Context, args []string) error {
	flags, line, err := cli.ParseWords(cli.TrimCommand(args, cli.CommandWords))
	if err != nil {
		return err
	}
	res := splitLine(line)
	if flags.Format == "json" {
		return writeJSON(stdout, res)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "#\tWORD\tSHAPE")
	for i, w := range res.Words {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, clp.QuoteWord(w.Word), w.Shape)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TOKEN\tVALUES\t")
	for _, tok := range res.Tokens {
		fmt.Fprintf(tw, "%s\t%s\t\n", colors.Key(clp.QuoteWord(tok.Key)), clp.JoinWords(tok.Values))
	}
	return tw.Flush()
}
