// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/yeetrun/clp/pkg/clp"
	"github.com/yeetrun/clp/pkg/codecutil"
	"github.com/yeetrun/clp/pkg/ftdetect"
	"github.com/yeetrun/clp/pkg/schema"
	"tailscale.com/types/logger"
)

// loadSchema reads the schema at path, honoring an explicit format, and
// checks that this build satisfies its requires constraint.
func loadSchema(path, format string) (*schema.Schema, error) {
	var (
		s   *schema.Schema
		err error
	)
	if format == "" {
		s, err = schema.Load(path)
	} else {
		s, err = loadSchemaAs(path, format)
	}
	if err != nil {
		return nil, err
	}
	if err := s.CheckVersion(clp.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func loadSchemaAs(path, format string) (*schema.Schema, error) {
	ft, err := ftdetect.ParseFileType(format)
	if err != nil {
		return nil, err
	}
	data, err := codecutil.ReadInput(path)
	if err != nil {
		return nil, err
	}
	s, err := schema.Parse(data, ft)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func buildParser(s *schema.Schema, trace bool, prefix string) (*clp.Parser, error) {
	var opts []schema.Option
	if trace {
		opts = append(opts, schema.WithLogf(logger.WithPrefix(log.Printf, prefix)))
	}
	return s.Build(opts...)
}

type paramResult struct {
	Keys  []string `json:"keys"`
	Type  string   `json:"type"`
	Value any      `json:"value"`
}

type errorResult struct {
	Code    string   `json:"code"`
	Key     string   `json:"key,omitempty"`
	Words   []string `json:"words,omitempty"`
	Message string   `json:"message"`
}

type lineResult struct {
	Line   int           `json:"line,omitempty"`
	Input  string        `json:"input"`
	OK     bool          `json:"ok"`
	Values []paramResult `json:"values,omitempty"`
	Error  *errorResult  `json:"error,omitempty"`
}

// newLineResult describes the outcome of the parse p just ran. Parameters
// that received no value and have no default show as nil, except booleans.
func newLineResult(s *schema.Schema, p *clp.Parser, input string, vals clp.Values, err error) lineResult {
	res := lineResult{Input: input, OK: err == nil}
	if err != nil {
		res.Error = &errorResult{Code: clp.CodeOf(err).String(), Message: err.Error()}
		var pe *clp.ParseError
		if errors.As(err, &pe) {
			res.Error.Key = pe.Key
			res.Error.Words = pe.Words
			res.Error.Message = strings.TrimSpace(pe.Message)
		}
		return res
	}
	for i, v := range vals {
		d := s.Params[i]
		pr := paramResult{Keys: d.Keys(), Type: d.Type, Value: displayValue(v)}
		if param := p.Param(i); !param.HasValue() && param.Kind() != clp.KindBool {
			pr.Value = nil
		}
		res.Values = append(res.Values, pr)
	}
	return res
}

// displayValue returns v in a form that prints and encodes as it reads on
// the command line.
func displayValue(v any) any {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return nil
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return v
}

func valueText(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}

func writeValuesTable(w io.Writer, res lineResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "KEYS\tTYPE\tVALUE")
	for _, v := range res.Values {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", colors.Key(strings.Join(v.Keys, "|")), v.Type, valueText(v.Value))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// colorDiagnostic highlights the error lines of a parser diagnostic.
func colorDiagnostic(msg string) string {
	if !colors.Enabled {
		return msg
	}
	lines := strings.SplitAfter(msg, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "\t") {
			lines[i] = colors.Dim(line)
			continue
		}
		if rest, ok := strings.CutPrefix(line, "[clp] error:"); ok {
			lines[i] = colors.Error("[clp] error:") + rest
		}
	}
	return strings.Join(lines, "")
}
