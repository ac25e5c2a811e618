// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/yeetrun/clp/pkg/cli"
	"github.com/yeetrun/clp/pkg/clp"
)

func handleCheck(_ context.Context, args []string) error {
	flags, line, err := cli.ParseCheck(cli.TrimCommand(args, cli.CommandCheck))
	if err != nil {
		return err
	}
	s, err := loadSchema(flags.Schema, flags.SchemaFormat)
	if err != nil {
		return err
	}
	p, err := buildParser(s, flags.Trace, "check: ")
	if err != nil {
		return err
	}

	vals, perr := p.ParseWords(line)
	res := newLineResult(s, p, clp.JoinWords(line), vals, perr)
	if flags.Format == "json" {
		if err := writeJSON(stdout, res); err != nil {
			return err
		}
	} else if perr != nil {
		fmt.Fprint(stderr, colorDiagnostic(p.ErrorMessage()))
	} else if err := writeValuesTable(stdout, res); err != nil {
		return err
	}
	if perr != nil {
		return reportedError{err: perr}
	}
	return nil
}
