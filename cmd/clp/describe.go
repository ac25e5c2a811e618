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
)

func handleDescribe(_ context.Context, args []string) error {
	flags, _, err := cli.ParseDescribe(cli.TrimCommand(args, cli.CommandDescribe))
	if err != nil {
		return err
	}
	s, err := loadSchema(flags.Schema, flags.SchemaFormat)
	if err != nil {
		return err
	}
	// Building checks the declaration as the parser sees it, including
	// defaults and keys shared between parameters.
	if _, err := s.Build(); err != nil {
		return err
	}
	if flags.Format == "json" {
		return writeJSON(stdout, s)
	}

	fmt.Fprintf(stdout, "%s\n", colors.Key(s.Identifier))
	if s.Requires != "" {
		fmt.Fprintf(stdout, "requires clp %s\n", s.Requires)
	}
	fmt.Fprintln(stdout)

	tw := tabwriter.NewWriter(stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "#\tKEYS\tTYPE\tREQUIRED\tDEFAULT\tBRIEF")
	for i, d := range s.Params {
		def := "-"
		if text, ok := d.DefaultText(); ok {
			def = text
		}
		required := ""
		if d.Required {
			required = colors.Warn("yes")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i, strings.Join(d.Keys(), "|"), d.Type, required, def, d.Brief)
	}
	return tw.Flush()
}
