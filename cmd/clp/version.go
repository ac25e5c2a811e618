// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/yeetrun/clp/pkg/cli"
	"github.com/yeetrun/clp/pkg/clp"
)

type versionInfo struct {
	Version string `json:"version"`
	Grammar string `json:"grammar"`
	Commit  string `json:"commit"`
	Go      string `json:"go"`
}

func handleVersion(_ context.Context, args []string) error {
	flags, rest, err := cli.ParseVersion(cli.TrimCommand(args, cli.CommandVersion))
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("'%s' takes no arguments, got %q", cli.CommandVersion, rest)
	}
	info := versionInfo{
		Version: clp.BuildVersion(),
		Grammar: clp.Version,
		Commit:  clp.Commit(),
		Go:      runtime.Version(),
	}
	if flags.JSON {
		return writeJSON(stdout, info)
	}
	fmt.Fprintf(stdout, "clp %s (%s, %s)\n", info.Version, info.Commit, info.Go)
	return nil
}
