// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command clp checks command lines against parser schemas.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shayne/yargs"
	"github.com/yeetrun/clp/pkg/cli"
	"github.com/yeetrun/clp/pkg/tui"
	"golang.org/x/term"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	colors tui.Colorizer

	isTerminalFn = func(f *os.File) bool { return term.IsTerminal(int(f.Fd())) }
)

type globalFlagsParsed struct {
	NoColor bool `flag:"no-color" help:"Disable colored output (also NO_COLOR)"`
}

// parseGlobalFlags reads the global flags that precede the command name.
// Flags after it belong to the command or to the line being checked.
func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	end := len(args)
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			end = i
			break
		}
	}
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args[:end], yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	remaining := append(append([]string{}, result.RemainingArgs...), args[end:]...)
	return result.Flags, remaining, nil
}

func buildHelpConfig() yargs.HelpConfig {
	subcommands := make(map[string]yargs.SubCommandInfo)
	for name, info := range cli.CommandInfos() {
		subcommands[name] = cli.ToSubCommandInfo(name, info)
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "clp",
			Description: "Check command lines against a declared list of typed parameters.",
			Examples: []string{
				"clp check --schema greet.toml greet --name Ada -l",
				"clp batch --schema greet.toml --input lines.txt --format=json",
				"clp words -- greet -n \"Ada Lovelace\" -abc",
				"clp describe greet.toml",
			},
		},
		SubCommands: subcommands,
	}
}

func buildHandlers() map[string]yargs.SubcommandHandler {
	return map[string]yargs.SubcommandHandler{
		cli.CommandCheck:    handleCheck,
		cli.CommandBatch:    handleBatch,
		cli.CommandWords:    handleWords,
		cli.CommandDescribe: handleDescribe,
		cli.CommandVersion:  handleVersion,
	}
}

// lineHandler returns the handler for a command whose trailing command line
// is non-empty. Such lines are dispatched directly so that keys like -h in
// them are not taken as a request for help.
func lineHandler(args []string, handlers map[string]yargs.SubcommandHandler) (yargs.SubcommandHandler, bool) {
	if len(args) == 0 {
		return nil, false
	}
	_, line := cli.SplitLine(args[0], args[1:])
	if len(line) == 0 || isHelpFlag(line[0]) {
		return nil, false
	}
	h, ok := handlers[args[0]]
	return h, ok
}

func isHelpFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "--help-llm", "help":
		return true
	}
	return false
}

// reportedError is returned by handlers that already wrote a diagnostic.
// It only sets the exit status.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var reported reportedError
	if errors.As(err, &reported) {
		return
	}
	fmt.Fprintln(w, colors.Error("clp:"), err)
}

func run(ctx context.Context, args []string) int {
	globalFlags, remaining, err := parseGlobalFlags(args)
	if err != nil {
		printCLIError(stderr, err)
		return 2
	}
	colors = tui.NewColorizer(!globalFlags.NoColor, os.Stdout)

	helpConfig := buildHelpConfig()
	remaining = yargs.ApplyAliases(remaining, helpConfig)
	handlers := buildHandlers()
	if h, ok := lineHandler(remaining, handlers); ok {
		err = h(ctx, remaining)
	} else {
		err = yargs.RunSubcommands(ctx, remaining, helpConfig, globalFlagsParsed{}, handlers)
	}
	if err != nil {
		printCLIError(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}
