// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/shayne/yargs"
)

type FlagSpec struct {
	ConsumesValue bool
}

type CommandInfo struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Hidden      bool
	Aliases     []string
}

type CheckFlags struct {
	Schema       string
	SchemaFormat string
	Format       string
	Trace        bool
}

type BatchFlags struct {
	Schema       string
	SchemaFormat string
	Input        string
	Output       string
	Format       string
	Jobs         int
	Progress     bool
	Trace        bool
}

type WordsFlags struct {
	Format string
}

type DescribeFlags struct {
	Schema       string
	SchemaFormat string
	Format       string
}

type VersionFlags struct {
	JSON bool
}

type checkFlagsParsed struct {
	Schema       string `flag:"schema" short:"s" help:"Schema file (toml, yaml or json; may be .zst)"`
	SchemaFormat string `flag:"schema-format" help:"Schema format when it cannot be detected"`
	Format       string `flag:"format" default:"table" help:"Output format: table or json"`
	Trace        bool   `flag:"trace" help:"Log each parse step"`
}

type batchFlagsParsed struct {
	Schema       string `flag:"schema" short:"s" help:"Schema file (toml, yaml or json; may be .zst)"`
	SchemaFormat string `flag:"schema-format" help:"Schema format when it cannot be detected"`
	Input        string `flag:"input" short:"i" default:"-" help:"Command lines, one per line (- for stdin)"`
	Output       string `flag:"output" short:"o" default:"-" help:"Results file (- for stdout, .zst to compress)"`
	Format       string `flag:"format" default:"table" help:"Output format: table or json"`
	Jobs         int    `flag:"jobs" short:"j" help:"Parallel parsers (default: number of CPUs)"`
	Progress     bool   `flag:"progress" help:"Show progress on stderr when it is a terminal"`
	Trace        bool   `flag:"trace" help:"Log each parse step"`
}

type wordsFlagsParsed struct {
	Format string `flag:"format" default:"table" help:"Output format: table or json"`
}

type describeFlagsParsed struct {
	Schema       string `flag:"schema" short:"s" help:"Schema file (toml, yaml or json; may be .zst)"`
	SchemaFormat string `flag:"schema-format" help:"Schema format when it cannot be detected"`
	Format       string `flag:"format" default:"table" help:"Output format: table or json"`
}

type versionFlagsParsed struct {
	JSON bool `flag:"json"`
}

const (
	CommandCheck    = "check"
	CommandBatch    = "batch"
	CommandWords    = "words"
	CommandDescribe = "describe"
	CommandVersion  = "version"
)

var commandInfos = map[string]CommandInfo{
	CommandCheck: {Name: CommandCheck, Description: "Parse one command line against a schema", Usage: "--schema FILE [--format=table|json] [--] LINE...", Examples: []string{
		"clp check --schema greet.toml greet --name Ada -l",
		`clp check -s greet.yaml --format=json -- greet -n "Ada Lovelace" -t 3`,
	}, Aliases: []string{"c"}},
	CommandBatch: {Name: CommandBatch, Description: "Parse every line of a file against a schema", Usage: "--schema FILE [--input FILE] [--output FILE] [--jobs N]", Examples: []string{
		"clp batch --schema greet.toml --input lines.txt",
		"clp batch -s greet.toml -i lines.txt.zst -o results.json.zst --format=json -j 8",
	}},
	CommandWords: {Name: CommandWords, Description: "Show how a command line splits into words and tokens", Usage: "[--format=table|json] [--] LINE...", Examples: []string{
		`clp words -- greet -n "Ada Lovelace" -abc`,
	}},
	CommandDescribe: {Name: CommandDescribe, Description: "List the parameters a schema declares", Usage: "--schema FILE [--format=table|json]", Examples: []string{
		"clp describe --schema greet.toml",
	}},
	CommandVersion: {Name: CommandVersion, Description: "Show the version of clp"},
}

var flagSpecs = map[string]map[string]FlagSpec{
	CommandCheck:    flagSpecsFromStruct(checkFlagsParsed{}),
	CommandBatch:    flagSpecsFromStruct(batchFlagsParsed{}),
	CommandWords:    flagSpecsFromStruct(wordsFlagsParsed{}),
	CommandDescribe: flagSpecsFromStruct(describeFlagsParsed{}),
	CommandVersion:  flagSpecsFromStruct(versionFlagsParsed{}),
}

// CommandNames returns the command names in sorted order.
func CommandNames() []string {
	names := make([]string, 0, len(commandInfos))
	for name := range commandInfos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func CommandInfos() map[string]CommandInfo {
	return commandInfos
}

func FlagSpecs() map[string]map[string]FlagSpec {
	return flagSpecs
}

func ToSubCommandInfo(name string, info CommandInfo) yargs.SubCommandInfo {
	return yargs.SubCommandInfo{
		Name:        name,
		Description: info.Description,
		Usage:       info.Usage,
		Examples:    info.Examples,
		Hidden:      info.Hidden,
		Aliases:     info.Aliases,
	}
}

// ParseCheck parses the check flags. The command line to check starts at
// the first argument that is not a check flag, or after "--".
func ParseCheck(args []string) (CheckFlags, []string, error) {
	parseArgs, line := splitArgsAtLine(args, flagSpecs[CommandCheck])
	parsed, err := parseFlags[checkFlagsParsed](parseArgs)
	if err != nil {
		return CheckFlags{}, nil, err
	}
	flags := CheckFlags{
		Schema:       parsed.Flags.Schema,
		SchemaFormat: parsed.Flags.SchemaFormat,
		Format:       parsed.Flags.Format,
		Trace:        parsed.Flags.Trace,
	}
	if err := requireFormat(flags.Format); err != nil {
		return CheckFlags{}, nil, err
	}
	if flags.Schema == "" {
		return CheckFlags{}, nil, fmt.Errorf("'%s' requires --schema", CommandCheck)
	}
	return flags, append(parsed.Args, line...), nil
}

func ParseBatch(args []string) (BatchFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(args)
	parsed, err := parseFlags[batchFlagsParsed](parseArgs)
	if err != nil {
		return BatchFlags{}, nil, err
	}
	flags := BatchFlags{
		Schema:       parsed.Flags.Schema,
		SchemaFormat: parsed.Flags.SchemaFormat,
		Input:        parsed.Flags.Input,
		Output:       parsed.Flags.Output,
		Format:       parsed.Flags.Format,
		Jobs:         parsed.Flags.Jobs,
		Progress:     parsed.Flags.Progress,
		Trace:        parsed.Flags.Trace,
	}
	if err := requireFormat(flags.Format); err != nil {
		return BatchFlags{}, nil, err
	}
	if flags.Schema == "" {
		return BatchFlags{}, nil, fmt.Errorf("'%s' requires --schema", CommandBatch)
	}
	if flags.Jobs < 0 {
		return BatchFlags{}, nil, fmt.Errorf("--jobs must not be negative, got %d", flags.Jobs)
	}
	return flags, append(parsed.Args, extraArgs...), nil
}

func ParseWords(args []string) (WordsFlags, []string, error) {
	parseArgs, line := splitArgsAtLine(args, flagSpecs[CommandWords])
	parsed, err := parseFlags[wordsFlagsParsed](parseArgs)
	if err != nil {
		return WordsFlags{}, nil, err
	}
	flags := WordsFlags{Format: parsed.Flags.Format}
	if err := requireFormat(flags.Format); err != nil {
		return WordsFlags{}, nil, err
	}
	return flags, append(parsed.Args, line...), nil
}

func ParseDescribe(args []string) (DescribeFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(args)
	parsed, err := parseFlags[describeFlagsParsed](parseArgs)
	if err != nil {
		return DescribeFlags{}, nil, err
	}
	flags := DescribeFlags{
		Schema:       parsed.Flags.Schema,
		SchemaFormat: parsed.Flags.SchemaFormat,
		Format:       parsed.Flags.Format,
	}
	if err := requireFormat(flags.Format); err != nil {
		return DescribeFlags{}, nil, err
	}
	argsOut := append(parsed.Args, extraArgs...)
	if flags.Schema == "" && len(argsOut) > 0 {
		flags.Schema, argsOut = argsOut[0], argsOut[1:]
	}
	if flags.Schema == "" {
		return DescribeFlags{}, nil, fmt.Errorf("'%s' requires --schema", CommandDescribe)
	}
	return flags, argsOut, nil
}

func ParseVersion(args []string) (VersionFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(args)
	parsed, err := parseFlags[versionFlagsParsed](parseArgs)
	if err != nil {
		return VersionFlags{}, nil, err
	}
	flags := VersionFlags{JSON: parsed.Flags.JSON}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

func requireFormat(format string) error {
	switch format {
	case "table", "json":
		return nil
	}
	return fmt.Errorf("unknown --format %q (want table or json)", format)
}

type parsedFlags[T any] struct {
	Flags  T
	Args   []string
	Parser *yargs.Parser
}

func parseFlags[T any](args []string) (parsedFlags[T], error) {
	result, err := yargs.ParseFlags[T](args)
	if err != nil {
		return parsedFlags[T]{}, err
	}
	argsOut := append([]string{}, result.Args...)
	if len(result.RemainingArgs) > 0 {
		argsOut = append(argsOut, result.RemainingArgs...)
	}
	return parsedFlags[T]{Flags: result.Flags, Args: argsOut, Parser: result.Parser}, nil
}

// TrimCommand removes the first occurrence of the command name from args,
// as passed to a subcommand handler.
func TrimCommand(args []string, name string) []string {
	if i := slices.Index(args, name); i >= 0 {
		return slices.Delete(slices.Clone(args), i, i+1)
	}
	return args
}

// SplitLine separates the leading flags of command from the command line
// that follows them. It returns args unchanged as flags for commands that
// do not carry a line.
func SplitLine(command string, args []string) (flagArgs, line []string) {
	if command != CommandCheck && command != CommandWords {
		return args, nil
	}
	return splitArgsAtLine(args, flagSpecs[command])
}

func splitArgsAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
	}
	return args, nil
}

// splitArgsAtLine separates leading flags known to specs from the command
// line that follows them. The line starts at "--", at the first positional
// argument, or at the first unknown flag, so keys in the line never reach
// the flag parser.
func splitArgsAtLine(args []string, specs map[string]FlagSpec) ([]string, []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			return args[:i], args[i:]
		}
		name := arg
		if idx := strings.Index(name, "="); idx != -1 {
			name = name[:idx]
		}
		spec, ok := specs[name]
		if !ok {
			return args[:i], args[i:]
		}
		if spec.ConsumesValue && !strings.Contains(arg, "=") {
			i++
		}
	}
	return args, nil
}

func flagSpecsFromStruct(v any) map[string]FlagSpec {
	specs := make(map[string]FlagSpec)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return specs
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("flag")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		spec := FlagSpec{ConsumesValue: consumesValue(field.Type)}
		specs["--"+name] = spec
		if short := field.Tag.Get("short"); short != "" {
			specs["-"+short] = spec
		}
	}
	return specs
}

func consumesValue(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return false
	default:
		return true
	}
}
