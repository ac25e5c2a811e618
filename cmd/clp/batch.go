// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/yeetrun/clp/pkg/cli"
	"github.com/yeetrun/clp/pkg/codecutil"
	"github.com/yeetrun/clp/pkg/schema"
	"github.com/yeetrun/clp/pkg/tui"
	"golang.org/x/sync/errgroup"
)

type inputLine struct {
	num  int
	text string
}

// readLines returns the non-blank lines of r that are not comments.
func readLines(r io.Reader) ([]inputLine, error) {
	var lines []inputLine
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	num := 0
	for sc.Scan() {
		num++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, inputLine{num: num, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}

// parseLines parses every line with jobs workers, each owning a parser built
// from s. Results are returned in input order.
func parseLines(ctx context.Context, s *schema.Schema, lines []inputLine, jobs int, trace bool, progress *tui.Progress) ([]lineResult, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = max(1, min(jobs, len(lines)))

	results := make([]lineResult, len(lines))
	work := make(chan int)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(work)
		for i := range lines {
			select {
			case work <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := range jobs {
		g.Go(func() error {
			p, err := buildParser(s, trace, fmt.Sprintf("worker %d: ", w))
			if err != nil {
				return err
			}
			for i := range work {
				vals, perr := p.Parse(lines[i].text)
				res := newLineResult(s, p, lines[i].text, vals, perr)
				res.Line = lines[i].num
				results[i] = res
				if progress != nil {
					progress.Add(res.OK)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeBatchTable(w io.Writer, results []lineResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "LINE\tSTATUS\tDETAIL")
	for _, res := range results {
		if res.OK {
			var kv []string
			for _, v := range res.Values {
				kv = append(kv, fmt.Sprintf("%s=%s", v.Keys[0], valueText(v.Value)))
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", res.Line, colors.OK("ok"), strings.Join(kv, " "))
			continue
		}
		summary, _, _ := strings.Cut(res.Error.Message, "\n")
		summary = strings.TrimPrefix(summary, "[clp] error: ")
		fmt.Fprintf(tw, "%d\t%s\t%s\n", res.Line, colors.Error(res.Error.Code), summary)
	}
	return tw.Flush()
}

// writeBatchJSON writes one JSON object per line.
func writeBatchJSON(w io.Writer, results []lineResult) error {
	enc := json.NewEncoder(w)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
	return nil
}

func createBatchOutput(path string) (io.WriteCloser, error) {
	if path == codecutil.Stdio {
		return nopWriteCloser{stdout}, nil
	}
	return codecutil.CreateOutput(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func handleBatch(ctx context.Context, args []string) error {
	flags, _, err := cli.ParseBatch(cli.TrimCommand(args, cli.CommandBatch))
	if err != nil {
		return err
	}
	s, err := loadSchema(flags.Schema, flags.SchemaFormat)
	if err != nil {
		return err
	}

	in, err := codecutil.OpenInput(flags.Input)
	if err != nil {
		return err
	}
	lines, err := readLines(in)
	in.Close()
	if err != nil {
		return err
	}

	var progress *tui.Progress
	if flags.Progress && isTerminalFn(os.Stderr) {
		progress = tui.NewProgress(stderr, "parsed", len(lines), tui.WithColor(tui.NewColorizer(colors.Enabled, os.Stderr), color.FgCyan))
		progress.Start()
	}
	results, err := parseLines(ctx, s, lines, flags.Jobs, flags.Trace, progress)
	if progress != nil {
		progress.Stop()
	}
	if err != nil {
		return err
	}

	out, err := createBatchOutput(flags.Output)
	if err != nil {
		return err
	}
	if flags.Format == "json" {
		err = writeBatchJSON(out, results)
	} else {
		err = writeBatchTable(out, results)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if !res.OK {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d lines failed", failed, len(results))
	}
	return nil
}
