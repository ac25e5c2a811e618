// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

type Colorizer struct {
	Enabled bool
}

// NewColorizer enables color when asked to and f is a terminal that is not
// dumb and NO_COLOR is unset. A nil f skips the terminal check.
func NewColorizer(enabled bool, f *os.File) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	t := os.Getenv("TERM")
	if t == "" || t == "dumb" {
		return Colorizer{}
	}
	if f != nil && !term.IsTerminal(int(f.Fd())) {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

func (c Colorizer) Wrap(text string, attrs ...color.Attribute) string {
	if !c.Enabled || len(attrs) == 0 {
		return text
	}
	col := color.New(attrs...)
	col.EnableColor()
	return col.Sprint(text)
}

func (c Colorizer) Error(text string) string { return c.Wrap(text, color.FgRed, color.Bold) }
func (c Colorizer) OK(text string) string    { return c.Wrap(text, color.FgGreen) }
func (c Colorizer) Warn(text string) string  { return c.Wrap(text, color.FgYellow) }
func (c Colorizer) Dim(text string) string   { return c.Wrap(text, color.FgHiBlack) }
func (c Colorizer) Key(text string) string   { return c.Wrap(text, color.FgCyan) }
