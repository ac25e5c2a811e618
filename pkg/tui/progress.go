// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
)

var DefaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Progress renders a spinner followed by a done/total counter on one
// terminal line. Add may be called from any goroutine.
type Progress struct {
	out        io.Writer
	frames     []string
	interval   time.Duration
	color      Colorizer
	frameColor color.Attribute
	label      string

	total  int
	done   atomic.Int64
	failed atomic.Int64

	mu      sync.Mutex
	idx     int
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

type ProgressOption func(*Progress)

func WithFrames(frames []string) ProgressOption {
	return func(p *Progress) {
		if len(frames) > 0 {
			p.frames = frames
		}
	}
}

func WithInterval(d time.Duration) ProgressOption {
	return func(p *Progress) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithColor(colorizer Colorizer, frameColor color.Attribute) ProgressOption {
	return func(p *Progress) {
		p.color = colorizer
		p.frameColor = frameColor
	}
}

// NewProgress returns a counter for total items described by label.
func NewProgress(out io.Writer, label string, total int, opts ...ProgressOption) *Progress {
	p := &Progress{
		out:        out,
		frames:     DefaultFrames,
		interval:   120 * time.Millisecond,
		frameColor: color.FgCyan,
		label:      label,
		total:      total,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Add records one finished item.
func (p *Progress) Add(ok bool) {
	p.done.Add(1)
	if !ok {
		p.failed.Add(1)
	}
}

// Counts returns the finished and failed item counts.
func (p *Progress) Counts() (done, failed int) {
	return int(p.done.Load()), int(p.failed.Load())
}

func (p *Progress) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	p.renderFrame(0)
	go p.loop()
}

// Stop halts rendering and clears the line.
func (p *Progress) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	stopCh := p.stopCh
	doneCh := p.doneCh
	p.running = false
	p.mu.Unlock()

	close(stopCh)
	<-doneCh
	fmt.Fprint(p.out, "\r\033[K")
}

func (p *Progress) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.tick()
		case <-p.stopCh:
			close(p.doneCh)
			return
		}
	}
}

func (p *Progress) tick() {
	p.mu.Lock()
	if !p.running || len(p.frames) == 0 {
		p.mu.Unlock()
		return
	}
	p.idx = (p.idx + 1) % len(p.frames)
	frameIdx := p.idx
	p.mu.Unlock()

	p.renderFrame(frameIdx)
}

// Line returns the text rendered after the spinner frame.
func (p *Progress) Line() string {
	done, failed := p.Counts()
	line := fmt.Sprintf("%s %d/%d", p.label, done, p.total)
	if failed > 0 {
		line += " " + p.color.Error(fmt.Sprintf("(%d failed)", failed))
	}
	return line
}

func (p *Progress) renderFrame(idx int) {
	if len(p.frames) == 0 {
		return
	}
	frame := p.color.Wrap(p.frames[idx%len(p.frames)], p.frameColor)
	fmt.Fprintf(p.out, "\r\033[K%s %s", frame, p.Line())
}
