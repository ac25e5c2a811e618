// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codecutil opens inputs and outputs that may be zstd compressed.
package codecutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/yeetrun/clp/pkg/ftdetect"
)

// Stdio is the path that names standard input or standard output.
const Stdio = "-"

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// OpenInput opens path for reading, or stdin for "-". Zstd compressed
// content is decompressed transparently.
func OpenInput(path string) (io.ReadCloser, error) {
	var src io.ReadCloser = io.NopCloser(os.Stdin)
	if path != Stdio {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		src = f
	}

	br := bufio.NewReader(src)
	magic, _ := br.Peek(4)
	if !ftdetect.IsZstd(magic) {
		return readCloser{Reader: br, close: src.Close}, nil
	}

	decoder, err := zstd.NewReader(br)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return readCloser{Reader: decoder, close: func() error {
		decoder.Close()
		return src.Close()
	}}, nil
}

// ReadInput returns the decompressed contents of path.
func ReadInput(path string) ([]byte, error) {
	r, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return bs, nil
}

type writeCloser struct {
	io.Writer
	close func() error
}

func (w writeCloser) Close() error { return w.close() }

// CreateOutput creates path for writing, or returns stdout for "-". A path
// ending in ".zst" is zstd compressed; Close flushes the encoder.
func CreateOutput(path string) (io.WriteCloser, error) {
	if path == Stdio {
		return writeCloser{Writer: os.Stdout, close: func() error { return nil }}, nil
	}

	dstFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	if !strings.HasSuffix(path, ".zst") {
		return dstFile, nil
	}

	encoder, err := zstd.NewWriter(dstFile)
	if err != nil {
		dstFile.Close()
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	return writeCloser{Writer: encoder, close: func() error {
		if err := encoder.Close(); err != nil {
			dstFile.Close()
			return fmt.Errorf("failed to compress output: %w", err)
		}
		return dstFile.Close()
	}}, nil
}
