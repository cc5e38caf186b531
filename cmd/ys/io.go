package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// openInput opens a file for reading, transparently decompressing by
// suffix: .zst streams through zstd, .gz through gzip. "-" is stdin.
func openInput(file string) (io.ReadCloser, error) {
	if file == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", file, err)
	}
	switch {
	case strings.HasSuffix(file, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd reader for %q: %w", file, err)
		}
		return &closerChain{Reader: dec.IOReadCloser(), closers: []func() error{f.Close}}, nil
	case strings.HasSuffix(file, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip reader for %q: %w", file, err)
		}
		return &closerChain{Reader: zr, closers: []func() error{zr.Close, f.Close}}, nil
	}
	return f, nil
}

// createOutput creates a file for writing, compressing by suffix the
// same way openInput decompresses.
func createOutput(file string) (io.WriteCloser, func() error, error) {
	f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case strings.HasSuffix(file, ".zst"):
		enc, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("zstd writer for %q: %w", file, err)
		}
		return enc, chain(enc.Close, f.Close), nil
	case strings.HasSuffix(file, ".gz"):
		zw := gzip.NewWriter(f)
		return zw, chain(zw.Close, f.Close), nil
	}
	return f, f.Close, nil
}

type closerChain struct {
	io.Reader
	closers []func() error
}

func (c *closerChain) Close() error {
	return chain(c.closers...)()
}

func chain(fns ...func() error) func() error {
	return func() error {
		var err error
		for _, fn := range fns {
			if e := fn(); e != nil && err == nil {
				err = e
			}
		}
		return err
	}
}

// eachInput runs fn over the named files, or over in when none are
// given.
func eachInput(in io.Reader, files []string, fn func(name string, r io.Reader) error) error {
	if len(files) == 0 {
		return fn("-", in)
	}
	for _, file := range files {
		r, err := openInput(file)
		if err != nil {
			return err
		}
		err = fn(file, r)
		r.Close()
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}
