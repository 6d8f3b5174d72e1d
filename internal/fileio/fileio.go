// Package fileio opens workflow inputs and outputs.
//
// Inputs named "", "-" or "stdin" read standard input, and inputs ending in
// ".gz" are decompressed on the fly. Outputs named "", "-" or "stdout" write
// standard output; other outputs have their parent directory created.
package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gzip "github.com/klauspost/pgzip"
)

// IsStdio reports whether name refers to a standard stream.
func IsStdio(name string) bool {
	switch name {
	case "", "-", "stdin", "stdout":
		return true
	}
	return false
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenIn opens an input for reading.
func OpenIn(name string) (io.ReadCloser, error) {
	if IsStdio(name) {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}

	if strings.HasSuffix(name, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip stream %s: %w", name, err)
		}
		return &multiCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	}

	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// OpenOut creates an output for writing.
func OpenOut(name string) (io.WriteCloser, error) {
	if IsStdio(name) {
		return nopWriteCloser{os.Stdout}, nil
	}
	if err := EnsureDir(filepath.Dir(name)); err != nil {
		return nil, err
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return f, nil
}

// OpenAppend opens name for appending, creating it when absent.
func OpenAppend(name string) (io.WriteCloser, error) {
	if err := EnsureDir(filepath.Dir(name)); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening %s for append: %w", name, err)
	}
	return f, nil
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// Stem returns the base name of path without its extension. A trailing
// ".gz" is removed first, so "data/ebov.fas.gz" gives "ebov".
func Stem(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// IsFile reports whether path names an existing regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
