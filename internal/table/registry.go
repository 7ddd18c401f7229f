package table

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"foldfeat/internal/fileutil"
)

// Format describes one output encoding. Exactly one of Stream or File is set.
type Format struct {
	Name      string
	Extension string
	// Stream encodes rows onto an io.Writer.
	Stream func(w io.Writer, rows []Row) error
	// File builds a complete artifact at path.
	File func(ctx context.Context, path string, rows []Row) error
}

var formats = map[string]Format{}

// Register adds or replaces a format. Last registration wins.
func Register(f Format) {
	formats[f.Name] = f
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	f, ok := formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Format{}, fmt.Errorf("unknown output format %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists registered formats in sorted order.
func Names() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Encode writes rows to w using a streaming format.
func Encode(format string, w io.Writer, rows []Row) error {
	f, err := Lookup(format)
	if err != nil {
		return err
	}
	if f.Stream == nil {
		return fmt.Errorf("format %q cannot be streamed", f.Name)
	}
	return f.Stream(w, rows)
}

// WriteFile replaces path with rows encoded as format. The write holds an
// exclusive lock on path for its duration and is atomic.
func WriteFile(ctx context.Context, format, path string, rows []Row) error {
	f, err := Lookup(format)
	if err != nil {
		return err
	}
	return fileutil.WithLock(ctx, path, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.File != nil {
			return fileutil.ReplaceAtomic(path, 0o644, func(tmpPath string) error {
				return f.File(ctx, tmpPath, rows)
			})
		}
		return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
			return f.Stream(w, rows)
		})
	})
}
