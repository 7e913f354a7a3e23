// Package exporter writes documents to the filesystem or a stream.
//
// Exported files round-trip through the importer: a directory export holds
// one <id>.json per document, named so the importer derives the same id, and
// a stream export is one object per line with its _id.
package exporter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/docq/internal/progress"
	"github.com/jpl-au/docq/internal/store"
	"github.com/jpl-au/docq/query"
)

// Stdout is the destination name that streams JSON lines to the writer.
const Stdout = "-"

// ErrExists is returned when a destination file exists and Force is unset.
var ErrExists = errors.New("file exists (use --force to overwrite)")

// Querier runs a query. service.Service satisfies it.
type Querier interface {
	Query(ctx context.Context, spec any, opts query.Options) ([]store.Row, error)
}

// Options configures an export operation.
type Options struct {
	Query   query.Options // Sort, limit and projection for the matching rows
	Force   bool          // Overwrite existing files
	Compact bool          // One-line JSON in files
}

// Result contains the outcome of an export operation.
type Result struct {
	Exported int      `json:"exported"`
	Paths    []string `json:"paths,omitempty"` // Files written; empty for a stream
}

// Run exports every document matching spec to dst, a directory or Stdout.
// Progress lines go to w for a directory export; a stream export writes the
// documents themselves to w.
func Run(ctx context.Context, w io.Writer, src Querier, spec any, dst string, opts Options) (Result, error) {
	rows, err := src.Query(ctx, spec, opts.Query)
	if err != nil {
		return Result{}, err
	}
	if dst == Stdout {
		return stream(w, rows)
	}
	return toDir(w, rows, dst, opts)
}

// stream writes rows as JSON lines, each with its _id.
func stream(w io.Writer, rows []store.Row) (Result, error) {
	var result Result
	enc := json.NewEncoder(w)
	for _, r := range rows {
		if err := enc.Encode(withID(r)); err != nil {
			return result, fmt.Errorf("writing %s: %w", r.ID, err)
		}
		result.Exported++
	}
	return result, nil
}

// toDir writes one file per row inside dst.
func toDir(w io.Writer, rows []store.Row, dst string, opts Options) (Result, error) {
	var result Result
	if err := os.MkdirAll(dst, 0755); err != nil {
		return result, fmt.Errorf("creating destination directory: %w", err)
	}

	// os.Root keeps ids containing ".." inside dst.
	root, err := os.OpenRoot(dst)
	if err != nil {
		return result, fmt.Errorf("opening destination root: %w", err)
	}
	defer root.Close()

	prog := progress.New("Exporting", len(rows))
	defer prog.Done()

	for _, r := range rows {
		name := filepath.FromSlash(r.ID) + ".json"

		var data []byte
		if opts.Compact {
			data, err = json.Marshal(r.Value)
		} else {
			data, err = store.MarshalJSON(r.Value)
		}
		if err != nil {
			return result, fmt.Errorf("encoding %s: %w", r.ID, err)
		}

		if err := writeFileInRoot(root, name, append(data, '\n'), opts.Force); err != nil {
			return result, err
		}

		prog.Increment()
		prog.Print()
		outPath := filepath.Join(dst, name)
		result.Paths = append(result.Paths, outPath)
		result.Exported++
		fmt.Fprintf(w, "Exported: %s -> %s\n", r.ID, outPath)
	}
	return result, nil
}

// withID returns the row's value with its id under _id.
func withID(r store.Row) query.Document {
	doc := make(query.Document, len(r.Value)+1)
	for k, v := range r.Value {
		doc[k] = v
	}
	doc[store.IDField] = r.ID
	return doc
}

// writeFileInRoot writes data to a file within root, creating parent
// directories as needed.
func writeFileInRoot(root *os.Root, name string, data []byte, force bool) error {
	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("%s: %w", name, ErrExists)
		}
	}

	if dir := filepath.Dir(name); dir != "." && dir != "" {
		if err := mkdirAllInRoot(root, dir); err != nil {
			return err
		}
	}

	f, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}

// mkdirAllInRoot creates a directory and all parents within root.
func mkdirAllInRoot(root *os.Root, path string) error {
	parts := strings.Split(filepath.Clean(path), string(filepath.Separator))
	for i := range parts {
		dir := filepath.Join(parts[:i+1]...)
		if err := root.Mkdir(dir, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}
	return nil
}
