// Package importer loads JSON documents from files into a document store.
//
// A source is a file, a directory (searched recursively for .json, .jsonl
// and .ndjson files) or "-" for standard input. A file holds either a JSON
// array of objects or a stream of objects, one after another, which covers
// JSON Lines.
//
// Ids come from each object's _id field. An object without one is named
// after its file when it is the file's only object, and gets a generated id
// otherwise.
package importer

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/docq/internal/progress"
	"github.com/jpl-au/docq/internal/store"
	"github.com/jpl-au/docq/query"
)

// Stdin is the source name that reads standard input.
const Stdin = "-"

// ErrNotObject is returned when a file holds a JSON value that is not an
// object or an array of objects.
var ErrNotObject = errors.New("expected a JSON object")

// Putter stores one document. service.Service satisfies it.
type Putter interface {
	Put(ctx context.Context, id string, body query.Document, create bool) (string, error)
}

// Options configures an import operation.
type Options struct {
	Prefix string // Prefix for ids derived from file names
	Hidden bool   // Include hidden files/directories
	DryRun bool   // Show what would be imported without importing
	Create bool   // Fail instead of replacing existing documents
}

// Result contains the outcome of an import operation.
type Result struct {
	Imported int      `json:"imported"`
	IDs      []string `json:"ids"`
}

// Record is a decoded document and the id it will be stored under. An empty
// ID means the store chooses.
type Record struct {
	ID   string
	Body query.Document
}

// Run imports every document in src.
func Run(ctx context.Context, w io.Writer, dst Putter, src string, opts Options) (Result, error) {
	if src == Stdin {
		recs, err := Decode(os.Stdin, "")
		if err != nil {
			return Result{}, fmt.Errorf("reading stdin: %w", err)
		}
		return put(ctx, w, dst, recs, opts, "stdin")
	}

	info, err := os.Stat(src)
	if err != nil {
		return Result{}, err
	}
	if !info.IsDir() {
		recs, err := readFile(src, docID(filepath.Base(src), opts.Prefix))
		if err != nil {
			return Result{}, err
		}
		return put(ctx, w, dst, recs, opts, src)
	}

	// os.Root keeps the walk inside src even through symlinks.
	root, err := os.OpenRoot(src)
	if err != nil {
		return Result{}, fmt.Errorf("opening source root: %w", err)
	}
	defer root.Close()

	files, err := scanRoot(root, "", opts.Hidden)
	if err != nil {
		return Result{}, fmt.Errorf("scanning %s: %w", src, err)
	}

	var result Result
	prog := progress.New("Importing", len(files))
	defer prog.Done()
	for _, rel := range files {
		f, err := root.Open(rel)
		if err != nil {
			return result, fmt.Errorf("opening %s: %w", rel, err)
		}
		recs, err := Decode(f, docID(rel, opts.Prefix))
		f.Close()
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", rel, err)
		}

		r, err := put(ctx, w, dst, recs, opts, filepath.Join(src, rel))
		result.Imported += r.Imported
		result.IDs = append(result.IDs, r.IDs...)
		if err != nil {
			return result, err
		}
		prog.Increment()
		prog.Print()
	}
	return result, nil
}

func put(ctx context.Context, w io.Writer, dst Putter, recs []Record, opts Options, from string) (Result, error) {
	var result Result
	for _, rec := range recs {
		if opts.DryRun {
			id := rec.ID
			if v, ok := rec.Body[store.IDField].(string); ok {
				id = v
			}
			if id == "" {
				id = "(generated)"
			}
			fmt.Fprintf(w, "Would import: %s -> %s\n", from, id)
			result.IDs = append(result.IDs, id)
			continue
		}
		id, err := dst.Put(ctx, rec.ID, rec.Body, opts.Create)
		if err != nil {
			return result, fmt.Errorf("importing from %s: %w", from, err)
		}
		fmt.Fprintf(w, "Imported: %s -> %s\n", from, id)
		result.IDs = append(result.IDs, id)
		result.Imported++
	}
	return result, nil
}

func readFile(path, fallbackID string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	recs, err := Decode(f, fallbackID)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return recs, nil
}

// Decode reads a JSON array of objects or a stream of objects. fallbackID
// names the document when r holds exactly one object without an _id.
func Decode(r io.Reader, fallbackID string) ([]Record, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var bodies []query.Document
	dec := json.NewDecoder(br)
	if first == '[' {
		var arr []any
		if err := dec.Decode(&arr); err != nil {
			return nil, err
		}
		for i, v := range arr {
			m, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w at index %d, got %T", ErrNotObject, i, v)
			}
			bodies = append(bodies, m)
		}
	} else {
		for {
			var v any
			err := dec.Decode(&v)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			m, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w, got %T", ErrNotObject, v)
			}
			bodies = append(bodies, m)
		}
	}

	recs := make([]Record, len(bodies))
	for i, b := range bodies {
		recs[i] = Record{Body: b}
	}
	if len(recs) == 1 && first != '[' {
		if _, ok := recs[0].Body[store.IDField]; !ok {
			recs[0].ID = fallbackID
		}
	}
	return recs, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

var extensions = []string{".json", ".jsonl", ".ndjson"}

func isDocFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// scanRoot recursively finds document files within an os.Root. Returns
// paths relative to the root.
func scanRoot(root *os.Root, dir string, includeHidden bool) ([]string, error) {
	path := dir
	if path == "" {
		path = "."
	}

	f, err := root.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !includeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		rel := name
		if dir != "" {
			rel = filepath.Join(dir, name)
		}

		switch {
		case entry.IsDir():
			sub, err := scanRoot(root, rel, includeHidden)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
		case isDocFile(name):
			files = append(files, rel)
		}
	}
	return files, nil
}

// docID derives a document id from a file path relative to the import root.
func docID(rel, prefix string) string {
	id := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
	if prefix != "" {
		id = strings.TrimSuffix(prefix, "/") + "/" + id
	}
	return id
}
