// Package log provides centralised audit logging for docq operations.
// Entries are stored in ~/.docq/log/docq-log.db and record every mutating
// command and every query, whether it came from the CLI, the shell or an
// MCP client.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("document:put", "write").
//		Author(cmd.Author()).
//		Doc(id).
//		Write(err)
//
//	log.Event("query:query", "query").
//		Author(cmd.Author()).
//		Query(q.String()).
//		Rows(len(rows)).
//		Write(err)
//
// The source follows the format "{extension}:{command}" for CLI commands,
// "shell" for the interactive shell or "mcp:{tool}" for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g. "document:put", "mcp:docq_query"
	Author string
	Action string // verb: read, write, delete, query, parse, import

	Doc   string // document id the operation targeted
	Query string // canonical query text, if any
	Rows  int    // documents returned or written

	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g. "document:put", "query:query")
//   - the interactive shell: "shell"
//   - MCP tools: "mcp:{tool}" (e.g. "mcp:docq_query")
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Doc sets the document id this operation affects.
func (b *Builder) Doc(id string) *Builder {
	b.entry.Doc = id
	return b
}

// Query records the query that was run. Pass the canonical form so that
// equivalent queries log identically.
func (b *Builder) Query(q string) *Builder {
	b.entry.Query = q
	return b
}

// Rows records how many documents the operation returned or wrote.
func (b *Builder) Rows(n int) *Builder {
	b.entry.Rows = n
	return b
}

// Detail adds a key-value pair to the entry's detail map. Use it for data
// that has no dedicated field, such as sort keys or limits.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success or failure from err.
//
//	rows, err := svc.Query(ctx, spec, opts)
//	log.Event("query:query", "query").Query(spec).Rows(len(rows)).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the .docq directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if the logger is not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Recent returns up to limit entries, newest first. When the project has been
// set only that project's entries are returned.
func Recent(limit int) ([]Record, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return nil, ErrClosed
	}
	return l.recent(limit)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
