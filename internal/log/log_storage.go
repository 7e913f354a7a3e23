// log_storage.go implements SQLite-based persistent audit logging.
//
// log.go provides the fluent API for building entries; this file handles
// persistence and reading them back for "docq log". The project column holds
// a hash of the repository directory so entries from many repositories share
// one database without recording their paths.
//
// Errors while writing are reported to stderr and otherwise ignored: a put
// should succeed even if it cannot be recorded.

package log

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// ErrClosed is returned when reading from a logger that was never opened.
var ErrClosed = errors.New("audit log not open")

// Logger writes audit log entries to a SQLite database.
type Logger struct {
	db      *sql.DB
	project string
}

// Record is an entry read back from the database.
type Record struct {
	ID      int64          `json:"id"`
	Time    time.Time      `json:"time"`
	Elapsed time.Duration  `json:"elapsed"`
	Source  string         `json:"source"`
	Author  string         `json:"author,omitempty"`
	Action  string         `json:"action"`
	Doc     string         `json:"doc,omitempty"`
	Query   string         `json:"query,omitempty"`
	Rows    int            `json:"rows,omitempty"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Detail  map[string]any `json:"detail,omitempty"`
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	success := 0
	if e.Success {
		success = 1
	}

	_, err := l.db.Exec(`
		INSERT INTO log (start, end, project, source, author, action, doc, query,
		                 row_count, success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, l.project, e.Source, nilIfEmpty(e.Author), e.Action,
		nilIfEmpty(e.Doc), nilIfEmpty(e.Query), nilIfZero(e.Rows),
		success, nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "docq: audit log write failed: %v\n", err)
	}
}

func (l *Logger) recent(limit int) ([]Record, error) {
	q := `SELECT id, start, end, source, author, action, doc, query, row_count, success, error, detail
		FROM log`
	args := []any{}
	if l.project != "" {
		q += ` WHERE project = ?`
		args = append(args, l.project)
	}
	q += ` ORDER BY id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := l.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r          Record
			start, end int64
			n          sql.NullInt64
			success    int
		)
		var author, doc, query, errMsg, detail sql.NullString
		if err := rows.Scan(&r.ID, &start, &end, &r.Source, &author, &r.Action,
			&doc, &query, &n, &success, &errMsg, &detail); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		r.Time = time.Unix(start, 0)
		r.Elapsed = time.Duration(end-start) * time.Second
		r.Author, r.Doc, r.Query, r.Error = author.String, doc.String, query.String, errMsg.String
		r.Rows = int(n.Int64)
		r.Success = success == 1
		if detail.Valid {
			_ = json.Unmarshal([]byte(detail.String), &r.Detail)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// dbPathFunc returns the database path. Tests override it.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Containers without a home directory still get a log.
		return filepath.Join(".docq", "log", "docq-log.db")
	}
	return filepath.Join(home, ".docq", "log", "docq-log.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the log database.
func DBPath() string {
	return dbPath()
}

// hash creates a project identifier from the directory path.
func hash(s string) string {
	h, err := blake2b.New(8, nil) // 64-bit = 16 hex chars
	if err != nil {
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// migrate creates the log table if it doesn't exist.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS log (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			start    INTEGER NOT NULL,
			end      INTEGER NOT NULL,
			project  TEXT NOT NULL,
			source   TEXT NOT NULL,
			author   TEXT,
			action   TEXT NOT NULL,
			doc      TEXT,
			query    TEXT,
			row_count INTEGER,
			success  INTEGER NOT NULL,
			error    TEXT,
			detail   TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_log_start ON log(start);
		CREATE INDEX IF NOT EXISTS idx_log_project ON log(project);
		CREATE INDEX IF NOT EXISTS idx_log_source ON log(source);
	`)
	return err
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nilIfZero(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
