// Package format provides output formatting utilities for CLI display.
//
// Commands hand their results here so they can focus on running the
// operation. Query rows print as one JSON object per line for pipes and as a
// markdown table rendered with glamour on a terminal.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/jpl-au/docq/internal/log"
	"github.com/jpl-au/docq/internal/store"
)

// maxCell truncates long table cells so one field cannot push the rest of the
// table off screen.
const maxCell = 60

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Markdown writes md to w, rendered with glamour when w is a terminal and
// raw otherwise. A rendering failure falls back to the raw text.
func Markdown(w io.Writer, md string) error {
	if IsTerminal(w) {
		if out, err := glamour.Render(md, "dark"); err == nil {
			_, err = fmt.Fprint(w, out)
			return err
		}
	}
	_, err := fmt.Fprint(w, md)
	return err
}

// humanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func humanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// List prints document ids, one per line.
func List(w io.Writer, metas []store.Meta) error {
	for _, m := range metas {
		if _, err := fmt.Fprintln(w, m.ID); err != nil {
			return err
		}
	}
	return nil
}

// Long prints document metadata in columns.
//
// Column order is SIZE, UPDATED, ID. The id is last so its varying width does
// not disrupt the alignment of the fixed-width columns.
func Long(w io.Writer, metas []store.Meta) error {
	if len(metas) == 0 {
		return nil
	}
	fmt.Fprintf(w, "%6s  %-20s  %s\n", "SIZE", "UPDATED", "ID")
	for _, m := range metas {
		fmt.Fprintf(w, "%6s  %-20s  %s\n", humanSize(m.Size), m.UpdatedAt, m.ID)
	}
	return nil
}

// Lines prints each row as its id, a tab and the compact JSON value. This
// is the default for pipes: every line is easy to cut or feed to jq.
func Lines(w io.Writer, rows []store.Row) error {
	for _, r := range rows {
		b, err := json.Marshal(r.Value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", r.ID, err)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", r.ID, b); err != nil {
			return err
		}
	}
	return nil
}

// Columns returns the table columns for rows. An explicit select list is used
// as given; otherwise the union of top-level fields, sorted.
func Columns(rows []store.Row, selectList []string) []string {
	if len(selectList) > 0 {
		return selectList
	}
	seen := make(map[string]bool)
	var cols []string
	for _, r := range rows {
		for k := range r.Value {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

// Table renders rows as a markdown table with an id column followed by cols.
// Missing fields are left blank; nested values are shown as compact JSON.
func Table(rows []store.Row, cols []string) string {
	var b strings.Builder
	b.WriteString("| " + store.IDField)
	for _, c := range cols {
		b.WriteString(" | " + cell(c))
	}
	b.WriteString(" |\n|---")
	for range cols {
		b.WriteString("|---")
	}
	b.WriteString("|\n")

	for _, r := range rows {
		b.WriteString("| " + cell(r.ID))
		for _, c := range cols {
			b.WriteString(" | ")
			if v, ok := r.Value[c]; ok {
				b.WriteString(cell(value(v)))
			}
		}
		b.WriteString(" |\n")
	}
	fmt.Fprintf(&b, "\n%d row(s)\n", len(rows))
	return b.String()
}

// Rows writes query results: a rendered table on a terminal, JSON lines
// otherwise.
func Rows(w io.Writer, rows []store.Row, selectList []string) error {
	if !IsTerminal(w) {
		return Lines(w, rows)
	}
	return Markdown(w, Table(rows, Columns(rows, selectList)))
}

func value(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// cell makes s safe for a single markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > maxCell {
		s = string(r[:maxCell-3]) + "..."
	}
	return s
}

// Log prints audit log records in the order given.
func Log(w io.Writer, recs []log.Record) error {
	for _, r := range recs {
		status := "ok"
		if !r.Success {
			status = "FAIL"
		}
		target := r.Doc
		if r.Query != "" {
			target = r.Query
		}
		author := r.Author
		if author == "" {
			author = "-"
		}
		line := fmt.Sprintf("%s  %-4s  %-16s  %-8s  %-12s  %s",
			r.Time.Format("2006-01-02 15:04:05"), status, r.Source, r.Action, author, target)
		if r.Rows > 0 {
			line += fmt.Sprintf("  (%d)", r.Rows)
		}
		if r.Error != "" {
			line += "  " + r.Error
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
