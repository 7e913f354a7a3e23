// Package shell implements the session behind "docq shell".
//
// A Session holds the query options that dot commands change and runs every
// other line as a query. Line editing and history live with the command so
// that a Session can be driven from tests with plain strings.
package shell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jpl-au/docq/internal/format"
	"github.com/jpl-au/docq/internal/log"
	"github.com/jpl-au/docq/internal/service"
	"github.com/jpl-au/docq/query"
)

// Prompt is shown before each line.
const Prompt = "docq> "

// ErrUnknownCommand is returned for a dot command the shell does not know.
var ErrUnknownCommand = errors.New("unknown command (try .help)")

// Session is one interactive shell.
type Session struct {
	svc    service.Service
	out    io.Writer
	author string

	sortOn     []query.SortKey
	selectList []string
	skip       int
	limit      int
}

// New returns a session that queries svc and writes results to out.
func New(svc service.Service, out io.Writer, author string) *Session {
	return &Session{svc: svc, out: out, author: author}
}

// Commands lists the dot commands, for completion.
func Commands() []string {
	return []string{".help", ".limit", ".quit", ".reset", ".select", ".show", ".skip", ".sort"}
}

// Options returns the query options currently in effect.
func (s *Session) Options() query.Options {
	opts := query.Options{
		SelectList: s.selectList,
		SortOn:     s.sortOn,
	}
	switch {
	case s.skip > 0:
		opts.Limit = []int{s.skip, s.limit}
	case s.limit > 0:
		opts.Limit = []int{s.limit}
	}
	return opts
}

// Execute runs one line. It reports true when the session should end. Errors
// are for the caller to print; the session stays usable.
func (s *Session) Execute(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, ".") {
		return false, s.run(ctx, line)
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case ".quit", ".exit":
		return true, nil
	case ".help":
		s.help()
	case ".show":
		s.show()
	case ".reset":
		s.sortOn, s.selectList, s.skip, s.limit = nil, nil, 0, 0
	case ".sort":
		return false, s.setSort(arg)
	case ".select":
		s.selectList = splitList(arg)
	case ".limit":
		n, err := count(arg)
		if err != nil {
			return false, fmt.Errorf(".limit: %w", err)
		}
		s.limit = n
	case ".skip":
		n, err := count(arg)
		if err != nil {
			return false, fmt.Errorf(".skip: %w", err)
		}
		s.skip = n
	default:
		return false, fmt.Errorf("%s: %w", name, ErrUnknownCommand)
	}
	return false, nil
}

func (s *Session) run(ctx context.Context, line string) error {
	opts := s.Options()

	var spec any = line
	if strings.HasPrefix(line, "{") {
		spec = json.RawMessage(line)
	}

	rows, err := s.svc.Query(ctx, spec, opts)

	log.Event("shell", "query").
		Author(s.author).
		Query(line).
		Rows(len(rows)).
		Write(err)

	if err != nil {
		return err
	}
	return format.Rows(s.out, rows, opts.SelectList)
}

func (s *Session) setSort(arg string) error {
	var keys []query.SortKey
	for _, f := range splitList(arg) {
		k, err := query.ParseSortKey(f)
		if err != nil {
			return fmt.Errorf(".sort: %w", err)
		}
		keys = append(keys, k)
	}
	s.sortOn = keys
	return nil
}

func (s *Session) show() {
	fmt.Fprintf(s.out, "sort:   %s\n", orNone(sortString(s.sortOn)))
	fmt.Fprintf(s.out, "select: %s\n", orNone(strings.Join(s.selectList, ",")))
	fmt.Fprintf(s.out, "skip:   %d\n", s.skip)
	if s.limit == 0 {
		fmt.Fprintln(s.out, "limit:  none")
	} else {
		fmt.Fprintf(s.out, "limit:  %d\n", s.limit)
	}
}

func (s *Session) help() {
	fmt.Fprintln(s.out, "Type a query to run it, for example:")
	fmt.Fprintln(s.out, `  title: "Report%" AND year: >= 2020`)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  .sort <field[:desc]>,...  Sort the following queries")
	fmt.Fprintln(s.out, "  .select <field>,...       Return only these fields")
	fmt.Fprintln(s.out, "  .limit <n>                Return at most n rows (0 for all)")
	fmt.Fprintln(s.out, "  .skip <n>                 Skip the first n rows")
	fmt.Fprintln(s.out, "  .show                     Show the current options")
	fmt.Fprintln(s.out, "  .reset                    Clear all options")
	fmt.Fprintln(s.out, "  .quit                     Leave the shell")
}

func sortString(keys []query.SortKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.Field + ":" + k.Direction.String()
	}
	return strings.Join(parts, ",")
}

// splitList splits a comma or space separated list.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}

func count(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("want a non-negative number, got %q", arg)
	}
	return n, nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
