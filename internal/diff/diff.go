// Package diff shows how a query changes when docq rewrites it into its
// canonical form. Queries are usually a single line, so changes are marked
// inline in the style of a word diff: [-removed-] and {+added+}.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Result holds diff output.
type Result struct {
	Old     string // old label
	New     string // new label
	Diff    string // marked-up text, ending in a newline
	Changed bool   // false when both sides are identical
}

// Compute returns an inline diff between old and new text.
func Compute(oldText, newText, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	d := dmp.DiffMain(oldText, newText, false)
	d = dmp.DiffCleanupSemantic(d)

	return Result{
		Old:     oldLabel,
		New:     newLabel,
		Diff:    format(d),
		Changed: oldText != newText,
	}
}

// format writes equal runs as they are and wraps deletions and insertions
// in markers.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}

// Colourise replaces the markers with ANSI colours.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)
	r := strings.NewReplacer(
		"[-", red,
		"-]", reset,
		"{+", green,
		"+}", reset,
	)
	return r.Replace(d)
}

// Format returns the full diff with header.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}
