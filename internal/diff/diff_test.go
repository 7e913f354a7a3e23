package diff

import (
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		new     string
		want    string
		changed bool
	}{
		{
			name: "identical",
			old:  `title: "x"`,
			new:  `title: "x"`,
			want: "title: \"x\"\n",
		},
		{
			name:    "quotes added",
			old:     `title:x`,
			new:     `title: "x"`,
			changed: true,
		},
		{
			name:    "implicit and made explicit",
			old:     `a:1 b:2`,
			new:     `( a: "1" AND b: "2" )`,
			changed: true,
		},
		{
			name:    "text removed",
			old:     "abc",
			new:     "ac",
			want:    "a[-b-]c\n",
			changed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.old, tt.new, "input", "canonical")
			if r.Changed != tt.changed {
				t.Errorf("Changed = %v, want %v", r.Changed, tt.changed)
			}
			if tt.want != "" && r.Diff != tt.want {
				t.Errorf("Diff = %q, want %q", r.Diff, tt.want)
			}
			if !strings.HasSuffix(r.Diff, "\n") {
				t.Errorf("Diff %q does not end in a newline", r.Diff)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	r := Compute("abc", "ac", "input", "canonical")

	plain := r.Format(false)
	if want := "--- input\n+++ canonical\na[-b-]c\n"; plain != want {
		t.Errorf("Format(false) = %q, want %q", plain, want)
	}

	coloured := r.Format(true)
	if strings.Contains(coloured, "[-") || !strings.Contains(coloured, "\033[31mb\033[0m") {
		t.Errorf("Format(true) = %q, want red deletion without markers", coloured)
	}
}
