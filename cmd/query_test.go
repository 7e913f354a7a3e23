package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ids returns the id column of line output.
func ids(out string) []string {
	var ids []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if id, _, ok := strings.Cut(line, "\t"); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func TestQuery(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooks()

	tests := []struct {
		name     string
		args     []string
		want     []string
		anyOrder bool
	}{
		{"field match", []string{`author: "Frank Herbert"`}, []string{"dune"}, true},
		{"wildcard", []string{`title: "%er%"`, "--sort", "title"}, []string{"hyperion", "neuromancer"}, false},
		{"comparison", []string{`year: < 1930`, "--sort", "year"}, []string{"emma", "ulysses"}, false},
		{"array field", []string{`tags: cyberpunk`}, []string{"neuromancer"}, true},
		{"or and not", []string{`tags: scifi AND NOT (year: > 1985 OR title: Dune)`}, []string{"neuromancer"}, true},
		{"full text", []string{`austen`}, []string{"emma"}, true},
		{"sort descending", []string{`tags: scifi`, "--sort", "year:desc"}, []string{"hyperion", "neuromancer", "dune"}, false},
		{"limit", []string{``, "--sort", "year", "-n", "2"}, []string{"emma", "ulysses"}, false},
		{"skip and limit", []string{``, "--sort", "year", "--skip", "1", "-n", "2"}, []string{"ulysses", "dune"}, false},
		{"id field", []string{`_id: emma`}, []string{"emma"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := env.run(append([]string{"query"}, tt.args...)...)
			if tt.anyOrder {
				assert.ElementsMatch(t, tt.want, ids(out))
				return
			}
			assert.Equal(t, tt.want, ids(out))
		})
	}
}

func TestQuery_Output(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooks()

	t.Run("select", func(t *testing.T) {
		out := env.run("query", "_id: dune", "--select", "title,year")
		env.equals(out, "dune\t{\"title\":\"Dune\",\"year\":1965}")
	})

	t.Run("count", func(t *testing.T) {
		env.equals(env.run("query", "tags: classic", "-c"), "2")
	})

	t.Run("json output", func(t *testing.T) {
		out := env.run("query", "year: > 1980", "--sort", "year", "-o", "json")
		var rows []struct {
			ID    string         `json:"id"`
			Value map[string]any `json:"value"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "neuromancer", rows[0].ID)
		assert.Equal(t, "Hyperion", rows[1].Value["title"])
	})

	t.Run("json query form", func(t *testing.T) {
		out := env.run("query", `{"type": "simple", "key": "year", "operator": ">=", "value": "1984"}`, "--sort", "year")
		assert.Equal(t, []string{"neuromancer", "hyperion"}, ids(out))
	})

	t.Run("query from stdin", func(t *testing.T) {
		out := env.runStdin(`title: Emma`, "query")
		assert.Equal(t, []string{"emma"}, ids(out))
	})
}

func TestQuery_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.seedBooks()

	out, err := env.runErr("query", "(title: Dune")
	assert.Error(t, err)
	env.contains(out, "parse query")

	out, err = env.runErr("query", "year: > 1900", "--sort", "year:desc", "--limit", "-1")
	assert.Error(t, err, out)

	out = env.run("query", "(title: Dune", "-o", "json")
	env.contains(out, `"error"`)
}

func TestQuery_File(t *testing.T) {
	env := newBareEnv(t)
	file := env.write("books.jsonl", testBooks)

	out := env.run("query", "year: >= 1984", "--sort", "year", "--file", file)
	assert.Equal(t, []string{"neuromancer", "hyperion"}, ids(out))
}

func TestQuery_KeySchema(t *testing.T) {
	env := newTestEnv(t)
	env.write("keys.yaml", `key_set:
  writer:
    read_from: author
  name:
    read_from: title
    equal_match: equalFold
`)
	env.run("config", "query.schema", "keys.yaml", "--local")
	env.seedBooks()

	out := env.run("query", `writer: "%Gibson"`)
	assert.Equal(t, []string{"neuromancer"}, ids(out))

	out = env.run("query", `name: DUNE`)
	assert.Equal(t, []string{"dune"}, ids(out))

	out, err := env.runErr("parse", `name: x`, "--json")
	require.NoError(t, err, out)
	env.contains(out, `"key": "name"`)
}

func TestParse(t *testing.T) {
	env := newBareEnv(t)

	env.equals(env.run("parse", "a:x b:y OR c:z"), `( ( a: "x" AND b: "y" ) OR c: "z" )`)

	out := env.run("parse", "year: >= 2020", "--json")
	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "simple", tree["type"])
	assert.Equal(t, ">=", tree["operator"])

	_, err := env.runErr("parse", "a:==b")
	assert.Error(t, err)

	env.equals(env.run("parse", `"first name": Ann`), `"first name": "Ann"`)

	out = env.run("parse", `{"type": "simple", "key": {"read_from": "date"}, "value": "2013"}`)
	env.contains(out, `date: "2013"`)
	env.contains(out, "warning:")
	env.contains(out, "inline descriptor")
}

func TestFmt(t *testing.T) {
	env := newBareEnv(t)

	env.equals(env.run("fmt", "a:x b:y"), `( a: "x" AND b: "y" )`)
	env.equals(env.run("fmt", "--diff", `a: "x"`), "Already canonical")

	out := env.run("fmt", "--diff", "a:x")
	env.contains(out, "--- input")
	env.contains(out, "+++ canonical")

	out = env.run("fmt", "a:x", "-o", "json")
	env.contains(out, `"changed":true`)

	env.equals(env.run("fmt", `"my key":v`), `"my key": "v"`)
}
