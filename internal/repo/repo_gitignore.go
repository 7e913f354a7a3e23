// repo_gitignore.go manages .gitignore entries for local and shared databases.
//
// A local database is listed in .docq/.gitignore under a header line; a
// shared one is committed. Toggling keeps every other line of the file as
// the user wrote it.

package repo

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const localDBHeader = "# Local databases (not committed)"

// gitignore resolves the .gitignore path and database filename for name.
// If dir is empty the .docq directory is discovered.
func gitignore(name, dir string) (path, dbFile string, err error) {
	if dir == "" {
		if dir, err = DiscoverDir(); err != nil {
			return "", "", err
		}
	}
	return filepath.Join(dir, ".gitignore"), DBFileName(name), nil
}

func readLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(content), "\n"), nil
}

func containsTrimmed(lines []string, s string) bool {
	return slices.ContainsFunc(lines, func(l string) bool { return strings.TrimSpace(l) == s })
}

// IgnoreDB adds a database to the gitignore (marks it local).
func IgnoreDB(name, dir string) error {
	path, dbFile, err := gitignore(name, dir)
	if err != nil {
		return err
	}
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	if containsTrimmed(lines, dbFile) {
		return nil
	}

	s := strings.Join(lines, "\n")
	if !containsTrimmed(lines, localDBHeader) {
		s += "\n" + localDBHeader + "\n"
	}
	s += dbFile + "\n"
	return os.WriteFile(path, []byte(s), 0644)
}

// UnignoreDB removes a database from the gitignore (marks it shared). The
// local header goes too once no database follows it.
func UnignoreDB(name, dir string) error {
	path, dbFile, err := gitignore(name, dir)
	if err != nil {
		return err
	}
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	lines = slices.DeleteFunc(lines, func(l string) bool { return strings.TrimSpace(l) == dbFile })

	if i := slices.IndexFunc(lines, func(l string) bool { return strings.TrimSpace(l) == localDBHeader }); i >= 0 {
		rest := lines[i+1:]
		if !slices.ContainsFunc(rest, func(l string) bool { return strings.HasSuffix(strings.TrimSpace(l), ".db") }) {
			lines = lines[:i]
		}
	}
	s := strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
	return os.WriteFile(path, []byte(s), 0644)
}

// IsIgnored reports whether a database is listed in the gitignore.
func IsIgnored(name, dir string) (bool, error) {
	path, dbFile, err := gitignore(name, dir)
	if err != nil {
		return false, err
	}
	lines, err := readLines(path)
	if err != nil {
		return false, err
	}
	return containsTrimmed(lines, dbFile), nil
}
