// Package repo provides repository initialisation and discovery for docq.
//
// A docq repository is a .docq directory containing one or more SQLite
// databases, the local config file and the shell history. Discovery mirrors
// git: starting from the current directory, walk up until a .docq directory
// containing the target database is found, or the filesystem root is reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/docq/internal/store"
)

const (
	// Dir is the directory name for the docq repository.
	Dir = ".docq"
	// DBFile is the default database filename.
	DBFile = "docq.db"
	// HistoryFile holds the interactive shell history.
	HistoryFile = "history"
)

// DBFileName returns the database filename for a given name.
// Empty name returns the default "docq.db".
// A name like "books" returns "docq-books.db".
// A name already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return "docq-" + name + ".db"
}

// ErrNotInitialised is returned when no docq repository is found.
var ErrNotInitialised = errors.New("docq not initialised (run 'docq init')")

// Init initialises a new docq repository.
//
// Init only creates the database; settings are managed by "docq config".
//
// Parameters:
//   - force: reinitialise existing repository
//   - db: database name (empty for default "docq.db")
//   - local: add database to .gitignore (not committed)
//   - dir: target directory (empty for current directory)
func Init(force bool, db string, local bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	docqDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(docqDir, DBFileName(db))

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
	}

	if err := os.MkdirAll(docqDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	// Only the first init writes .gitignore, so local database markers added
	// later survive.
	gitignore := filepath.Join(docqDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# docq - ignore local config and shell history
# Database files (*.db) are the source of truth and should be committed
config.yaml
history
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	if local {
		if err := IgnoreDB(db, docqDir); err != nil {
			return fmt.Errorf("ignore database: %w", err)
		}
	}

	return nil
}

// At returns the database path inside an explicit directory, which may be
// either the .docq directory itself or its parent.
func At(dir, db string) (string, error) {
	candidates := []string{
		filepath.Join(dir, DBFileName(db)),
		filepath.Join(dir, Dir, DBFileName(db)),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: no %s in %s", ErrNotInitialised, DBFileName(db), dir)
}

// Discover walks up the directory tree looking for a .docq database.
// The db parameter specifies which database to find (empty for default).
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, dbFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DiscoverDir finds the .docq directory, walking up the tree.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		docqDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(docqDir); err == nil && info.IsDir() {
			return docqDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo holds database metadata.
type DBInfo struct {
	Name  string `json:"name"`  // Short name (empty for default, "books" for docq-books.db)
	File  string `json:"file"`  // Filename
	Path  string `json:"path"`  // Full path
	Local bool   `json:"local"` // True if gitignored
}

// ListDBs returns all databases in the .docq directory with their status.
// If dir is empty, discovers the .docq directory from the working directory.
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return nil, fmt.Errorf("discover .docq directory: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read .docq directory: %w", err)
	}

	var dbs []DBInfo
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".db") {
			continue
		}

		var name string
		switch {
		case e.Name() == DBFile:
		case strings.HasPrefix(e.Name(), "docq-"):
			name = strings.TrimSuffix(strings.TrimPrefix(e.Name(), "docq-"), ".db")
		default:
			continue
		}

		// An unreadable .gitignore reports the database as shared.
		ignored, _ := IsIgnored(name, dir)
		dbs = append(dbs, DBInfo{
			Name:  name,
			File:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			Local: ignored,
		})
	}

	return dbs, nil
}
