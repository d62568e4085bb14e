package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"

	sqliteFileName = "taskdeck.sqlite"
	kvDirName      = "kv"
)

// Store is a taskdeck data directory.
type Store struct {
	Dir string
	// Backend is sqlite|json. Empty means auto-detect from the directory contents.
	Backend string
}

func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".taskdeck")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir is a project-local .taskdeck directory when one exists above the
// working directory, else the per-user data directory.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "data"), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

// ResolveBackend returns the backend to use: the explicit one, else whatever
// already exists on disk, else sqlite.
func (s Store) ResolveBackend() (string, error) {
	switch b := strings.ToLower(strings.TrimSpace(s.Backend)); b {
	case BackendSQLite, BackendJSON:
		return b, nil
	case "", "auto":
	default:
		return "", fmt.Errorf("unknown backend: %q (expected sqlite|json)", s.Backend)
	}
	if _, err := os.Stat(filepath.Join(s.Dir, sqliteFileName)); err == nil {
		return BackendSQLite, nil
	}
	if st, err := os.Stat(filepath.Join(s.Dir, kvDirName)); err == nil && st.IsDir() {
		return BackendJSON, nil
	}
	return BackendSQLite, nil
}

// Open opens the key-value backend for this store. Callers must Close it.
func (s Store) Open(ctx context.Context) (KV, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	backend, err := s.ResolveBackend()
	if err != nil {
		return nil, err
	}
	switch backend {
	case BackendJSON:
		return OpenFileKV(filepath.Join(s.Dir, kvDirName))
	default:
		return OpenSQLiteKV(ctx, filepath.Join(s.Dir, sqliteFileName))
	}
}

// WatchPaths lists the files whose modification time changes when another
// process writes to this store.
func (s Store) WatchPaths() []string {
	db := filepath.Join(s.Dir, sqliteFileName)
	return []string{db, db + "-wal", filepath.Join(s.Dir, kvDirName)}
}
