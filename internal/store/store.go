// Package store provides an on-disk cache of completed search.Run results,
// keyed by Zobrist hash and search depth, so a CLI invocation analyzing the
// same FEN twice doesn't re-search. This sits entirely outside the search
// package — it is invoked only by the CLI before starting or after
// finishing a run — and is explicitly not a search-time transposition
// table; see SPEC_FULL.md's Domain Stack for that scope boundary.
package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dgraph-io/badger/v4"
)

const appName = "halcyonchess"

// dataDir returns the platform-specific data directory for the application.
func dataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")
	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}
	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dir := filepath.Join(baseDir, appName, "cache")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Entry is a cached search result: the best move (UCI notation), its score,
// and the depth it was searched to.
type Entry struct {
	BestMove string `json:"best_move"`
	Score    int    `json:"score"`
	Depth    int    `json:"depth"`
}

// Store wraps a BadgerDB instance caching Entry values by Zobrist hash and
// depth.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) the on-disk cache at the default
// per-platform data directory.
func Open() (*Store, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dir)
}

// OpenAt opens (creating if necessary) the on-disk cache at dir. Exposed
// separately from Open so tests can point it at a temporary directory
// instead of the real per-platform data directory.
func OpenAt(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func cacheKey(hash uint64, depth int) []byte {
	key := make([]byte, 10)
	binary.BigEndian.PutUint64(key[:8], hash)
	key[8] = byte(depth >> 8)
	key[9] = byte(depth)
	return key
}

// Get looks up a cached result for the exact (hash, depth) pair. The
// second return value is false on a cache miss.
func (s *Store) Get(hash uint64, depth int) (Entry, bool, error) {
	var entry Entry
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(hash, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})

	return entry, found, err
}

// Put stores (or overwrites) a cached result for (hash, depth).
func (s *Store) Put(hash uint64, depth int, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey(hash, depth), data)
	})
}

// String renders the store's backing directory, useful for CLI diagnostics.
func (s *Store) String() string {
	if s.db == nil {
		return "store(closed)"
	}
	return fmt.Sprintf("store(%s)", s.db.Opts().Dir)
}
