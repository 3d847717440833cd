// Package registry keeps a per-user record of the repositories created with
// "nexus init", stored in a bbolt database.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const (
	bucketEntries = "entries" // key: ID -> Entry JSON
	bucketPaths   = "paths"   // key: worktree -> ID
)

// ErrNotFound is returned when no entry matches a worktree.
var ErrNotFound = errors.New("repository not registered")

// Entry is one registered repository.
type Entry struct {
	// ID is the unique identifier of the entry
	ID string `json:"id"`

	// Worktree is the absolute worktree path
	Worktree string `json:"worktree"`

	// CreatedAt is when the entry was recorded
	CreatedAt time.Time `json:"created_at"`
}

// Registry is a bbolt backed set of entries keyed by worktree.
type Registry struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the registry database at path.
func Open(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open registry %s: %w", path, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucketEntries)); err != nil {
			return err
		}

		if _, err := tx.CreateBucketIfNotExists([]byte(bucketPaths)); err != nil {
			return err
		}

		return nil
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Registry{db: db}, nil
}

// Close releases the database file.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Add records worktree and returns its entry. Adding a worktree that is
// already registered returns the existing entry unchanged.
func (r *Registry) Add(worktree string) (Entry, error) {
	var entry Entry

	err := r.db.Update(func(tx *bbolt.Tx) error {
		var (
			entries = tx.Bucket([]byte(bucketEntries))
			paths   = tx.Bucket([]byte(bucketPaths))
		)

		if id := paths.Get([]byte(worktree)); id != nil {
			return json.Unmarshal(entries.Get(id), &entry)
		}

		entry = Entry{
			ID:        uuid.New().String(),
			Worktree:  worktree,
			CreatedAt: time.Now().UTC(),
		}

		data, err := json.Marshal(&entry)
		if err != nil {
			return err
		}

		if err := entries.Put([]byte(entry.ID), data); err != nil {
			return err
		}

		return paths.Put([]byte(worktree), []byte(entry.ID))
	})

	return entry, err
}

// Get returns the entry for worktree.
func (r *Registry) Get(worktree string) (Entry, error) {
	var entry Entry

	err := r.db.View(func(tx *bbolt.Tx) error {
		id := tx.Bucket([]byte(bucketPaths)).Get([]byte(worktree))
		if id == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, worktree)
		}

		return json.Unmarshal(tx.Bucket([]byte(bucketEntries)).Get(id), &entry)
	})

	return entry, err
}

// List returns all entries ordered by worktree.
func (r *Registry) List() ([]Entry, error) {
	var out []Entry

	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketEntries)).ForEach(func(_, v []byte) error {
			var e Entry

			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}

			out = append(out, e)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Worktree < out[j].Worktree })

	return out, nil
}

// Remove deletes the entry for worktree.
func (r *Registry) Remove(worktree string) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		paths := tx.Bucket([]byte(bucketPaths))

		id := paths.Get([]byte(worktree))
		if id == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, worktree)
		}

		if err := tx.Bucket([]byte(bucketEntries)).Delete(id); err != nil {
			return err
		}

		return paths.Delete([]byte(worktree))
	})
}
