// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

// Package likes persists the user's liked media files in BadgerDB.
//
// Likes are ordered by insertion: each like is assigned a monotonic sequence
// number at creation, and listing iterates sequence keys in key order. A
// secondary path index supports O(1) duplicate checks and removals.
package likes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/lumiere/internal/metrics"
)

// Key prefixes for BadgerDB storage
const (
	likeKeyPrefix     = "like:"
	likePathKeyPrefix = "like_path:"
	seqCounterKey     = "like_seq"
)

// ErrNotLiked is returned when removing a path that was never liked.
var ErrNotLiked = errors.New("path is not liked")

// Entry is one liked file.
type Entry struct {
	Path    string    `json:"path"`
	LikedAt time.Time `json:"liked_at"`
}

// Store is a BadgerDB-backed likes store. Safe for concurrent use; Badger
// transactions provide the isolation.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the likes database at dir and returns a store
// over it. The caller owns the store and must Close it.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithCompactL0OnClose(true)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open likes database at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an already-open Badger database. Used by tests that manage
// the database lifecycle themselves.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database still accepts transactions. Used by the
// readiness probe.
func (s *Store) Ping() error {
	return s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(seqCounterKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // empty store is healthy
		}
		return err
	})
}

// Add records a like for the given media path. Adding an already-liked path
// is a no-op: the original position and timestamp are preserved.
func (s *Store) Add(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	metrics.LikesOperations.WithLabelValues("add").Inc()

	return s.db.Update(func(txn *badger.Txn) error {
		pathKey := []byte(likePathKeyPrefix + path)
		if _, err := txn.Get(pathKey); err == nil {
			return nil // already liked
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check existing like: %w", err)
		}

		seq, err := nextSequence(txn)
		if err != nil {
			return err
		}

		entry := Entry{Path: path, LikedAt: time.Now().UTC()}
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal like entry: %w", err)
		}

		seqKey := sequenceKey(seq)
		if err := txn.Set(seqKey, data); err != nil {
			return fmt.Errorf("set like entry: %w", err)
		}
		if err := txn.Set(pathKey, seqKey); err != nil {
			return fmt.Errorf("set path index: %w", err)
		}
		return nil
	})
}

// Remove deletes a like. Returns ErrNotLiked when the path has no like.
func (s *Store) Remove(ctx context.Context, path string) error {
	metrics.LikesOperations.WithLabelValues("remove").Inc()

	return s.db.Update(func(txn *badger.Txn) error {
		pathKey := []byte(likePathKeyPrefix + path)
		item, err := txn.Get(pathKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotLiked
		}
		if err != nil {
			return fmt.Errorf("get path index: %w", err)
		}

		seqKey, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read path index: %w", err)
		}

		if err := txn.Delete(seqKey); err != nil {
			return fmt.Errorf("delete like entry: %w", err)
		}
		if err := txn.Delete(pathKey); err != nil {
			return fmt.Errorf("delete path index: %w", err)
		}
		return nil
	})
}

// Contains reports whether the path is currently liked.
func (s *Store) Contains(ctx context.Context, path string) (bool, error) {
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(likePathKeyPrefix + path))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return found, nil
}

// List returns all liked files in insertion order (oldest first).
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	metrics.LikesOperations.WithLabelValues("list").Inc()

	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(likeKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var entry Entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return fmt.Errorf("decode like entry: %w", err)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// RunGC runs one Badger value-log garbage collection cycle. Badger returns
// ErrNoRewrite when nothing was reclaimed; that is not an error here.
func (s *Store) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return fmt.Errorf("badger value log GC: %w", err)
	}
	return nil
}

// sequenceKey builds a lexicographically sortable key from a sequence number.
// Zero-padding to 20 digits keeps key order identical to numeric order for
// the full uint64 range.
func sequenceKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", likeKeyPrefix, seq))
}

// nextSequence increments and returns the monotonic like counter within txn.
func nextSequence(txn *badger.Txn) (uint64, error) {
	var seq uint64

	item, err := txn.Get([]byte(seqCounterKey))
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		seq = 1
	case err != nil:
		return 0, fmt.Errorf("get sequence counter: %w", err)
	default:
		val, err := item.ValueCopy(nil)
		if err != nil {
			return 0, fmt.Errorf("read sequence counter: %w", err)
		}
		var prev uint64
		if _, err := fmt.Sscanf(string(val), "%d", &prev); err != nil {
			return 0, fmt.Errorf("parse sequence counter %q: %w", val, err)
		}
		seq = prev + 1
	}

	if err := txn.Set([]byte(seqCounterKey), []byte(fmt.Sprintf("%d", seq))); err != nil {
		return 0, fmt.Errorf("set sequence counter: %w", err)
	}
	return seq, nil
}
