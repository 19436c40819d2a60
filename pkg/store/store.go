// Package store is an optional, host-side persistent snapshot store for Gambit Chess
// games, backed by BadgerDB -- it is never imported by pkg/engine itself (the core stays
// free of any persistence dependency; SPEC_FULL.md's "persistence is an external
// collaborator" design). A host (e.g. cmd/gambit) uses it to save/load the opaque byte
// string pkg/engine.SaveState/LoadState produce, keyed by game ID.
package store

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Store wraps a BadgerDB instance holding one key per game ID.
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) a Badger store rooted at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open %v: %w", dir, err)
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

func gameKey(gameID string) []byte {
	return []byte("game:" + gameID)
}

// SaveSnapshot writes a game's saved engine state under gameID, overwriting any prior
// snapshot for that ID.
func (s *Store) SaveSnapshot(gameID string, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(gameID), data)
	})
}

// LoadSnapshot reads back the bytes saved by SaveSnapshot for gameID. ok is false iff no
// snapshot exists for that ID.
func (s *Store) LoadSnapshot(gameID string) (data []byte, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get(gameKey(gameID))
		if getErr == badger.ErrKeyNotFound {
			return nil
		}
		if getErr != nil {
			return getErr
		}
		ok = true
		return item.Value(func(val []byte) error {
			data = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("store: load %v: %w", gameID, err)
	}
	return data, ok, nil
}

// DeleteSnapshot removes gameID's saved state, if present.
func (s *Store) DeleteSnapshot(gameID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(gameKey(gameID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}
