package store

import (
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/govboard-network/govboard/lib"
)

/*
	This file implements the key value store on badger. The store exposes the narrow
	lib.StoreI contract so the rest of the backend never touches badger directly, and
	an in-memory mode backs the test suite and throwaway sessions.
*/

var _ lib.StoreI = &Store{}

// Store is a badger backed implementation of lib.StoreI
type Store struct {
	db  *badger.DB  // the underlying badger database
	log lib.LoggerI // the logger for store events
}

// New() opens the database under the configured data directory
func New(config lib.Config, log lib.LoggerI) (*Store, lib.ErrorI) {
	if config.InMemory {
		return NewInMemory(log)
	}
	path := filepath.Join(config.DataDirPath, config.DBName)
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, ErrOpenDB(err)
	}
	log.Infof("opened database at %s", path)
	return &Store{db: db, log: log}, nil
}

// NewInMemory() opens a throwaway database that never touches disk
func NewInMemory(log lib.LoggerI) (*Store, lib.ErrorI) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, ErrOpenDB(err)
	}
	return &Store{db: db, log: log}, nil
}

// Get() returns the value for a key, nil when absent
func (s *Store) Get(key []byte) (value []byte, e lib.ErrorI) {
	if err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	}); err != nil {
		return nil, ErrStoreGet(err)
	}
	return
}

// Set() upserts a key value pair
func (s *Store) Set(key, value []byte) lib.ErrorI {
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	}); err != nil {
		return ErrStoreSet(err)
	}
	return nil
}

// Delete() removes a key value pair
func (s *Store) Delete(key []byte) lib.ErrorI {
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	}); err != nil {
		return ErrStoreDelete(err)
	}
	return nil
}

// Iterator() iterates a key prefix from lowest to highest
func (s *Store) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	return s.newIterator(prefix, false), nil
}

// RevIterator() iterates a key prefix from highest to lowest
func (s *Store) RevIterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	return s.newIterator(prefix, true), nil
}

// Close() releases the underlying database
func (s *Store) Close() lib.ErrorI {
	if err := s.db.Close(); err != nil {
		return ErrCloseDB(err)
	}
	return nil
}

// newIterator() opens a read transaction scoped to the iterator lifetime
func (s *Store) newIterator(prefix []byte, reverse bool) *Iterator {
	txn := s.db.NewTransaction(false)
	options := badger.DefaultIteratorOptions
	options.Prefix, options.Reverse = prefix, reverse
	it := txn.NewIterator(options)
	if reverse {
		// in reverse mode the seek target is just past the end of the prefix range
		it.Seek(prefixEnd(prefix))
	} else {
		it.Rewind()
	}
	return &Iterator{txn: txn, it: it}
}

// prefixEnd() returns the smallest key greater than every key under the prefix
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix), len(prefix)+1)
	copy(end, prefix)
	return append(end, 0xff)
}

var _ lib.IteratorI = &Iterator{}

// Iterator is a badger iterator bound to its own read transaction
type Iterator struct {
	txn *badger.Txn
	it  *badger.Iterator
}

// Valid() reports whether the iterator points at a key under the prefix
func (i *Iterator) Valid() bool { return i.it.Valid() }

// Next() advances the iterator
func (i *Iterator) Next() { i.it.Next() }

// Key() returns a copy of the current key
func (i *Iterator) Key() []byte { return i.it.Item().KeyCopy(nil) }

// Value() returns a copy of the current value
func (i *Iterator) Value() []byte {
	value, err := i.it.Item().ValueCopy(nil)
	if err != nil {
		return nil
	}
	return value
}

// Close() releases the iterator and its read transaction
func (i *Iterator) Close() {
	i.it.Close()
	i.txn.Discard()
}
