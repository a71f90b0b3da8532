package lib

// RStoreI is the read-only interface of the key value store
type RStoreI interface {
	// Get() returns the value for a key or nil when absent
	Get(key []byte) ([]byte, ErrorI)
	// Iterator() iterates over a key prefix from lowest to highest
	Iterator(prefix []byte) (IteratorI, ErrorI)
	// RevIterator() iterates over a key prefix from highest to lowest
	RevIterator(prefix []byte) (IteratorI, ErrorI)
}

// WStoreI is the write interface of the key value store
type WStoreI interface {
	// Set() upserts a key value pair
	Set(key, value []byte) ErrorI
	// Delete() removes a key value pair
	Delete(key []byte) ErrorI
}

// StoreI is the full key value store contract
type StoreI interface {
	RStoreI
	WStoreI
	// Close() releases the underlying database
	Close() ErrorI
}

// IteratorI is the key value iteration contract
type IteratorI interface {
	Valid() bool
	Next()
	Key() []byte
	Value() []byte
	Close()
}
