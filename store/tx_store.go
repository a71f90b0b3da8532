package store

import (
	"encoding/binary"
	"sync"

	"github.com/govboard-network/govboard/lib"
	"github.com/govboard-network/govboard/wallet"
)

/*
	This file implements the transaction history: every assembled envelope is recorded
	under a monotonic sequence number so pages come back in submission order, with a
	hash index for point lookups and in-place status updates.
*/

var (
	txKeyPrefix   = []byte("t/")     // sequence keyed envelope records
	hashKeyPrefix = []byte("h/")     // hash to sequence index
	sequenceKey   = []byte("s/next") // the last assigned sequence number
)

// TxPageType names the transaction page for generic page unmarshalling
const TxPageType = "tx-page"

func init() {
	lib.RegisteredPageables[TxPageType] = new(TxResults)
}

// TxResults is the pageable list of transaction envelopes
type TxResults []*wallet.Transaction

// New() satisfies the lib.Pageable contract
func (t *TxResults) New() lib.Pageable { return new(TxResults) }

// TxStore records transaction envelopes over a key value store
type TxStore struct {
	l     sync.Mutex  // guards the sequence counter across concurrent saves
	store lib.StoreI  // the backing key value store
	log   lib.LoggerI // the logger for store events
}

// NewTxStore() creates a transaction history over a key value store
func NewTxStore(store lib.StoreI, log lib.LoggerI) *TxStore {
	return &TxStore{store: store, log: log}
}

// Save() records an envelope, assigning a sequence number on first sight
// a re-save under the same hash overwrites in place, preserving history order
func (t *TxStore) Save(tx *wallet.Transaction) lib.ErrorI {
	t.l.Lock()
	defer t.l.Unlock()
	hashKey := append(hashKeyPrefix, []byte(tx.Hash.String())...)
	sequence, err := t.store.Get(hashKey)
	if err != nil {
		return err
	}
	if sequence == nil {
		next, e := t.nextSequence()
		if e != nil {
			return e
		}
		sequence = formatSequence(next)
		if e = t.store.Set(hashKey, sequence); e != nil {
			return e
		}
	}
	bz, err := lib.MarshalJSON(tx)
	if err != nil {
		return err
	}
	return t.store.Set(append(txKeyPrefix, sequence...), bz)
}

// GetByHash() returns the envelope recorded under a hash
func (t *TxStore) GetByHash(hash string) (*wallet.Transaction, lib.ErrorI) {
	sequence, err := t.store.Get(append(hashKeyPrefix, []byte(hash)...))
	if err != nil {
		return nil, err
	}
	if sequence == nil {
		return nil, ErrUnknownTx(hash)
	}
	bz, err := t.store.Get(append(txKeyPrefix, sequence...))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, ErrUnknownTx(hash)
	}
	tx := new(wallet.Transaction)
	if err = lib.UnmarshalJSON(bz, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// SetStatus() updates the lifecycle state of a recorded envelope in place
func (t *TxStore) SetStatus(hash string, status wallet.TxStatus) lib.ErrorI {
	tx, err := t.GetByHash(hash)
	if err != nil {
		return err
	}
	tx.Status = status
	return t.Save(tx)
}

// GetPage() returns a page of envelopes, newest first when reverse is set
func (t *TxStore) GetPage(p lib.PageParams, reverse bool) (*lib.Page, lib.ErrorI) {
	page, results := lib.NewPage(p, TxPageType), new(TxResults)
	err := page.Load(txKeyPrefix, reverse, results, t.store, func(_, value []byte) lib.ErrorI {
		tx := new(wallet.Transaction)
		if e := lib.UnmarshalJSON(value, tx); e != nil {
			return e
		}
		*results = append(*results, tx)
		return nil
	})
	return page, err
}

// nextSequence() increments and persists the sequence counter
func (t *TxStore) nextSequence() (uint64, lib.ErrorI) {
	bz, err := t.store.Get(sequenceKey)
	if err != nil {
		return 0, err
	}
	var last uint64
	if len(bz) == 8 {
		last = binary.BigEndian.Uint64(bz)
	}
	next := last + 1
	if err = t.store.Set(sequenceKey, formatSequence(next)); err != nil {
		return 0, err
	}
	return next, nil
}

// formatSequence() encodes a sequence number big endian so that lexical key
// order matches numeric order under the transaction prefix
func formatSequence(sequence uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, sequence)
	return bz
}
