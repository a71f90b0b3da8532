package store

import (
	"fmt"
	"testing"

	"github.com/govboard-network/govboard/gov"
	"github.com/govboard-network/govboard/lib"
	"github.com/govboard-network/govboard/wallet"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	s, err := NewInMemory(lib.NewNullLogger())
	require.Nil(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreCRUD(t *testing.T) {
	s := testStore(t)
	// a missing key reads as nil, not an error
	value, err := s.Get([]byte("absent"))
	require.Nil(t, err)
	require.Nil(t, value)
	// set then get round trips
	require.Nil(t, s.Set([]byte("k"), []byte("v")))
	value, err = s.Get([]byte("k"))
	require.Nil(t, err)
	require.Equal(t, []byte("v"), value)
	// delete removes the key
	require.Nil(t, s.Delete([]byte("k")))
	value, err = s.Get([]byte("k"))
	require.Nil(t, err)
	require.Nil(t, value)
}

func TestStoreIteration(t *testing.T) {
	s := testStore(t)
	for i := 0; i < 5; i++ {
		require.Nil(t, s.Set([]byte(fmt.Sprintf("p/%d", i)), []byte(fmt.Sprintf("v%d", i))))
	}
	// a key outside the prefix never shows up
	require.Nil(t, s.Set([]byte("q/9"), []byte("other")))
	// forward iteration is lowest to highest
	it, err := s.Iterator([]byte("p/"))
	require.Nil(t, err)
	var keys []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	it.Close()
	require.Equal(t, []string{"p/0", "p/1", "p/2", "p/3", "p/4"}, keys)
	// reverse iteration is highest to lowest
	rit, err := s.RevIterator([]byte("p/"))
	require.Nil(t, err)
	keys = nil
	for ; rit.Valid(); rit.Next() {
		keys = append(keys, string(rit.Key()))
	}
	rit.Close()
	require.Equal(t, []string{"p/4", "p/3", "p/2", "p/1", "p/0"}, keys)
}

func newTestTx(t *testing.T, memo string) *wallet.Transaction {
	chain, err := wallet.NewChainContext("cosmos_9001-1")
	require.Nil(t, err)
	message, err := gov.BuildToggleConversion("aatom")
	require.Nil(t, err)
	tx, err := wallet.NewTransaction(chain, gov.GovAuthority, []*gov.GovernanceMessage{message}, memo, "5000")
	require.Nil(t, err)
	return tx
}

func TestTxStoreSaveAndGet(t *testing.T) {
	txStore := NewTxStore(testStore(t), lib.NewNullLogger())
	tx := newTestTx(t, "first")
	require.Nil(t, txStore.Save(tx))
	// point lookup by hash round trips
	got, err := txStore.GetByHash(tx.Hash.String())
	require.Nil(t, err)
	require.Equal(t, tx.Hash, got.Hash)
	require.Equal(t, tx.Memo, got.Memo)
	require.Equal(t, wallet.TxStatusPending, got.Status)
	// an unknown hash fails
	_, err = txStore.GetByHash("deadbeef")
	require.NotNil(t, err)
	require.Equal(t, lib.CodeUnknownTx, err.Code())
}

func TestTxStoreSetStatus(t *testing.T) {
	txStore := NewTxStore(testStore(t), lib.NewNullLogger())
	first, second := newTestTx(t, "first"), newTestTx(t, "second")
	require.Nil(t, txStore.Save(first))
	require.Nil(t, txStore.Save(second))
	// a status update rewrites in place without changing history order
	require.Nil(t, txStore.SetStatus(first.Hash.String(), wallet.TxStatusSubmitted))
	got, err := txStore.GetByHash(first.Hash.String())
	require.Nil(t, err)
	require.Equal(t, wallet.TxStatusSubmitted, got.Status)
	page, err := txStore.GetPage(lib.PageParams{}, false)
	require.Nil(t, err)
	results := *page.Results.(*TxResults)
	require.Len(t, results, 2)
	require.Equal(t, first.Hash, results[0].Hash)
	require.Equal(t, second.Hash, results[1].Hash)
}

func TestTxStorePagination(t *testing.T) {
	txStore := NewTxStore(testStore(t), lib.NewNullLogger())
	hashes := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		tx := newTestTx(t, fmt.Sprintf("memo-%d", i))
		require.Nil(t, txStore.Save(tx))
		hashes = append(hashes, tx.Hash.String())
	}
	// first page of two, newest first
	page, err := txStore.GetPage(lib.PageParams{PageNumber: 1, PerPage: 2}, true)
	require.Nil(t, err)
	require.Equal(t, 5, page.TotalCount)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, 2, page.Count)
	results := *page.Results.(*TxResults)
	require.Equal(t, hashes[4], results[0].Hash.String())
	require.Equal(t, hashes[3], results[1].Hash.String())
	// the last page holds the oldest envelope
	page, err = txStore.GetPage(lib.PageParams{PageNumber: 3, PerPage: 2}, true)
	require.Nil(t, err)
	require.Equal(t, 1, page.Count)
	results = *page.Results.(*TxResults)
	require.Equal(t, hashes[0], results[0].Hash.String())
}
