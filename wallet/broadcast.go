package wallet

import (
	"context"
	"crypto/sha256"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/govboard-network/govboard/gov"
	"github.com/govboard-network/govboard/lib"
)

/*
	This file implements transaction assembly and the broadcaster contract. The
	dashboard never signs: it assembles an unsigned transaction envelope, hands it to
	a broadcaster and tracks the outcome. The in-memory broadcaster below stands in
	for a chain RPC endpoint and is what the test suite and headless mode run against.
*/

// TxStatus is the lifecycle state of an assembled transaction
type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"   // assembled, not yet accepted anywhere
	TxStatusSubmitted TxStatus = "submitted" // accepted by the broadcaster
	TxStatusFailed    TxStatus = "failed"    // rejected after retries were exhausted
)

// Transaction is an unsigned governance transaction envelope
type Transaction struct {
	Hash     lib.HexBytes             `json:"hash"`     // content hash identifying the envelope
	ChainId  string                   `json:"chainId"`  // the target network
	Signer   string                   `json:"signer"`   // the proposing account address
	Messages []*gov.GovernanceMessage `json:"messages"` // the governance messages to submit
	Memo     string                   `json:"memo"`     // free text carried with the proposal
	Fee      string                   `json:"fee"`      // the fee in the minimal denom
	Status   TxStatus                 `json:"status"`   // current lifecycle state
	Time     time.Time                `json:"time"`     // assembly time
}

// NewTransaction() assembles and content addresses an unsigned transaction envelope
func NewTransaction(chain *ChainContext, signer string, messages []*gov.GovernanceMessage, memo, fee string) (*Transaction, lib.ErrorI) {
	if err := chain.CheckAddress(signer); err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, ErrEmptyTransaction()
	}
	tx := &Transaction{
		ChainId:  chain.ChainId,
		Signer:   signer,
		Messages: messages,
		Memo:     memo,
		Fee:      fee,
		Status:   TxStatusPending,
		Time:     time.Now().UTC(),
	}
	hash, err := tx.computeHash()
	if err != nil {
		return nil, err
	}
	tx.Hash = hash
	return tx, nil
}

// computeHash() hashes the canonical json of the envelope content fields
// status and time are excluded so the hash is stable across the lifecycle
func (tx *Transaction) computeHash() (lib.HexBytes, lib.ErrorI) {
	bz, err := lib.MarshalJSON(struct {
		ChainId  string                   `json:"chainId"`
		Signer   string                   `json:"signer"`
		Messages []*gov.GovernanceMessage `json:"messages"`
		Memo     string                   `json:"memo"`
		Fee      string                   `json:"fee"`
	}{tx.ChainId, tx.Signer, tx.Messages, tx.Memo, tx.Fee})
	if err != nil {
		return nil, err
	}
	hash := sha256.Sum256(bz)
	return hash[:], nil
}

// BroadcasterI is the submission contract the dashboard depends on
type BroadcasterI interface {
	// Broadcast() submits the envelope, mutating its status to reflect the outcome
	Broadcast(ctx context.Context, tx *Transaction) lib.ErrorI
}

// MockBroadcaster simulates a chain RPC endpoint with configurable transient failures
type MockBroadcaster struct {
	l            sync.Mutex
	log          lib.LoggerI
	failuresLeft int                      // transient failures to serve before accepting
	rejectAll    bool                     // permanently reject every envelope
	accepted     map[string]*Transaction  // envelopes accepted, keyed by hash
}

// NewMockBroadcaster() creates a broadcaster that accepts after failures transient errors
func NewMockBroadcaster(log lib.LoggerI, failures int) *MockBroadcaster {
	return &MockBroadcaster{log: log, failuresLeft: failures, accepted: make(map[string]*Transaction)}
}

// NewRejectingBroadcaster() creates a broadcaster that rejects everything
func NewRejectingBroadcaster(log lib.LoggerI) *MockBroadcaster {
	return &MockBroadcaster{log: log, rejectAll: true, accepted: make(map[string]*Transaction)}
}

// Broadcast() submits with exponential backoff around transient failures
func (m *MockBroadcaster) Broadcast(ctx context.Context, tx *Transaction) lib.ErrorI {
	retry := backoff.WithContext(backoff.WithMaxRetries(newFastBackoff(), 5), ctx)
	if err := backoff.Retry(func() error {
		return m.attempt(tx)
	}, retry); err != nil {
		tx.Status = TxStatusFailed
		m.log.Errorf("broadcast of %s failed: %s", tx.Hash.String(), err.Error())
		return ErrBroadcastRejected(err.Error())
	}
	tx.Status = TxStatusSubmitted
	m.log.Infof("broadcast of %s accepted", tx.Hash.String())
	return nil
}

// Accepted() returns the accepted envelope for a hash, if any
func (m *MockBroadcaster) Accepted(hash string) (*Transaction, bool) {
	m.l.Lock()
	defer m.l.Unlock()
	tx, found := m.accepted[hash]
	return tx, found
}

// attempt() serves one simulated submission
func (m *MockBroadcaster) attempt(tx *Transaction) error {
	m.l.Lock()
	defer m.l.Unlock()
	if m.rejectAll {
		return backoff.Permanent(ErrBroadcastRejected("endpoint refused the envelope"))
	}
	if m.failuresLeft > 0 {
		m.failuresLeft--
		return ErrBroadcastRejected("endpoint temporarily unavailable")
	}
	m.accepted[tx.Hash.String()] = tx
	return nil
}

// newFastBackoff() builds an exponential backoff tuned for an in-memory endpoint
func newFastBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 50 * time.Millisecond
	return b
}
