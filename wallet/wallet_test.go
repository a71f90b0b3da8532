package wallet

import (
	"context"
	"testing"

	"github.com/govboard-network/govboard/gov"
	"github.com/govboard-network/govboard/lib"
	"github.com/stretchr/testify/require"
)

func TestNewChainContext(t *testing.T) {
	tests := []struct {
		name       string
		detail     string
		chainId    string
		evmChainId int64
		chainName  string
		prefix     string
		error      lib.ErrorCode
	}{
		{
			name:       "mainnet preset",
			detail:     "the mainnet identifier resolves to its preset",
			chainId:    "cosmos_9001-1",
			evmChainId: 9001,
			chainName:  "mainnet",
			prefix:     "cosmos",
		},
		{
			name:       "testnet preset",
			detail:     "the testnet identifier resolves to its preset",
			chainId:    "cosmos_9002-1",
			evmChainId: 9002,
			chainName:  "testnet",
			prefix:     "cosmos",
		},
		{
			name:       "custom chain",
			detail:     "a well formed unknown identifier derives a custom context with its name as the address prefix",
			chainId:    "local_262144-1",
			evmChainId: 262144,
			chainName:  "custom",
			prefix:     "local",
		},
		{
			name:    "malformed identifier",
			detail:  "an identifier outside the grammar is rejected",
			chainId: "mainnet",
			error:   lib.CodeUnknownChain,
		},
		{
			name:    "zero eip155 id",
			detail:  "the eip155 segment must be a positive number",
			chainId: "cosmos_0-1",
			error:   lib.CodeUnknownChain,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			chain, err := NewChainContext(test.chainId)
			if test.error != 0 {
				require.NotNil(t, err, test.detail)
				require.Equal(t, test.error, err.Code(), test.detail)
				return
			}
			require.Nil(t, err, test.detail)
			require.Equal(t, test.evmChainId, chain.EVMChainId, test.detail)
			require.Equal(t, test.chainName, chain.Name, test.detail)
			require.Equal(t, "aatom", chain.Denom, test.detail)
			require.Equal(t, test.prefix, chain.Bech32Prefix, test.detail)
		})
	}
}

func TestCheckAddress(t *testing.T) {
	tests := []struct {
		name    string
		detail  string
		address string
		error   lib.ErrorCode
	}{
		{
			name:    "valid address",
			detail:  "a well formed bech32 account address passes",
			address: gov.GovAuthority,
		},
		{
			name:   "empty address",
			detail: "an empty signer is its own failure",
			error:  lib.CodeEmptySigner,
		},
		{
			name:    "charset violation",
			detail:  "bech32 excludes the characters b, i, o and 1 from the data part",
			address: "cosmos1bio11111111111111111111111111111111111",
			error:   lib.CodeInvalidBech32,
		},
		{
			name:    "hex address",
			detail:  "an EVM hex address is not a bech32 account address",
			address: "0x4e59b44847b379578588920ca78fbf26c0b4956c",
			error:   lib.CodeInvalidBech32,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := CheckAddress(test.address)
			if test.error != 0 {
				require.NotNil(t, err, test.detail)
				require.Equal(t, test.error, err.Code(), test.detail)
				return
			}
			require.Nil(t, err, test.detail)
		})
	}
}

func TestAddressBook(t *testing.T) {
	book := NewAddressBook()
	// a malformed address never enters the book
	_, err := book.Add("not-an-address", "alice")
	require.NotNil(t, err)
	require.Equal(t, lib.CodeInvalidBech32, err.Code())
	// a valid address is recorded under its nickname
	entry, err := book.Add(gov.GovAuthority, "authority")
	require.Nil(t, err)
	require.Equal(t, "authority", entry.Nickname)
	// the nickname cannot be claimed by a second address
	second := "cosmos1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu"
	_, err = book.Add(second, "authority")
	require.NotNil(t, err)
	require.Equal(t, lib.CodeNicknameExists, err.Code())
	// a blank nickname gets a generated one
	entry, err = book.Add(second, "")
	require.Nil(t, err)
	require.NotEmpty(t, entry.Nickname)
	// lookups by address and nickname agree
	byAddress, err := book.Get(second)
	require.Nil(t, err)
	byNickname, err := book.GetByNickname(entry.Nickname)
	require.Nil(t, err)
	require.Same(t, byAddress, byNickname)
	// delete removes the entry and a second delete fails
	require.Nil(t, book.Delete(second))
	err = book.Delete(second)
	require.NotNil(t, err)
	require.Equal(t, lib.CodeUnknownAddress, err.Code())
}

func TestAddressBookFileRoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	book := NewAddressBook()
	_, err := book.Add(gov.GovAuthority, "authority")
	require.Nil(t, err)
	require.Nil(t, book.SaveToFile(dataDir))
	reloaded, err := NewAddressBookFromFile(dataDir)
	require.Nil(t, err)
	entry, err := reloaded.Get(gov.GovAuthority)
	require.Nil(t, err)
	require.Equal(t, "authority", entry.Nickname)
	// a missing file yields an empty book, not an error
	fresh, err := NewAddressBookFromFile(t.TempDir())
	require.Nil(t, err)
	require.Empty(t, fresh.List())
}

func TestBroadcast(t *testing.T) {
	chain, err := NewChainContext("cosmos_9001-1")
	require.Nil(t, err)
	message, err := gov.BuildToggleConversion("aatom")
	require.Nil(t, err)
	tests := []struct {
		name        string
		detail      string
		broadcaster *MockBroadcaster
		status      TxStatus
		error       lib.ErrorCode
	}{
		{
			name:        "accepted after transient failures",
			detail:      "the broadcaster retries past transient endpoint failures",
			broadcaster: NewMockBroadcaster(lib.NewNullLogger(), 2),
			status:      TxStatusSubmitted,
		},
		{
			name:        "permanent rejection",
			detail:      "a permanent rejection marks the envelope failed without retrying",
			broadcaster: NewRejectingBroadcaster(lib.NewNullLogger()),
			status:      TxStatusFailed,
			error:       lib.CodeBroadcastRejected,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tx, err := NewTransaction(chain, gov.GovAuthority, []*gov.GovernanceMessage{message}, "memo", "5000")
			require.Nil(t, err, test.detail)
			require.Equal(t, TxStatusPending, tx.Status, test.detail)
			err = test.broadcaster.Broadcast(context.Background(), tx)
			if test.error != 0 {
				require.NotNil(t, err, test.detail)
				require.Equal(t, test.error, err.Code(), test.detail)
			} else {
				require.Nil(t, err, test.detail)
				accepted, found := test.broadcaster.Accepted(tx.Hash.String())
				require.True(t, found, test.detail)
				require.Same(t, tx, accepted, test.detail)
			}
			require.Equal(t, test.status, tx.Status, test.detail)
		})
	}
}

func TestTransactionHashStable(t *testing.T) {
	chain, err := NewChainContext("cosmos_9001-1")
	require.Nil(t, err)
	message, err := gov.BuildToggleConversion("aatom")
	require.Nil(t, err)
	first, err := NewTransaction(chain, gov.GovAuthority, []*gov.GovernanceMessage{message}, "memo", "5000")
	require.Nil(t, err)
	second, err := NewTransaction(chain, gov.GovAuthority, []*gov.GovernanceMessage{message}, "memo", "5000")
	require.Nil(t, err)
	// the hash covers content only, not status or assembly time
	require.Equal(t, first.Hash, second.Hash)
	// an envelope with no messages never assembles
	_, err = NewTransaction(chain, gov.GovAuthority, nil, "", "")
	require.NotNil(t, err)
	require.Equal(t, lib.CodeBroadcastRejected, err.Code())
	// a well formed address from another network never signs for this chain
	_, err = NewTransaction(chain, "osmo1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu",
		[]*gov.GovernanceMessage{message}, "", "")
	require.NotNil(t, err)
	require.Equal(t, lib.CodeWrongBech32Prefix, err.Code())
}

func TestFallbackNickname(t *testing.T) {
	book := NewAddressBook()
	address := "cosmos1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu"
	// without a dictionary the nickname derives from the address tail
	first := book.fallbackNickname(address)
	require.Equal(t, "signer-lzv7xu", first)
	// a collision appends a counter until the name is free
	entry, err := book.Add(address, first)
	require.Nil(t, err)
	require.Equal(t, first, entry.Nickname)
	require.Equal(t, "signer-lzv7xu-2", book.fallbackNickname(address))
}
