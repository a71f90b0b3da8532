package wallet

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/govboard-network/govboard/lib"
	"github.com/tjarratt/babble"
)

/*
	This file implements the address book: named signer addresses persisted alongside
	the rest of the session state. Entries get a generated nickname when the caller
	does not provide one, so a book is always addressable by human readable names.
*/

// AddressBookEntry is a single named signer address
type AddressBookEntry struct {
	Address  string    `json:"address"`  // the bech32 account address
	Nickname string    `json:"nickname"` // the unique human name
	AddedAt  time.Time `json:"addedAt"`  // time the entry was created
}

// AddressBook is the persistent collection of named signer addresses
type AddressBook struct {
	l         sync.RWMutex
	ByAddress map[string]*AddressBookEntry `json:"byAddress"`
}

// NewAddressBook() creates an empty address book
func NewAddressBook() *AddressBook {
	return &AddressBook{ByAddress: make(map[string]*AddressBookEntry)}
}

// NewAddressBookFromFile() loads the address book from the data directory,
// starting empty when no file exists yet
func NewAddressBookFromFile(dataDirPath string) (*AddressBook, lib.ErrorI) {
	book := NewAddressBook()
	if err := lib.NewJSONFromFile(book, dataDirPath, lib.AddressBookFilePath); err != nil {
		return NewAddressBook(), nil
	}
	if book.ByAddress == nil {
		book.ByAddress = make(map[string]*AddressBookEntry)
	}
	return book, nil
}

// SaveToFile() persists the address book to the data directory
func (b *AddressBook) SaveToFile(dataDirPath string) lib.ErrorI {
	b.l.RLock()
	defer b.l.RUnlock()
	return lib.SaveJSONToFile(b, dataDirPath, lib.AddressBookFilePath)
}

// Add() records an address under a nickname, generating one when absent
func (b *AddressBook) Add(address, nickname string) (*AddressBookEntry, lib.ErrorI) {
	if err := CheckAddress(address); err != nil {
		return nil, err
	}
	b.l.Lock()
	defer b.l.Unlock()
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = b.generateNickname(address)
	}
	for _, entry := range b.ByAddress {
		if entry.Nickname == nickname && entry.Address != address {
			return nil, ErrNicknameExists(nickname)
		}
	}
	entry := &AddressBookEntry{Address: address, Nickname: nickname, AddedAt: time.Now().UTC()}
	b.ByAddress[address] = entry
	return entry, nil
}

// Get() returns the entry for an address
func (b *AddressBook) Get(address string) (*AddressBookEntry, lib.ErrorI) {
	b.l.RLock()
	defer b.l.RUnlock()
	entry, found := b.ByAddress[address]
	if !found {
		return nil, ErrUnknownAddress(address)
	}
	return entry, nil
}

// GetByNickname() returns the entry for a nickname
func (b *AddressBook) GetByNickname(nickname string) (*AddressBookEntry, lib.ErrorI) {
	b.l.RLock()
	defer b.l.RUnlock()
	for _, entry := range b.ByAddress {
		if entry.Nickname == nickname {
			return entry, nil
		}
	}
	return nil, ErrUnknownAddress(nickname)
}

// Delete() removes the entry for an address
func (b *AddressBook) Delete(address string) lib.ErrorI {
	b.l.Lock()
	defer b.l.Unlock()
	if _, found := b.ByAddress[address]; !found {
		return ErrUnknownAddress(address)
	}
	delete(b.ByAddress, address)
	return nil
}

// List() returns every entry sorted by nickname
func (b *AddressBook) List() []*AddressBookEntry {
	b.l.RLock()
	defer b.l.RUnlock()
	out := make([]*AddressBookEntry, 0, len(b.ByAddress))
	for _, entry := range b.ByAddress {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nickname < out[j].Nickname })
	return out
}

// generateNickname() produces a unique nickname, preferring a two word
// dictionary name and falling back to one derived from the address on
// hosts without a word list; caller must hold the write lock
func (b *AddressBook) generateNickname(address string) string {
	babbler, ok := newBabbler()
	if !ok {
		return b.fallbackNickname(address)
	}
	for {
		candidate := strings.ToLower(babbler.Babble())
		if !b.nicknameTaken(candidate) {
			return candidate
		}
	}
}

// newBabbler() builds a word generator, reporting failure instead of
// panicking when the host carries no dictionary file
func newBabbler() (babbler babble.Babbler, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	babbler = babble.NewBabbler()
	babbler.Count = 2
	babbler.Separator = "-"
	return babbler, true
}

// fallbackNickname() derives a unique nickname from the address tail
// caller must hold the write lock
func (b *AddressBook) fallbackNickname(address string) string {
	base := "signer-" + address[len(address)-6:]
	candidate := base
	for i := 2; b.nicknameTaken(candidate); i++ {
		candidate = base + "-" + strconv.Itoa(i)
	}
	return candidate
}

// nicknameTaken() reports whether any entry already uses the nickname
// caller must hold at least the read lock
func (b *AddressBook) nicknameTaken(nickname string) bool {
	for _, entry := range b.ByAddress {
		if entry.Nickname == nickname {
			return true
		}
	}
	return false
}
