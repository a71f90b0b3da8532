package gov

import (
	"sort"
	"strings"

	"github.com/govboard-network/govboard/lib"
)

// PrecompileAddressSet maintains a precompile address list in its canonical form:
// lowercase, unique, sorted ascending. Edits through the set always produce a value
// that passes the address list rule, so a toggle can never invalidate a draft.
type PrecompileAddressSet struct {
	addresses []string // sorted lowercase addresses
}

// NewPrecompileAddressSet() builds a set from an initial list, rejecting malformed input
func NewPrecompileAddressSet(initial []string) (*PrecompileAddressSet, lib.ErrorI) {
	set := &PrecompileAddressSet{addresses: make([]string, 0, len(initial))}
	for _, address := range initial {
		if err := set.Add(address); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Add() inserts an address at its sorted position
func (p *PrecompileAddressSet) Add(address string) lib.ErrorI {
	lower, err := normalizeAddress(address)
	if err != nil {
		return err
	}
	i := sort.SearchStrings(p.addresses, lower)
	if i < len(p.addresses) && p.addresses[i] == lower {
		return ErrDuplicateEntry(lower)
	}
	p.addresses = append(p.addresses, "")
	copy(p.addresses[i+1:], p.addresses[i:])
	p.addresses[i] = lower
	return nil
}

// Remove() deletes an address from the set, a no-op when absent
func (p *PrecompileAddressSet) Remove(address string) lib.ErrorI {
	lower, err := normalizeAddress(address)
	if err != nil {
		return err
	}
	i := sort.SearchStrings(p.addresses, lower)
	if i == len(p.addresses) || p.addresses[i] != lower {
		return nil
	}
	p.addresses = append(p.addresses[:i], p.addresses[i+1:]...)
	return nil
}

// Toggle() adds the address when absent and removes it when present,
// returning whether the address is enabled afterwards
func (p *PrecompileAddressSet) Toggle(address string) (enabled bool, err lib.ErrorI) {
	lower, err := normalizeAddress(address)
	if err != nil {
		return false, err
	}
	if p.Contains(lower) {
		return false, p.Remove(lower)
	}
	return true, p.Add(lower)
}

// Contains() reports whether the address is in the set, in either case form
func (p *PrecompileAddressSet) Contains(address string) bool {
	lower := strings.ToLower(address)
	i := sort.SearchStrings(p.addresses, lower)
	return i < len(p.addresses) && p.addresses[i] == lower
}

// List() returns a copy of the canonical sorted list
func (p *PrecompileAddressSet) List() []string {
	out := make([]string, len(p.addresses))
	copy(out, p.addresses)
	return out
}

// Len() returns the number of addresses in the set
func (p *PrecompileAddressSet) Len() int { return len(p.addresses) }

// Check() re-validates the canonical invariants, useful after deserialization
func (p *PrecompileAddressSet) Check() lib.ErrorI {
	return checkAddressList(p.addresses)
}

// normalizeAddress() validates the hex form and lowercases it
func normalizeAddress(address string) (string, lib.ErrorI) {
	if !addressPattern.MatchString(address) {
		return "", ErrInvalidAddress(address)
	}
	return strings.ToLower(address), nil
}
