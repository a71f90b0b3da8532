package wallet

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/govboard-network/govboard/lib"
)

/*
	This file defines the chain context: the per-network constants a proposal session
	runs against. The dashboard ships presets for the known networks and accepts any
	well formed cosmos style EVM chain id for custom deployments.
*/

var (
	// chainIdPattern is the cosmos style EVM chain identifier: name_eip155-version
	// the name doubles as the bech32 prefix for custom deployments
	chainIdPattern = regexp.MustCompile(`^([a-z]{1,32})_([1-9][0-9]*)-[1-9][0-9]*$`)
	// bech32Pattern is a shape check on account addresses: hrp, separator, data part
	// in the bech32 charset; full checksum verification is left to the chain
	bech32Pattern = regexp.MustCompile(`^[a-z]{1,10}1[02-9ac-hj-np-z]{38,58}$`)
)

// ChainContext is the set of network constants a session runs against
type ChainContext struct {
	ChainId      string `json:"chainId"`      // the cosmos style chain identifier
	Name         string `json:"name"`         // human name of the network
	EVMChainId   int64  `json:"evmChainId"`   // the eip155 chain id parsed from the identifier
	Denom        string `json:"denom"`        // the minimal gas denomination
	Decimals     int    `json:"decimals"`     // decimal places of the minimal denomination
	Bech32Prefix string `json:"bech32Prefix"` // the account address prefix of the network
	Testnet      bool   `json:"testnet"`      // whether the network is a test network
}

// presetChains are the networks the dashboard knows out of the box
var presetChains = []*ChainContext{
	{ChainId: "cosmos_9001-1", Name: "mainnet", EVMChainId: 9001, Denom: "aatom", Decimals: 18, Bech32Prefix: "cosmos"},
	{ChainId: "cosmos_9002-1", Name: "testnet", EVMChainId: 9002, Denom: "aatom", Decimals: 18, Bech32Prefix: "cosmos", Testnet: true},
}

// PresetChains() returns a copy of the known network list
func PresetChains() []*ChainContext {
	out := make([]*ChainContext, len(presetChains))
	copy(out, presetChains)
	return out
}

// NewChainContext() resolves a chain id to a context, preferring a preset and
// otherwise deriving a custom context from a well formed identifier
func NewChainContext(chainId string) (*ChainContext, lib.ErrorI) {
	for _, preset := range presetChains {
		if preset.ChainId == chainId {
			c := *preset
			return &c, nil
		}
	}
	match := chainIdPattern.FindStringSubmatch(chainId)
	if match == nil {
		return nil, ErrUnknownChain(chainId)
	}
	evmChainId, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil {
		return nil, ErrUnknownChain(chainId)
	}
	return &ChainContext{
		ChainId:      chainId,
		Name:         "custom",
		EVMChainId:   evmChainId,
		Denom:        "aatom",
		Decimals:     18,
		Bech32Prefix: match[1],
	}, nil
}

// CheckAddress() validates the bech32 shape of an account address and
// verifies it carries the network's address prefix
func (c *ChainContext) CheckAddress(address string) lib.ErrorI {
	if err := CheckAddress(address); err != nil {
		return err
	}
	if !strings.HasPrefix(address, c.Bech32Prefix+"1") {
		return ErrWrongBech32Prefix(address, c.Bech32Prefix)
	}
	return nil
}

// CheckAddress() validates the bech32 shape of an account address
func CheckAddress(address string) lib.ErrorI {
	if address == "" {
		return ErrEmptySigner()
	}
	if !bech32Pattern.MatchString(address) {
		return ErrInvalidBech32(address)
	}
	return nil
}
