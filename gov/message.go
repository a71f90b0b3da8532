package gov

import (
	"bytes"
	"encoding/json"

	"github.com/govboard-network/govboard/lib"
)

// GovAuthority is the fixed bech32 address of the governance module account,
// used as the proposing authority for every generated module parameter message
const GovAuthority = "cosmos10d07y265gmmuvt4z0w9aw880jnsr700j6zn9kn"

// ModuleName is a closed set of chain modules whose parameters are governed together
type ModuleName string

const (
	ModuleVM        ModuleName = "vm"
	ModuleERC20     ModuleName = "erc20"
	ModuleFeeMarket ModuleName = "feemarket"
)

// Message type URLs keyed by module, reproduced verbatim from the chain protobuf namespaces
const (
	MsgUpdateVMParamsURL        = "/cosmos.evm.vm.v1.MsgUpdateParams"
	MsgRegisterPreinstallsURL   = "/cosmos.evm.vm.v1.MsgRegisterPreinstalls"
	MsgUpdateERC20ParamsURL     = "/cosmos.evm.erc20.v1.MsgUpdateParams"
	MsgRegisterERC20URL         = "/cosmos.evm.erc20.v1.MsgRegisterERC20"
	MsgToggleConversionURL      = "/cosmos.evm.erc20.v1.MsgToggleConversion"
	MsgUpdateFeeMarketParamsURL = "/cosmos.evm.feemarket.v1.MsgUpdateParams"
)

// ModuleNames() returns every governed module in canonical order
func ModuleNames() []ModuleName {
	return []ModuleName{ModuleVM, ModuleERC20, ModuleFeeMarket}
}

// Check() validates the module name against the closed set
func (m ModuleName) Check() lib.ErrorI {
	switch m {
	case ModuleVM, ModuleERC20, ModuleFeeMarket:
		return nil
	default:
		return ErrUnknownModule(m)
	}
}

// UpdateParamsTypeURL() resolves the MsgUpdateParams type url for the module
// the switch is exhaustive over the closed set so adding a module is compile visible
func (m ModuleName) UpdateParamsTypeURL() (string, lib.ErrorI) {
	switch m {
	case ModuleVM:
		return MsgUpdateVMParamsURL, nil
	case ModuleERC20:
		return MsgUpdateERC20ParamsURL, nil
	case ModuleFeeMarket:
		return MsgUpdateFeeMarketParamsURL, nil
	default:
		return "", ErrUnknownModule(m)
	}
}

// MessageTypeURLs() resolves every message type url the module supports
func (m ModuleName) MessageTypeURLs() ([]string, lib.ErrorI) {
	switch m {
	case ModuleVM:
		return []string{MsgUpdateVMParamsURL, MsgRegisterPreinstallsURL}, nil
	case ModuleERC20:
		return []string{MsgUpdateERC20ParamsURL, MsgRegisterERC20URL, MsgToggleConversionURL}, nil
	case ModuleFeeMarket:
		return []string{MsgUpdateFeeMarketParamsURL}, nil
	default:
		return nil, ErrUnknownModule(m)
	}
}

// GovernanceMessage is the output artifact of the proposal builder: a message type url
// plus its already validated payload; immutable once constructed, ownership passes to
// the broadcaster which is responsible for signing and submission
type GovernanceMessage struct {
	TypeURL string          `json:"typeUrl"` // the chain message type url
	Value   json.RawMessage `json:"value"`   // the deterministic json payload
}

// Equals() compares two governance messages byte for byte
func (g *GovernanceMessage) Equals(other *GovernanceMessage) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.TypeURL == other.TypeURL && bytes.Equal(g.Value, other.Value)
}

// ParamValue is a single validated parameter keyed by its descriptor key
type ParamValue struct {
	Key   string // the parameter key
	Value any    // the coerced, descriptor typed value
}

// ParamValues is an ordered set of validated parameters; it marshals as a json object
// whose member order is the owning module's canonical key order
type ParamValues []ParamValue

// MarshalJSON() writes the members in canonical order rather than the
// alphabetical order the standard library would impose on a map
func (p ParamValues) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, v := range p {
		if i != 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(v.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(v.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MsgUpdateParams is the payload of a parameter change governance message
type MsgUpdateParams struct {
	Authority string      `json:"authority"` // the governance module account
	Params    ParamValues `json:"params"`    // the complete parameter set in canonical order
}

// MsgRegisterERC20 is the payload registering existing ERC20 contracts as native pairs
type MsgRegisterERC20 struct {
	Signer         string   `json:"signer"`          // the proposing signer or authority
	Erc20Addresses []string `json:"erc20addresses"`  // the contract addresses to register
}

// MsgToggleConversion is the payload toggling conversion for a registered token pair
type MsgToggleConversion struct {
	Authority string `json:"authority"` // the governance module account
	Token     string `json:"token"`     // the denom or the hex contract address of the pair
}

// Preinstall is a single preinstalled contract entry
type Preinstall struct {
	Name    string `json:"name"`    // human name of the contract
	Address string `json:"address"` // the 20 byte hex address the code is installed at
	Code    string `json:"code"`    // the hex encoded contract bytecode
}

// MsgRegisterPreinstalls is the payload installing contracts at fixed addresses
type MsgRegisterPreinstalls struct {
	Authority   string       `json:"authority"`   // the governance module account
	Preinstalls []Preinstall `json:"preinstalls"` // the contracts to install
}
