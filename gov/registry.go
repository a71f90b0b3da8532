package gov

import (
	"github.com/govboard-network/govboard/lib"
)

/*
	This file is the parameter registry: the declarative schema of every governed
	parameter across the vm, erc20 and feemarket modules. Defaults mirror the chain
	genesis values and are re-validated at process start, so a schema bug surfaces
	immediately rather than inside a generated proposal.
*/

// Access types for contract creation and contract calls on the vm module
const (
	AccessTypePermissionless = "ACCESS_TYPE_PERMISSIONLESS" // anyone, minus the list
	AccessTypeRestricted     = "ACCESS_TYPE_RESTRICTED"     // nobody
	AccessTypePermissioned   = "ACCESS_TYPE_PERMISSIONED"   // only the list
)

// AccessControlType is a single access control branch: a policy plus its address list
type AccessControlType struct {
	AccessType        string   `json:"access_type"`         // one of the access type constants
	AccessControlList []string `json:"access_control_list"` // exception or allow list per the policy
}

// check() validates the policy and the list; the list is validated even when the
// current policy ignores it, so a later policy flip cannot expose malformed data
func (a *AccessControlType) check() lib.ErrorI {
	switch a.AccessType {
	case AccessTypePermissionless, AccessTypeRestricted, AccessTypePermissioned:
	default:
		return ErrUnknownAccessType(a.AccessType)
	}
	return checkAddressList(a.AccessControlList)
}

// AccessControl pairs the creation and call policies of the vm module
type AccessControl struct {
	Create AccessControlType `json:"create"` // who may deploy contracts
	Call   AccessControlType `json:"call"`   // who may call contracts
}

// defaultAccessControl() returns the permissionless genesis policy
func defaultAccessControl() *AccessControl {
	return &AccessControl{
		Create: AccessControlType{AccessType: AccessTypePermissionless, AccessControlList: []string{}},
		Call:   AccessControlType{AccessType: AccessTypePermissionless, AccessControlList: []string{}},
	}
}

// defaultStaticPrecompiles are the genesis enabled precompile addresses, lowercase and sorted
var defaultStaticPrecompiles = []string{
	"0x0000000000000000000000000000000000000100", // p256
	"0x0000000000000000000000000000000000000400", // bech32
	"0x0000000000000000000000000000000000000800", // staking
	"0x0000000000000000000000000000000000000801", // distribution
	"0x0000000000000000000000000000000000000802", // ics20
	"0x0000000000000000000000000000000000000803", // vesting
	"0x0000000000000000000000000000000000000804", // bank
	"0x0000000000000000000000000000000000000805", // gov
}

// vmParams is the schema of the vm module
var vmParams = newModuleParamSet(ModuleVM,
	&ParamDescriptor{
		Key:            "evm_denom",
		Kind:           KindString,
		Default:        "aatom",
		Description:    "the coin denomination used by the EVM as the gas token",
		GovernanceOnly: true,
		Required:       true,
		Validate:       validateDenom,
	},
	&ParamDescriptor{
		Key:            "extra_eips",
		Kind:           KindNumberList,
		Default:        []int64{},
		Description:    "additional EIP numbers activated on top of the base fork configuration",
		GovernanceOnly: true,
		Validate:       validateEIPList,
	},
	&ParamDescriptor{
		Key:            "allow_unprotected_txs",
		Kind:           KindBool,
		Default:        false,
		Description:    "whether pre EIP-155 transactions without replay protection are accepted",
		GovernanceOnly: true,
	},
	&ParamDescriptor{
		Key:            "active_static_precompiles",
		Kind:           KindStringList,
		Default:        defaultStaticPrecompiles,
		Description:    "addresses of the enabled static precompiled contracts, sorted ascending",
		GovernanceOnly: false,
		Validate:       validateAddressList,
	},
	&ParamDescriptor{
		Key:            "access_control",
		Kind:           KindObject,
		Default:        defaultAccessControl(),
		Description:    "permission policy for contract creation and contract calls",
		GovernanceOnly: true,
		Validate:       validateAccessControl,
		NewObject:      func() any { return new(AccessControl) },
	},
	&ParamDescriptor{
		Key:            "evm_channels",
		Kind:           KindStringList,
		Default:        []string{},
		Description:    "IBC channels connected to EVM compatible chains",
		GovernanceOnly: true,
		Validate:       validateChannelList,
	},
)

// erc20Params is the schema of the erc20 module
var erc20Params = newModuleParamSet(ModuleERC20,
	&ParamDescriptor{
		Key:            "enable_erc20",
		Kind:           KindBool,
		Default:        true,
		Description:    "whether the erc20 module is operational",
		GovernanceOnly: true,
	},
	&ParamDescriptor{
		Key:            "permissionless_registration",
		Kind:           KindBool,
		Default:        true,
		Description:    "whether token pairs may be registered without a governance proposal",
		GovernanceOnly: true,
	},
	&ParamDescriptor{
		Key:            "native_precompiles",
		Kind:           KindStringList,
		Default:        []string{"0xd4949664cd82660aae99bedc034a0dea8a0bd517"},
		Description:    "precompile addresses of token pairs backed by a native coin",
		GovernanceOnly: false,
		Validate:       validateAddressList,
	},
	&ParamDescriptor{
		Key:            "dynamic_precompiles",
		Kind:           KindStringList,
		Default:        []string{},
		Description:    "precompile addresses of token pairs backed by an ERC20 contract",
		GovernanceOnly: false,
		Validate:       validateAddressList,
	},
)

// feeMarketParams is the schema of the feemarket module
var feeMarketParams = newModuleParamSet(ModuleFeeMarket,
	&ParamDescriptor{
		Key:            "no_base_fee",
		Kind:           KindBool,
		Default:        false,
		Description:    "whether the EIP-1559 base fee is disabled entirely",
		GovernanceOnly: true,
	},
	&ParamDescriptor{
		Key:            "base_fee_change_denominator",
		Kind:           KindNumber,
		Default:        int64(8),
		Description:    "bounds the amount the base fee may change between blocks",
		GovernanceOnly: true,
		Validate:       minNumber(1),
	},
	&ParamDescriptor{
		Key:            "elasticity_multiplier",
		Kind:           KindNumber,
		Default:        int64(2),
		Description:    "bounds the maximum gas limit as a multiple of the gas target",
		GovernanceOnly: true,
		Validate:       minNumber(1),
	},
	&ParamDescriptor{
		Key:            "enable_height",
		Kind:           KindNumber,
		Default:        int64(0),
		Description:    "block height from which the base fee calculation applies",
		GovernanceOnly: true,
		Validate:       minNumber(0),
	},
	&ParamDescriptor{
		Key:            "base_fee",
		Kind:           KindString,
		Default:        "1000000000",
		Description:    "initial base fee for the EIP-1559 calculation, in the minimal denom",
		GovernanceOnly: true,
		Required:       true,
		Validate:       nonNegativeDecimal,
	},
	&ParamDescriptor{
		Key:            "min_gas_price",
		Kind:           KindString,
		Default:        "0",
		Description:    "floor price a transaction must pay regardless of the base fee",
		GovernanceOnly: true,
		Validate:       nonNegativeDecimal,
	},
	&ParamDescriptor{
		Key:            "min_gas_multiplier",
		Kind:           KindString,
		Default:        "0.5",
		Description:    "fraction of declared gas charged even when execution uses less",
		GovernanceOnly: true,
		Validate:       decimalZeroToOne,
	},
)

// ParamSetFor() resolves the parameter schema for a module
func ParamSetFor(module ModuleName) (*ModuleParamSet, lib.ErrorI) {
	switch module {
	case ModuleVM:
		return vmParams, nil
	case ModuleERC20:
		return erc20Params, nil
	case ModuleFeeMarket:
		return feeMarketParams, nil
	default:
		return nil, ErrUnknownModule(module)
	}
}

// ParamSets() returns every module schema in canonical module order
func ParamSets() []*ModuleParamSet {
	return []*ModuleParamSet{vmParams, erc20Params, feeMarketParams}
}
