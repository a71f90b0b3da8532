package gov

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/govboard-network/govboard/lib"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdateParams(t *testing.T) {
	tests := []struct {
		name    string
		detail  string
		module  ModuleName
		fields  map[string]RawValue
		typeURL string
		check   func(t *testing.T, params map[string]json.RawMessage)
		errors  []string
		fatal   lib.ErrorCode
	}{
		{
			name:   "empty draft",
			detail: "a draft with no edits cannot produce a message",
			module: ModuleFeeMarket,
			fields: map[string]RawValue{},
			fatal:  lib.CodeEmptyDraft,
		},
		{
			name:    "untouched keys use defaults",
			detail:  "a single edit still yields the complete parameter set",
			module:  ModuleFeeMarket,
			fields:  map[string]RawValue{"elasticity_multiplier": RawNumber("4")},
			typeURL: MsgUpdateFeeMarketParamsURL,
			check: func(t *testing.T, params map[string]json.RawMessage) {
				require.Equal(t, "4", string(params["elasticity_multiplier"]))
				require.Equal(t, `"1000000000"`, string(params["base_fee"]))
				require.Equal(t, `"0.5"`, string(params["min_gas_multiplier"]))
				require.Equal(t, "false", string(params["no_base_fee"]))
			},
		},
		{
			name:   "aggregated field errors",
			detail: "every failing field is reported, not just the first",
			module: ModuleFeeMarket,
			fields: map[string]RawValue{
				"base_fee_change_denominator": RawNumber("0"),
				"min_gas_multiplier":          RawString("2"),
				"min_gas_price":               RawString("-3"),
			},
			errors: []string{"base_fee_change_denominator", "min_gas_multiplier", "min_gas_price"},
		},
		{
			name:   "orphaned draft key",
			detail: "a key removed from the schema fails the build fatally",
			module: ModuleVM,
			fields: map[string]RawValue{
				"evm_denom":  RawString("aatom"),
				"zz_removed": RawString("x"),
				"aa_removed": RawString("y"),
			},
			fatal: lib.CodeUnknownParamKey,
		},
		{
			name:    "erc20 update",
			detail:  "an erc20 draft resolves the erc20 type url",
			module:  ModuleERC20,
			fields:  map[string]RawValue{"enable_erc20": RawBool(false)},
			typeURL: MsgUpdateERC20ParamsURL,
			check: func(t *testing.T, params map[string]json.RawMessage) {
				require.Equal(t, "false", string(params["enable_erc20"]))
				require.Equal(t, "true", string(params["permissionless_registration"]))
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			draft := &ProposalDraft{Module: test.module, Fields: test.fields}
			message, fieldErrors, err := BuildUpdateParams(draft)
			if test.fatal != 0 {
				require.NotNil(t, err, test.detail)
				require.Equal(t, test.fatal, err.Code(), test.detail)
				return
			}
			require.Nil(t, err, test.detail)
			if len(test.errors) != 0 {
				require.Nil(t, message, test.detail)
				keys := make([]string, 0, len(fieldErrors))
				for _, fe := range fieldErrors {
					keys = append(keys, fe.Key)
				}
				require.ElementsMatch(t, test.errors, keys, test.detail)
				return
			}
			require.Empty(t, fieldErrors, test.detail)
			require.Equal(t, test.typeURL, message.TypeURL, test.detail)
			var payload struct {
				Authority string                     `json:"authority"`
				Params    map[string]json.RawMessage `json:"params"`
			}
			require.NoError(t, json.Unmarshal(message.Value, &payload), test.detail)
			require.Equal(t, GovAuthority, payload.Authority, test.detail)
			test.check(t, payload.Params)
		})
	}
}

func TestBuildUpdateParamsDeterministic(t *testing.T) {
	// identical drafts must serialize to byte identical messages
	draft := &ProposalDraft{Module: ModuleVM, Fields: map[string]RawValue{
		"extra_eips":   RawSequence(RawNumber("3855")),
		"evm_channels": RawString("channel-0"),
	}}
	first, fieldErrors, err := BuildUpdateParams(draft)
	require.Nil(t, err)
	require.Empty(t, fieldErrors)
	second, fieldErrors, err := BuildUpdateParams(draft)
	require.Nil(t, err)
	require.Empty(t, fieldErrors)
	require.True(t, first.Equals(second))
	// the parameter order inside the payload follows the schema, not the map
	vm, err := ParamSetFor(ModuleVM)
	require.Nil(t, err)
	payload, last := string(first.Value), -1
	for _, key := range vm.Keys() {
		i := strings.Index(payload, `"`+key+`"`)
		require.Greater(t, i, last, "key %s out of canonical order", key)
		last = i
	}
}

func TestBuildUpdateParamsRevalidates(t *testing.T) {
	// every value inside a built message, edited or defaulted, must pass the
	// same field validation that gated it on the way in
	draft := &ProposalDraft{Module: ModuleVM, Fields: map[string]RawValue{
		"evm_denom":             RawString("uatom"),
		"extra_eips":            RawSequence(RawNumber("3855")),
		"allow_unprotected_txs": RawBool(true),
	}}
	message, fieldErrors, err := BuildUpdateParams(draft)
	require.Nil(t, err)
	require.Empty(t, fieldErrors)
	var payload struct {
		Authority string                     `json:"authority"`
		Params    map[string]json.RawMessage `json:"params"`
	}
	require.NoError(t, json.Unmarshal(message.Value, &payload))
	require.Equal(t, GovAuthority, payload.Authority)
	set, err := ParamSetFor(ModuleVM)
	require.Nil(t, err)
	for _, key := range set.Keys() {
		descriptor, err := set.Get(key)
		require.Nil(t, err)
		require.Contains(t, payload.Params, key)
		var raw RawValue
		require.NoError(t, json.Unmarshal(payload.Params[key], &raw), "key %s", key)
		_, vErr := ValidateField(descriptor, raw)
		require.Nil(t, vErr, "key %s fails its own validation after building", key)
	}
}

func TestBuildOutOfRangeDenominator(t *testing.T) {
	// a single out of range edit yields exactly one field error and no message
	draft := &ProposalDraft{Module: ModuleFeeMarket, Fields: map[string]RawValue{
		"base_fee_change_denominator": RawNumber("0"),
	}}
	message, fieldErrors, err := BuildUpdateParams(draft)
	require.Nil(t, err)
	require.Nil(t, message)
	require.Len(t, fieldErrors, 1)
	require.Equal(t, "base_fee_change_denominator", fieldErrors[0].Key)
	require.Equal(t, lib.CodeOutOfRange, fieldErrors[0].Error.Code())
}

func TestBuildRegisterERC20(t *testing.T) {
	tests := []struct {
		name      string
		detail    string
		addresses []string
		expected  []string
		error     lib.ErrorCode
	}{
		{
			name:      "lowercased output",
			detail:    "mixed case input normalizes to lowercase in input order",
			addresses: []string{"0x00000000000000000000000000000000000000AB", "0x0000000000000000000000000000000000000001"},
			expected:  []string{"0x00000000000000000000000000000000000000ab", "0x0000000000000000000000000000000000000001"},
		},
		{
			name:      "duplicate across case",
			detail:    "the same address in two case forms is a duplicate",
			addresses: []string{"0x00000000000000000000000000000000000000ab", "0x00000000000000000000000000000000000000AB"},
			error:     lib.CodeDuplicateEntry,
		},
		{
			name:      "empty input",
			detail:    "registering nothing is a missing required field",
			addresses: nil,
			error:     lib.CodeMissingRequired,
		},
		{
			name:      "malformed address",
			detail:    "a non hex address fails validation",
			addresses: []string{"atom1xyz"},
			error:     lib.CodeInvalidFormat,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			message, err := BuildRegisterERC20(test.addresses)
			if test.error != 0 {
				require.NotNil(t, err, test.detail)
				require.Equal(t, test.error, err.Code(), test.detail)
				return
			}
			require.Nil(t, err, test.detail)
			require.Equal(t, MsgRegisterERC20URL, message.TypeURL, test.detail)
			var payload MsgRegisterERC20
			require.NoError(t, json.Unmarshal(message.Value, &payload), test.detail)
			require.Equal(t, GovAuthority, payload.Signer, test.detail)
			require.Equal(t, test.expected, payload.Erc20Addresses, test.detail)
		})
	}
}

func TestBuildToggleConversion(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		token    string
		expected string
		error    lib.ErrorCode
	}{
		{
			name:     "by denom",
			detail:   "a coin denomination identifies the pair",
			token:    "erc20/0xabc",
			expected: "erc20/0xabc",
		},
		{
			name:     "by address",
			detail:   "a hex contract address identifies the pair, lowercased",
			token:    "0x00000000000000000000000000000000000000AB",
			expected: "0x00000000000000000000000000000000000000ab",
		},
		{
			name:   "empty token",
			detail: "a blank token is a missing required field",
			token:  "  ",
			error:  lib.CodeMissingRequired,
		},
		{
			name:   "malformed token",
			detail: "a token matching neither grammar fails validation",
			token:  "NOT A TOKEN",
			error:  lib.CodeInvalidFormat,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			message, err := BuildToggleConversion(test.token)
			if test.error != 0 {
				require.NotNil(t, err, test.detail)
				require.Equal(t, test.error, err.Code(), test.detail)
				return
			}
			require.Nil(t, err, test.detail)
			require.Equal(t, MsgToggleConversionURL, message.TypeURL, test.detail)
			var payload MsgToggleConversion
			require.NoError(t, json.Unmarshal(message.Value, &payload), test.detail)
			require.Equal(t, GovAuthority, payload.Authority, test.detail)
			require.Equal(t, test.expected, payload.Token, test.detail)
		})
	}
}

func TestBuildRegisterPreinstalls(t *testing.T) {
	valid := Preinstall{
		Name:    "create2",
		Address: "0x4e59b44847b379578588920cA78FbF26c0B4956C",
		Code:    "0x6080",
	}
	tests := []struct {
		name        string
		detail      string
		preinstalls []Preinstall
		error       lib.ErrorCode
	}{
		{
			name:        "valid preinstall",
			detail:      "a well formed entry builds a message with a lowercased address",
			preinstalls: []Preinstall{valid},
		},
		{
			name:        "empty list",
			detail:      "installing nothing is a missing required field",
			preinstalls: nil,
			error:       lib.CodeMissingRequired,
		},
		{
			name:        "odd length bytecode",
			detail:      "bytecode must be whole bytes",
			preinstalls: []Preinstall{{Name: "x", Address: valid.Address, Code: "0x608"}},
			error:       lib.CodeInvalidFormat,
		},
		{
			name:        "duplicate address",
			detail:      "two entries at the same address collide",
			preinstalls: []Preinstall{valid, {Name: "other", Address: valid.Address, Code: "0x00"}},
			error:       lib.CodeDuplicateEntry,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			message, err := BuildRegisterPreinstalls(test.preinstalls)
			if test.error != 0 {
				require.NotNil(t, err, test.detail)
				require.Equal(t, test.error, err.Code(), test.detail)
				return
			}
			require.Nil(t, err, test.detail)
			require.Equal(t, MsgRegisterPreinstallsURL, message.TypeURL, test.detail)
			var payload MsgRegisterPreinstalls
			require.NoError(t, json.Unmarshal(message.Value, &payload), test.detail)
			require.Equal(t, GovAuthority, payload.Authority, test.detail)
			require.Equal(t, "0x4e59b44847b379578588920ca78fbf26c0b4956c", payload.Preinstalls[0].Address, test.detail)
		})
	}
}
