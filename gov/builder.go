package gov

import (
	"regexp"
	"sort"
	"strings"

	"github.com/govboard-network/govboard/lib"
)

/*
	This file implements the proposal builder: the translation of a validated draft
	into a ready-to-sign governance message. A build either returns one message or a
	complete list of field failures, never a partial message, so the caller can render
	every problem at once instead of fixing them one round trip at a time.
*/

// FieldError pairs a parameter key with its validation failure
type FieldError struct {
	Key   string     `json:"key"`   // the failing parameter key
	Error *lib.Error `json:"error"` // the validation failure
}

// BuildUpdateParams() assembles a MsgUpdateParams governance message from a draft
// the returned message carries the full parameter set: edited keys use their
// validated values, untouched keys fall back to the registry default
func BuildUpdateParams(draft *ProposalDraft) (*GovernanceMessage, []FieldError, lib.ErrorI) {
	set, err := ParamSetFor(draft.Module)
	if err != nil {
		return nil, nil, err
	}
	if draft.IsEmpty() {
		return nil, nil, ErrEmptyDraft()
	}
	// a draft loaded from disk may predate a schema change; scan for orphaned keys
	// in sorted order so the reported key is deterministic
	unknown := make([]string, 0)
	for key := range draft.Fields {
		if !set.Contains(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) != 0 {
		sort.Strings(unknown)
		return nil, nil, ErrUnknownParamKey(draft.Module, unknown[0])
	}
	// validate every field, collecting failures rather than stopping at the first
	var fieldErrors []FieldError
	params := make(ParamValues, 0, len(set.Keys()))
	for _, key := range set.Keys() {
		descriptor, e := set.Get(key)
		if e != nil {
			return nil, nil, e
		}
		raw, edited := draft.Fields[key]
		if !edited {
			params = append(params, ParamValue{Key: key, Value: descriptor.Default})
			continue
		}
		value, vErr := ValidateField(descriptor, raw)
		if vErr != nil {
			fieldErrors = append(fieldErrors, FieldError{Key: key, Error: toError(vErr)})
			continue
		}
		params = append(params, ParamValue{Key: key, Value: value})
	}
	if len(fieldErrors) != 0 {
		return nil, fieldErrors, nil
	}
	typeURL, err := draft.Module.UpdateParamsTypeURL()
	if err != nil {
		return nil, nil, err
	}
	value, err := lib.MarshalJSON(&MsgUpdateParams{Authority: GovAuthority, Params: params})
	if err != nil {
		return nil, nil, err
	}
	return &GovernanceMessage{TypeURL: typeURL, Value: value}, nil, nil
}

// bytecodePattern matches 0x prefixed contract bytecode with at least one byte
var bytecodePattern = regexp.MustCompile(`^0x(?:[0-9a-fA-F]{2})+$`)

// BuildRegisterERC20() assembles a MsgRegisterERC20 message registering existing
// ERC20 contracts as native token pairs; addresses are lowercased and deduplicated
func BuildRegisterERC20(addresses []string) (*GovernanceMessage, lib.ErrorI) {
	if len(addresses) == 0 {
		return nil, ErrMissingRequired()
	}
	deDuplicator := lib.NewDeDuplicator[string]()
	lowered := make([]string, 0, len(addresses))
	for _, address := range addresses {
		if !addressPattern.MatchString(address) {
			return nil, ErrInvalidAddress(address)
		}
		lower := strings.ToLower(address)
		if deDuplicator.Found(lower) {
			return nil, ErrDuplicateEntry(lower)
		}
		lowered = append(lowered, lower)
	}
	value, err := lib.MarshalJSON(&MsgRegisterERC20{Signer: GovAuthority, Erc20Addresses: lowered})
	if err != nil {
		return nil, err
	}
	return &GovernanceMessage{TypeURL: MsgRegisterERC20URL, Value: value}, nil
}

// BuildToggleConversion() assembles a MsgToggleConversion message for a registered
// token pair, identified by either its coin denom or its hex contract address
func BuildToggleConversion(token string) (*GovernanceMessage, lib.ErrorI) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingRequired()
	}
	switch {
	case addressPattern.MatchString(token):
		token = strings.ToLower(token)
	case denomPattern.MatchString(token):
	default:
		return nil, ErrInvalidDenom(token)
	}
	value, err := lib.MarshalJSON(&MsgToggleConversion{Authority: GovAuthority, Token: token})
	if err != nil {
		return nil, err
	}
	return &GovernanceMessage{TypeURL: MsgToggleConversionURL, Value: value}, nil
}

// BuildRegisterPreinstalls() assembles a MsgRegisterPreinstalls message installing
// contract bytecode at fixed addresses
func BuildRegisterPreinstalls(preinstalls []Preinstall) (*GovernanceMessage, lib.ErrorI) {
	if len(preinstalls) == 0 {
		return nil, ErrMissingRequired()
	}
	deDuplicator := lib.NewDeDuplicator[string]()
	normalized := make([]Preinstall, 0, len(preinstalls))
	for _, p := range preinstalls {
		if strings.TrimSpace(p.Name) == "" {
			return nil, ErrMissingRequired()
		}
		if !addressPattern.MatchString(p.Address) {
			return nil, ErrInvalidAddress(p.Address)
		}
		if !bytecodePattern.MatchString(p.Code) {
			return nil, ErrInvalidBytecode(p.Name)
		}
		lower := strings.ToLower(p.Address)
		if deDuplicator.Found(lower) {
			return nil, ErrDuplicateEntry(lower)
		}
		normalized = append(normalized, Preinstall{Name: p.Name, Address: lower, Code: p.Code})
	}
	value, err := lib.MarshalJSON(&MsgRegisterPreinstalls{Authority: GovAuthority, Preinstalls: normalized})
	if err != nil {
		return nil, err
	}
	return &GovernanceMessage{TypeURL: MsgRegisterPreinstallsURL, Value: value}, nil
}
