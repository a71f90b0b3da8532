package gov

import (
	"fmt"

	"github.com/govboard-network/govboard/lib"
)

// This file defines error objects for the governance module

func ErrInvalidAddress(address string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidFormat, lib.GovernanceModule, fmt.Sprintf("invalid EVM address: %s", address))
}

func ErrInvalidDenom(denom string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidFormat, lib.GovernanceModule, fmt.Sprintf("invalid denom: %s", denom))
}

func ErrInvalidBytecode(name string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidFormat, lib.GovernanceModule, fmt.Sprintf("invalid contract bytecode for: %s", name))
}

func ErrInvalidChannel(channel string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidFormat, lib.GovernanceModule, fmt.Sprintf("invalid IBC channel id: %s", channel))
}

func ErrNotWholeNumber(value string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidFormat, lib.GovernanceModule, fmt.Sprintf("%q is not a whole number", value))
}

func ErrNotDecimal(value string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidFormat, lib.GovernanceModule, fmt.Sprintf("%q is not a decimal number", value))
}

func ErrUnsortedEntries() lib.ErrorI {
	return lib.NewError(lib.CodeInvalidFormat, lib.GovernanceModule, "entries must be sorted ascending")
}

func ErrWrongValueShape(expected ParamKind) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidFormat, lib.GovernanceModule, fmt.Sprintf("expected a %s value", expected))
}

func ErrUnknownAccessType(t string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidFormat, lib.GovernanceModule, fmt.Sprintf("unknown access type: %s", t))
}

func ErrBelowMinimum(min int64) lib.ErrorI {
	return lib.NewError(lib.CodeOutOfRange, lib.GovernanceModule, fmt.Sprintf("must be at least %d", min))
}

func ErrNotBetweenZeroAndOne(value string) lib.ErrorI {
	return lib.NewError(lib.CodeOutOfRange, lib.GovernanceModule, fmt.Sprintf("%q must be between 0 and 1", value))
}

func ErrNegativeDecimal(value string) lib.ErrorI {
	return lib.NewError(lib.CodeOutOfRange, lib.GovernanceModule, fmt.Sprintf("%q must not be negative", value))
}

func ErrDuplicateEntry(entry string) lib.ErrorI {
	return lib.NewError(lib.CodeDuplicateEntry, lib.GovernanceModule, fmt.Sprintf("duplicate entry: %s", entry))
}

func ErrMissingRequired() lib.ErrorI {
	return lib.NewError(lib.CodeMissingRequired, lib.GovernanceModule, "a required field is empty")
}

func ErrUnknownParamKey(module ModuleName, key string) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownParamKey, lib.GovernanceModule, fmt.Sprintf("unknown parameter key %s.%s", module, key))
}

func ErrUnknownModule(module ModuleName) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownModule, lib.GovernanceModule, fmt.Sprintf("unknown module: %s", module))
}

func ErrUnknownParamKind(kind ParamKind) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownParamKind, lib.GovernanceModule, fmt.Sprintf("unknown parameter kind: %d", kind))
}

func ErrEmptyDraft() lib.ErrorI {
	return lib.NewError(lib.CodeEmptyDraft, lib.GovernanceModule, "the draft is empty")
}

func ErrUnknownDraft(module ModuleName) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownDraft, lib.GovernanceModule, fmt.Sprintf("no draft exists for module: %s", module))
}

func ErrDuplicateParamKey(module ModuleName, key string) lib.ErrorI {
	return lib.NewError(lib.CodeDuplicateParamKey, lib.GovernanceModule, fmt.Sprintf("duplicate parameter key %s.%s", module, key))
}

func ErrInvalidDefault(module ModuleName, key string, err lib.ErrorI) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidDefault, lib.GovernanceModule, fmt.Sprintf("default for %s.%s fails validation: %s", module, key, err.Error()))
}
