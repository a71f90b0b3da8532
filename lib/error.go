package lib

import (
	"fmt"
	"math"
)

// ErrorI is the typed error contract used across every govboard module
type ErrorI interface {
	Code() ErrorCode     // Returns the error code
	Module() ErrorModule // Returns the error module
	error                // Implements the built-in error interface
}

var _ ErrorI = &Error{} // Ensures *Error implements ErrorI

type ErrorCode uint32 // Defines a type for error codes

type ErrorModule string // Defines a type for error modules

// Error is the concrete implementation of ErrorI
type Error struct {
	ECode   ErrorCode   `json:"code"`   // Error code
	EModule ErrorModule `json:"module"` // Error module
	Msg     string      `json:"msg"`    // Error message
}

func NewError(code ErrorCode, module ErrorModule, msg string) *Error {
	// Constructs a new Error instance
	return &Error{ECode: code, EModule: module, Msg: msg}
}

// Code() returns the associated error code
func (p *Error) Code() ErrorCode { return p.ECode }

// Module() returns module field
func (p *Error) Module() ErrorModule { return p.EModule }

// String() calls Error()
func (p *Error) String() string { return p.Error() }

// Error() returns a formatted string including module, code and message
func (p *Error) Error() string {
	return fmt.Sprintf("\nModule:  %s\nCode:    %d\nMessage: %s", p.EModule, p.ECode, p.Msg)
}

const (
	NoCode ErrorCode = math.MaxUint32

	// Main Module
	MainModule ErrorModule = "main"

	// Main Module Error Codes
	CodeJSONMarshal     ErrorCode = 1
	CodeJSONUnmarshal   ErrorCode = 2
	CodeWriteFile       ErrorCode = 3
	CodeReadFile        ErrorCode = 4
	CodeStringToBytes   ErrorCode = 5
	CodeUnknownPageable ErrorCode = 6
	CodeServerTimeout   ErrorCode = 7

	// Governance Module
	GovernanceModule ErrorModule = "governance"

	// Governance Module Error Codes
	CodeInvalidFormat     ErrorCode = 1
	CodeOutOfRange        ErrorCode = 2
	CodeDuplicateEntry    ErrorCode = 3
	CodeMissingRequired   ErrorCode = 4
	CodeUnknownParamKey   ErrorCode = 5
	CodeUnknownModule     ErrorCode = 6
	CodeUnknownParamKind  ErrorCode = 7
	CodeEmptyDraft        ErrorCode = 8
	CodeUnknownDraft      ErrorCode = 9
	CodeDuplicateParamKey ErrorCode = 10
	CodeInvalidDefault    ErrorCode = 11

	// Wallet Module
	WalletModule ErrorModule = "wallet"

	// Wallet Module Error Codes
	CodeInvalidBech32     ErrorCode = 1
	CodeUnknownChain      ErrorCode = 2
	CodeEmptySigner       ErrorCode = 3
	CodeNicknameExists    ErrorCode = 4
	CodeUnknownAddress    ErrorCode = 5
	CodeBroadcastRejected ErrorCode = 6
	CodeWrongBech32Prefix ErrorCode = 7

	// Store Module
	StoreModule ErrorModule = "store"

	// Store Module Error Codes
	CodeOpenDB      ErrorCode = 1
	CodeCloseDB     ErrorCode = 2
	CodeStoreGet    ErrorCode = 3
	CodeStoreSet    ErrorCode = 4
	CodeStoreDelete ErrorCode = 5
	CodeUnknownTx   ErrorCode = 6

	// RPC Module
	RPCModule ErrorModule = "rpc"

	// RPC Module Error Codes
	CodeRPCRequest ErrorCode = 1
	CodeRPCDecode  ErrorCode = 2
)

func ErrJSONMarshal(err error) ErrorI {
	return NewError(CodeJSONMarshal, MainModule, fmt.Sprintf("json marshal failed with err: %s", err.Error()))
}

func ErrJSONUnmarshal(err error) ErrorI {
	return NewError(CodeJSONUnmarshal, MainModule, fmt.Sprintf("json unmarshal failed with err: %s", err.Error()))
}

func ErrWriteFile(err error) ErrorI {
	return NewError(CodeWriteFile, MainModule, fmt.Sprintf("write file failed with err: %s", err.Error()))
}

func ErrReadFile(err error) ErrorI {
	return NewError(CodeReadFile, MainModule, fmt.Sprintf("read file failed with err: %s", err.Error()))
}

func ErrStringToBytes(err error) ErrorI {
	return NewError(CodeStringToBytes, MainModule, fmt.Sprintf("string to bytes failed with err: %s", err.Error()))
}

func ErrUnknownPageable(t string) ErrorI {
	return NewError(CodeUnknownPageable, MainModule, fmt.Sprintf("unknown pageable type: %s", t))
}

func ErrServerTimeout() ErrorI {
	return NewError(CodeServerTimeout, MainModule, "server timeout")
}
