package rpc

import (
	"fmt"

	"github.com/govboard-network/govboard/lib"
)

// This file defines error objects for the rpc module

func ErrRPCRequest(err error) lib.ErrorI {
	return lib.NewError(lib.CodeRPCRequest, lib.RPCModule, fmt.Sprintf("rpc request failed with err: %s", err.Error()))
}

func ErrRPCDecode(status int, body string) lib.ErrorI {
	return lib.NewError(lib.CodeRPCDecode, lib.RPCModule, fmt.Sprintf("rpc responded with %d: %s", status, body))
}
