package wallet

import (
	"fmt"

	"github.com/govboard-network/govboard/lib"
)

// This file defines error objects for the wallet module

func ErrInvalidBech32(address string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidBech32, lib.WalletModule, fmt.Sprintf("invalid bech32 address: %s", address))
}

func ErrUnknownChain(chainId string) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownChain, lib.WalletModule, fmt.Sprintf("unknown chain id: %s", chainId))
}

func ErrEmptySigner() lib.ErrorI {
	return lib.NewError(lib.CodeEmptySigner, lib.WalletModule, "the signer address is empty")
}

func ErrNicknameExists(nickname string) lib.ErrorI {
	return lib.NewError(lib.CodeNicknameExists, lib.WalletModule, fmt.Sprintf("nickname already in use: %s", nickname))
}

func ErrUnknownAddress(address string) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownAddress, lib.WalletModule, fmt.Sprintf("address not in book: %s", address))
}

func ErrBroadcastRejected(reason string) lib.ErrorI {
	return lib.NewError(lib.CodeBroadcastRejected, lib.WalletModule, fmt.Sprintf("broadcast rejected: %s", reason))
}

func ErrWrongBech32Prefix(address, prefix string) lib.ErrorI {
	return lib.NewError(lib.CodeWrongBech32Prefix, lib.WalletModule, fmt.Sprintf("address %s does not carry the chain prefix %s", address, prefix))
}

func ErrEmptyTransaction() lib.ErrorI {
	return lib.NewError(lib.CodeBroadcastRejected, lib.WalletModule, "the transaction carries no messages")
}
