// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import "errors"

var (
	ErrIdenticalTokens     = errors.New("tokens are identical")
	ErrAmountZero          = errors.New("amount is zero")
	ErrInvalidAmount       = errors.New("amount too small to be represented")
	ErrNonExistentToken    = errors.New("token does not exist")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrTokenAlreadyExists  = errors.New("share token already exists")
	ErrShareIDsExhausted   = errors.New("share token ids exhausted")
	ErrReserveDesync       = errors.New("pool reserves out of sync with share issuance")
	ErrOverflow            = errors.New("amount overflow")
	ErrPoolNotFound        = errors.New("liquidity pool does not exist")
	ErrReserveDepositor    = errors.New("reserve accounts cannot provide liquidity")
)
