// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package assets

import "errors"

var (
	ErrAssetExists         = errors.New("asset already exists")
	ErrAssetNotFound       = errors.New("asset does not exist")
	ErrAssetFrozen         = errors.New("asset is frozen")
	ErrBelowMinimumBalance = errors.New("balance below asset minimum")
	ErrInsufficientFunds   = errors.New("insufficient asset balance")
	ErrNotOwner            = errors.New("actor is not asset owner")
	ErrNativeMint          = errors.New("native token is not managed by the asset registry")
	ErrMinBalanceZero      = errors.New("asset minimum balance is zero")
	ErrSupplyOverflow      = errors.New("asset supply overflow")
)
