// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import "errors"

var (
	ErrGenesis         = errors.New("invalid genesis")
	ErrDuplicateAsset  = errors.New("duplicate genesis asset")
	ErrInvalidPool     = errors.New("invalid genesis pool")
	ErrSupplyOverflow  = errors.New("genesis supply overflow")
	ErrInvalidMetadata = errors.New("invalid genesis asset metadata")
	ErrAlreadyLoaded   = errors.New("genesis already loaded")
)
