// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import "github.com/ava-labs/avalanchego/version"

const (
	Name = "DecksVM"

	// DefaultNamespace seeds the module operating account and every
	// reserve account derived from it.
	DefaultNamespace = "dotdecks"
)

// TypeIDs used as the first byte of derived addresses
const (
	ED25519ID uint8 = iota

	// Relating to DecksVM address generation
	MODULEID
	RESERVEID
)

var Version = &version.Semantic{
	Major: 0,
	Minor: 0,
	Patch: 1,
}
