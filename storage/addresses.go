// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/consts"
	"github.com/ava-labs/decksvm/utils"
)

// ModuleAddress is the operating account of the module identified by
// [namespace]. It owns every share token and seeds genesis liquidity.
func ModuleAddress(namespace string) codec.Address {
	return codec.CreateAddress(consts.MODULEID, utils.ToID([]byte(namespace)))
}

// ReserveAddress is the account custodying the reserves of the pool whose
// share token is [shareID]. The derivation is a pure function of
// ([namespace], [shareID]).
func ReserveAddress(namespace string, shareID codec.AssetID) codec.Address {
	v := make([]byte, 0, len(namespace)+codec.AssetIDLen)
	v = append(v, namespace...)
	v = append(v, shareID.Bytes()...)
	return codec.CreateAddress(consts.RESERVEID, utils.ToID(v))
}
