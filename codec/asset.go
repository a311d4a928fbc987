// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/binary"
	"strconv"

	"github.com/ava-labs/decksvm/consts"
)

const AssetIDLen = consts.Uint32Len

// MaxAssetID is the largest representable asset identifier.
const MaxAssetID = AssetID(consts.MaxUint32)

// AssetID identifies a fungible token. Identifiers are totally ordered and
// are encoded as 4 big-endian bytes.
type AssetID uint32

func (a AssetID) Bytes() []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(a))
}

func (a AssetID) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

func ParseAssetID(s string) (AssetID, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return AssetID(v), nil
}
