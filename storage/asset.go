// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/consts"
	"github.com/ava-labs/decksvm/state"
)

// AssetInfo is the persisted record of a fungible asset.
type AssetInfo struct {
	Owner      codec.Address
	Sufficient bool
	MinBalance uint64
	Supply     uint64
	Frozen     bool
	Decimals   uint8
	Name       []byte
	Symbol     []byte
}

const maxAssetInfoSize = codec.AddressLen + consts.BoolLen + consts.Uint64Len*2 + consts.BoolLen +
	consts.ByteLen + consts.IntLen*2 + MaxAssetNameSize + MaxAssetSymbolSize

func (a *AssetInfo) Marshal() []byte {
	p := codec.NewWriter(maxAssetInfoSize, maxAssetInfoSize)
	p.PackAddress(a.Owner)
	p.PackBool(a.Sufficient)
	p.PackUint64(a.MinBalance)
	p.PackUint64(a.Supply)
	p.PackBool(a.Frozen)
	p.PackByte(a.Decimals)
	p.PackBytes(a.Name)
	p.PackBytes(a.Symbol)
	return p.Bytes()
}

func UnmarshalAssetInfo(b []byte) (*AssetInfo, error) {
	var a AssetInfo
	p := codec.NewReader(b, maxAssetInfoSize)
	p.UnpackAddress(&a.Owner)
	a.Sufficient = p.UnpackBool()
	a.MinBalance = p.UnpackUint64(false)
	a.Supply = p.UnpackUint64(false)
	a.Frozen = p.UnpackBool()
	a.Decimals = p.UnpackByte()
	p.UnpackBytes(MaxAssetNameSize, false, &a.Name)
	p.UnpackBytes(MaxAssetSymbolSize, false, &a.Symbol)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, codec.ErrTrailingBytes)
	}
	return &a, nil
}

// GetAsset returns (nil, false, nil) if [asset] has not been created.
func GetAsset(ctx context.Context, im state.Immutable, asset codec.AssetID) (*AssetInfo, bool, error) {
	v, err := im.GetValue(ctx, AssetKey(asset))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	info, err := UnmarshalAssetInfo(v)
	if err != nil {
		return nil, false, err
	}
	return info, true, nil
}

func SetAsset(ctx context.Context, mu state.Mutable, asset codec.AssetID, info *AssetInfo) error {
	if len(info.Name) > MaxAssetNameSize || len(info.Symbol) > MaxAssetSymbolSize {
		return fmt.Errorf("%w: asset metadata too large", ErrInvalidRecord)
	}
	if info.Decimals > MaxAssetDecimals {
		return fmt.Errorf("%w: asset decimals %d above %d", ErrInvalidRecord, info.Decimals, MaxAssetDecimals)
	}
	return mu.Insert(ctx, AssetKey(asset), info.Marshal())
}
