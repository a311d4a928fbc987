// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/consts"
	"github.com/ava-labs/decksvm/state"
)

const liquidityPoolSize = codec.AssetIDLen + codec.AddressLen

// SetLiquidityPool records the pool for the canonical pair ([low], [high]).
func SetLiquidityPool(
	ctx context.Context,
	mu state.Mutable,
	low codec.AssetID,
	high codec.AssetID,
	shareID codec.AssetID,
	account codec.Address,
) error {
	p := codec.NewWriter(liquidityPoolSize, liquidityPoolSize)
	p.PackAssetID(shareID)
	p.PackAddress(account)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, LiquidityPoolKey(low, high), p.Bytes())
}

// GetLiquidityPool returns the share token and reserve account of the pool
// for the canonical pair ([low], [high]).
func GetLiquidityPool(
	ctx context.Context,
	im state.Immutable,
	low codec.AssetID,
	high codec.AssetID,
) (codec.AssetID, codec.Address, bool, error) {
	v, err := im.GetValue(ctx, LiquidityPoolKey(low, high))
	if errors.Is(err, database.ErrNotFound) {
		return 0, codec.EmptyAddress, false, nil
	}
	if err != nil {
		return 0, codec.EmptyAddress, false, err
	}
	if len(v) != liquidityPoolSize {
		return 0, codec.EmptyAddress, false, fmt.Errorf("%w: pool record has %d bytes", ErrInvalidRecord, len(v))
	}
	var account codec.Address
	p := codec.NewReader(v, liquidityPoolSize)
	shareID := p.UnpackAssetID()
	p.UnpackAddress(&account)
	if err := p.Err(); err != nil {
		return 0, codec.EmptyAddress, false, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return shareID, account, true, nil
}

// GetNextShareID returns the next share token identifier to hand out. The
// second value is false if the counter has never been written.
func GetNextShareID(ctx context.Context, im state.Immutable) (codec.AssetID, bool, error) {
	v, err := im.GetValue(ctx, NextShareIDKey())
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(v) != consts.Uint32Len {
		return 0, false, fmt.Errorf("%w: share counter has %d bytes", ErrInvalidRecord, len(v))
	}
	return codec.AssetID(binary.BigEndian.Uint32(v)), true, nil
}

func SetNextShareID(ctx context.Context, mu state.Mutable, id codec.AssetID) error {
	return mu.Insert(ctx, NextShareIDKey(), id.Bytes())
}
