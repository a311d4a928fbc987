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
	"github.com/ava-labs/decksvm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// GetNativeBalance returns 0 if [addr] has never held the native token.
func GetNativeBalance(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error) {
	return getBalance(ctx, im, NativeBalanceKey(addr))
}

func SetNativeBalance(ctx context.Context, mu state.Mutable, addr codec.Address, balance uint64) error {
	return setBalance(ctx, mu, NativeBalanceKey(addr), balance)
}

func AddNativeBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error) {
	return addBalance(ctx, mu, NativeBalanceKey(addr), amount)
}

func SubNativeBalance(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) (uint64, error) {
	return subBalance(ctx, mu, NativeBalanceKey(addr), amount)
}

// GetAssetBalance returns 0 if [addr] has never held [asset].
func GetAssetBalance(ctx context.Context, im state.Immutable, asset codec.AssetID, addr codec.Address) (uint64, error) {
	return getBalance(ctx, im, AssetBalanceKey(asset, addr))
}

func SetAssetBalance(ctx context.Context, mu state.Mutable, asset codec.AssetID, addr codec.Address, balance uint64) error {
	return setBalance(ctx, mu, AssetBalanceKey(asset, addr), balance)
}

func AddAssetBalance(ctx context.Context, mu state.Mutable, asset codec.AssetID, addr codec.Address, amount uint64) (uint64, error) {
	return addBalance(ctx, mu, AssetBalanceKey(asset, addr), amount)
}

func SubAssetBalance(ctx context.Context, mu state.Mutable, asset codec.AssetID, addr codec.Address, amount uint64) (uint64, error) {
	return subBalance(ctx, mu, AssetBalanceKey(asset, addr), amount)
}

func getBalance(ctx context.Context, im state.Immutable, key []byte) (uint64, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return database.ParseUInt64(v)
}

func setBalance(ctx context.Context, mu state.Mutable, key []byte, balance uint64) error {
	if balance == 0 {
		// If there is no balance left, we delete the record instead of
		// setting it to 0.
		return mu.Remove(ctx, key)
	}
	return mu.Insert(ctx, key, binary.BigEndian.AppendUint64(nil, balance))
}

func addBalance(ctx context.Context, mu state.Mutable, key []byte, amount uint64) (uint64, error) {
	bal, err := getBalance(ctx, mu, key)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add balance (bal=%d, amount=%d)",
			ErrInvalidBalance,
			bal,
			amount,
		)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}

func subBalance(ctx context.Context, mu state.Mutable, key []byte, amount uint64) (uint64, error) {
	bal, err := getBalance(ctx, mu, key)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Sub(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not subtract balance (bal=%d, amount=%d)",
			ErrInvalidBalance,
			bal,
			amount,
		)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}
