// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import (
	"context"
	"fmt"

	"github.com/ava-labs/decksvm/state"
	"github.com/ava-labs/decksvm/storage"
)

// GetPool returns the pool of [pair] or [ErrPoolNotFound].
func (d *Dex) GetPool(ctx context.Context, im state.Immutable, pair Pair) (*LiquidityPool, error) {
	pair, err := NewPair(pair.Low, pair.High)
	if err != nil {
		return nil, err
	}
	shareID, account, exists, err := storage.GetLiquidityPool(ctx, im, pair.Low, pair.High)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, pair)
	}
	return &LiquidityPool{ShareID: shareID, Pair: pair, Account: account}, nil
}

// GetOrCreatePool returns the pool of [pair], creating it if needed. The
// second value reports whether the pool was created by this call.
func (d *Dex) GetOrCreatePool(ctx context.Context, mu state.Mutable, pair Pair) (*LiquidityPool, bool, error) {
	pair, err := NewPair(pair.Low, pair.High)
	if err != nil {
		return nil, false, err
	}
	shareID, account, exists, err := storage.GetLiquidityPool(ctx, mu, pair.Low, pair.High)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return &LiquidityPool{ShareID: shareID, Pair: pair, Account: account}, false, nil
	}

	shareID, err = d.allocateShareToken(ctx, mu, pair)
	if err != nil {
		return nil, false, err
	}
	pool := &LiquidityPool{
		ShareID: shareID,
		Pair:    pair,
		Account: storage.ReserveAddress(d.cfg.Namespace, shareID),
	}
	if err := storage.SetLiquidityPool(ctx, mu, pair.Low, pair.High, pool.ShareID, pool.Account); err != nil {
		return nil, false, err
	}
	return pool, true, nil
}
