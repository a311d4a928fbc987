// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import (
	"context"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/state"
)

// LiquidityPool holds the reserves of a [Pair] in [Account] and tracks
// ownership of those reserves with the share token [ShareID].
type LiquidityPool struct {
	ShareID codec.AssetID `json:"shareID"`
	Pair    Pair          `json:"pair"`
	Account codec.Address `json:"account"`
}

// Reserves returns the pool balances of (Pair.Low, Pair.High).
func (p *LiquidityPool) Reserves(ctx context.Context, im state.Immutable, t Tokens) (uint64, uint64, error) {
	r0, err := t.For(p.Pair.Low).Balance(ctx, im, p.Account)
	if err != nil {
		return 0, 0, err
	}
	r1, err := t.For(p.Pair.High).Balance(ctx, im, p.Account)
	if err != nil {
		return 0, 0, err
	}
	return r0, r1, nil
}
