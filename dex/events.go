// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import "github.com/ava-labs/decksvm/codec"

var (
	_ Event = (*PoolCreated)(nil)
	_ Event = (*LiquidityAdded)(nil)
)

type Event interface {
	Name() string
}

// PoolCreated is emitted once per pair, before the first LiquidityAdded.
type PoolCreated struct {
	Pair    Pair          `json:"pair"`
	ShareID codec.AssetID `json:"shareID"`
	Account codec.Address `json:"account"`
}

func (*PoolCreated) Name() string { return "LiquidityPoolCreated" }

// LiquidityAdded reports the amounts actually moved, keyed in the token
// order of the request.
type LiquidityAdded struct {
	Provider codec.Address `json:"provider"`
	Token0   codec.AssetID `json:"token0"`
	Amount0  uint64        `json:"amount0"`
	Token1   codec.AssetID `json:"token1"`
	Amount1  uint64        `json:"amount1"`
	ShareID  codec.AssetID `json:"shareID"`
	Shares   uint64        `json:"shares"`
}

func (*LiquidityAdded) Name() string { return "LiquidityAdded" }
