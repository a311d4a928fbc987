// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/state"
	"github.com/ava-labs/decksvm/storage"
	"github.com/ava-labs/decksvm/tokens"
)

// TokenRegistry creates and manages share tokens.
type TokenRegistry interface {
	Create(ctx context.Context, mu state.Mutable, id codec.AssetID, owner codec.Address, sufficient bool, minBalance uint64) error
	SetMetadata(ctx context.Context, mu state.Mutable, id codec.AssetID, actor codec.Address, name []byte, symbol []byte, decimals uint8) error
	Mint(ctx context.Context, mu state.Mutable, id codec.AssetID, to codec.Address, amount uint64) error
	Transfer(ctx context.Context, mu state.Mutable, id codec.AssetID, from codec.Address, to codec.Address, amount uint64) error
	Balance(ctx context.Context, im state.Immutable, id codec.AssetID, who codec.Address) (uint64, error)
	TotalIssuance(ctx context.Context, im state.Immutable, id codec.AssetID) (uint64, error)
	Exists(ctx context.Context, im state.Immutable, id codec.AssetID) (bool, error)
	Symbol(ctx context.Context, im state.Immutable, id codec.AssetID) ([]byte, error)
}

// Tokens resolves the ledger of any token id, native or not.
type Tokens interface {
	For(id codec.AssetID) tokens.Ledger
	Exists(ctx context.Context, im state.Immutable, id codec.AssetID) (bool, error)
	Symbol(ctx context.Context, im state.Immutable, id codec.AssetID) ([]byte, error)
	TotalIssuance(ctx context.Context, im state.Immutable, id codec.AssetID) (uint64, error)
}

type Config struct {
	// Namespace seeds the module account and every reserve account.
	Namespace             string
	LPTokenMinimumBalance uint64
	LPTokenDecimals       uint8
}

type Dex struct {
	log      logging.Logger
	cfg      Config
	registry TokenRegistry
	tokens   Tokens
	module   codec.Address
}

func New(log logging.Logger, cfg Config, registry TokenRegistry, t Tokens) *Dex {
	return &Dex{
		log:      log,
		cfg:      cfg,
		registry: registry,
		tokens:   t,
		module:   storage.ModuleAddress(cfg.Namespace),
	}
}

// ModuleAccount owns every share token and provides genesis liquidity.
func (d *Dex) ModuleAccount() codec.Address {
	return d.module
}

func (d *Dex) Tokens() Tokens {
	return d.tokens
}

// Result describes the effects of a successful [Dex.CreateOrJoinPool].
// Events are only meaningful once the state changes are committed.
type Result struct {
	Pool    *LiquidityPool
	Created bool
	Deposit *Deposit
	Events  []Event
}

// CreateOrJoinPool deposits [amount0] of [token0] and [amount1] of [token1]
// from [requester] into the pool of the pair, creating the pool first if
// it does not exist. Token order does not matter.
//
// On error, [mu] may hold partial writes and must be discarded.
func (d *Dex) CreateOrJoinPool(
	ctx context.Context,
	mu state.Mutable,
	token0 codec.AssetID,
	token1 codec.AssetID,
	amount0 uint64,
	amount1 uint64,
	requester codec.Address,
) (*Result, error) {
	if token0 == token1 {
		return nil, fmt.Errorf("%w: %s", ErrIdenticalTokens, token0)
	}
	if amount0 == 0 || amount1 == 0 {
		return nil, ErrAmountZero
	}
	if err := checkDepositor(requester); err != nil {
		return nil, err
	}
	for _, id := range []codec.AssetID{token0, token1} {
		exists, err := d.tokens.Exists(ctx, mu, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrNonExistentToken, id)
		}
	}
	if err := checkBalance(ctx, mu, d.tokens.For(token0), token0, requester, amount0); err != nil {
		return nil, err
	}
	if err := checkBalance(ctx, mu, d.tokens.For(token1), token1, requester, amount1); err != nil {
		return nil, err
	}

	pair, low, high, err := OrderAmounts(token0, token1, amount0, amount1)
	if err != nil {
		return nil, err
	}
	pool, created, err := d.GetOrCreatePool(ctx, mu, pair)
	if err != nil {
		return nil, err
	}
	deposit, err := pool.AddLiquidity(ctx, mu, d.tokens, low, high, requester)
	if err != nil {
		return nil, err
	}

	r := &Result{Pool: pool, Created: created, Deposit: deposit}
	if created {
		r.Events = append(r.Events, &PoolCreated{
			Pair:    pair,
			ShareID: pool.ShareID,
			Account: pool.Account,
		})
	}
	added := &LiquidityAdded{
		Provider: requester,
		Token0:   token0,
		Token1:   token1,
		ShareID:  pool.ShareID,
		Shares:   deposit.Shares,
	}
	if pair.Low == token0 {
		added.Amount0, added.Amount1 = deposit.Amount0, deposit.Amount1
	} else {
		added.Amount0, added.Amount1 = deposit.Amount1, deposit.Amount0
	}
	r.Events = append(r.Events, added)

	d.log.Debug("added liquidity",
		zap.Stringer("pair", pair),
		zap.Stringer("shareID", pool.ShareID),
		zap.Bool("created", created),
		zap.Uint64("amount0", deposit.Amount0),
		zap.Uint64("amount1", deposit.Amount1),
		zap.Uint64("shares", deposit.Shares),
	)
	return r, nil
}
