// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/consts"
	"github.com/ava-labs/decksvm/state"
	"github.com/ava-labs/decksvm/tokens"
)

// Deposit is what a single AddLiquidity moved, in canonical order.
type Deposit struct {
	Amount0 uint64 `json:"amount0"`
	Amount1 uint64 `json:"amount1"`
	Shares  uint64 `json:"shares"`
}

// AddLiquidity moves reserves from [depositor] into the pool and mints
// shares in return. [amount0] and [amount1] follow canonical pair order.
//
// The first deposit sets the price: it mints [amount0] shares and moves
// both amounts. Later deposits move [amount0] of Pair.Low and the amount
// of Pair.High that keeps the reserve ratio, and mint shares proportional
// to [amount0]. All divisions truncate.
func (p *LiquidityPool) AddLiquidity(
	ctx context.Context,
	mu state.Mutable,
	t Tokens,
	amount0 uint64,
	amount1 uint64,
	depositor codec.Address,
) (*Deposit, error) {
	if amount0 == 0 || amount1 == 0 {
		return nil, ErrAmountZero
	}
	if err := checkDepositor(depositor); err != nil {
		return nil, err
	}
	issuance, err := t.TotalIssuance(ctx, mu, p.ShareID)
	if err != nil {
		return nil, err
	}

	d := &Deposit{Amount0: amount0}
	if issuance == 0 {
		d.Amount1 = amount1
		d.Shares = amount0
	} else {
		r0, r1, err := p.Reserves(ctx, mu, t)
		if err != nil {
			return nil, err
		}
		if r0 == 0 || r1 == 0 {
			return nil, fmt.Errorf("%w: reserves (%d, %d) with issuance %d", ErrReserveDesync, r0, r1, issuance)
		}
		d.Shares, err = mulDiv(amount0, issuance, r0)
		if err != nil {
			return nil, err
		}
		d.Amount1, err = mulDiv(amount0, r1, r0)
		if err != nil {
			return nil, err
		}
		if d.Shares == 0 || d.Amount1 == 0 {
			return nil, fmt.Errorf("%w: %d of %s", ErrInvalidAmount, amount0, p.Pair.Low)
		}
	}

	low := t.For(p.Pair.Low)
	high := t.For(p.Pair.High)
	if err := checkBalance(ctx, mu, low, p.Pair.Low, depositor, d.Amount0); err != nil {
		return nil, err
	}
	if err := checkBalance(ctx, mu, high, p.Pair.High, depositor, d.Amount1); err != nil {
		return nil, err
	}

	if err := low.Transfer(ctx, mu, depositor, p.Account, d.Amount0); err != nil {
		return nil, err
	}
	if err := high.Transfer(ctx, mu, depositor, p.Account, d.Amount1); err != nil {
		return nil, err
	}
	if err := t.For(p.ShareID).Mint(ctx, mu, depositor, d.Shares); err != nil {
		return nil, err
	}
	return d, nil
}

// checkDepositor rejects pool reserve accounts. Their balances belong to a
// pool, and transfers into their own pool are no-ops.
func checkDepositor(depositor codec.Address) error {
	if depositor[0] == consts.RESERVEID {
		return fmt.Errorf("%w: %s", ErrReserveDepositor, depositor)
	}
	return nil
}

func checkBalance(ctx context.Context, im state.Immutable, l tokens.Ledger, id codec.AssetID, who codec.Address, amount uint64) error {
	bal, err := l.Balance(ctx, im, who)
	if err != nil {
		return err
	}
	if bal < amount {
		return fmt.Errorf("%w: token %s has %d < %d", ErrInsufficientBalance, id, bal, amount)
	}
	return nil
}

// mulDiv returns floor(a * b / c) for c > 0.
func mulDiv(a uint64, b uint64, c uint64) (uint64, error) {
	v := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	v.Div(v, uint256.NewInt(c))
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: %d * %d / %d", ErrOverflow, a, b, c)
	}
	return v.Uint64(), nil
}
