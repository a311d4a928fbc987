// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tokens

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/state"
	"github.com/ava-labs/decksvm/storage"
)

var (
	_ Ledger = (*Native)(nil)
	_ Ledger = (*Asset)(nil)

	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUntrackedIssuance   = errors.New("native issuance is not tracked")
)

//go:generate go run go.uber.org/mock/mockgen -package=tokens -destination=mock_ledger.go . Ledger

// Ledger moves balances of a single token.
type Ledger interface {
	Balance(ctx context.Context, im state.Immutable, who codec.Address) (uint64, error)
	Transfer(ctx context.Context, mu state.Mutable, from codec.Address, to codec.Address, amount uint64) error
	Mint(ctx context.Context, mu state.Mutable, to codec.Address, amount uint64) error
}

// AssetRegistry is the subset of the asset registry a [Ledger] needs.
type AssetRegistry interface {
	Balance(ctx context.Context, im state.Immutable, id codec.AssetID, who codec.Address) (uint64, error)
	Transfer(ctx context.Context, mu state.Mutable, id codec.AssetID, from codec.Address, to codec.Address, amount uint64) error
	Mint(ctx context.Context, mu state.Mutable, id codec.AssetID, to codec.Address, amount uint64) error
	Exists(ctx context.Context, im state.Immutable, id codec.AssetID) (bool, error)
	Symbol(ctx context.Context, im state.Immutable, id codec.AssetID) ([]byte, error)
	TotalIssuance(ctx context.Context, im state.Immutable, id codec.AssetID) (uint64, error)
}

// Native is the chain currency. It has no minimum balance and is never
// frozen. Mint is only used to endow accounts at genesis.
type Native struct{}

func (Native) Balance(ctx context.Context, im state.Immutable, who codec.Address) (uint64, error) {
	return storage.GetNativeBalance(ctx, im, who)
}

func (Native) Transfer(ctx context.Context, mu state.Mutable, from codec.Address, to codec.Address, amount uint64) error {
	if amount == 0 || from == to {
		return nil
	}
	bal, err := storage.GetNativeBalance(ctx, mu, from)
	if err != nil {
		return err
	}
	if bal < amount {
		return fmt.Errorf("%w: %d < %d", ErrInsufficientBalance, bal, amount)
	}
	if _, err := storage.SubNativeBalance(ctx, mu, from, amount); err != nil {
		return err
	}
	_, err = storage.AddNativeBalance(ctx, mu, to, amount)
	return err
}

func (Native) Mint(ctx context.Context, mu state.Mutable, to codec.Address, amount uint64) error {
	_, err := storage.AddNativeBalance(ctx, mu, to, amount)
	return err
}

// Asset is a registry-managed fungible asset.
type Asset struct {
	id       codec.AssetID
	registry AssetRegistry
}

func (a *Asset) ID() codec.AssetID {
	return a.id
}

func (a *Asset) Balance(ctx context.Context, im state.Immutable, who codec.Address) (uint64, error) {
	return a.registry.Balance(ctx, im, a.id, who)
}

func (a *Asset) Transfer(ctx context.Context, mu state.Mutable, from codec.Address, to codec.Address, amount uint64) error {
	return a.registry.Transfer(ctx, mu, a.id, from, to, amount)
}

func (a *Asset) Mint(ctx context.Context, mu state.Mutable, to codec.Address, amount uint64) error {
	return a.registry.Mint(ctx, mu, a.id, to, amount)
}
