// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package assets

import (
	"context"
	"fmt"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/state"
	"github.com/ava-labs/decksvm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// Registry manages fungible assets other than the native token. All
// records live in state, so every mutation is undone when the enclosing
// view is rolled back.
type Registry struct {
	nativeID codec.AssetID
}

func NewRegistry(nativeID codec.AssetID) *Registry {
	return &Registry{nativeID: nativeID}
}

func (r *Registry) get(ctx context.Context, im state.Immutable, id codec.AssetID) (*storage.AssetInfo, error) {
	if id == r.nativeID {
		return nil, ErrNativeMint
	}
	info, exists, err := storage.GetAsset(ctx, im, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	return info, nil
}

// Create registers [id] with no metadata and zero supply.
func (r *Registry) Create(
	ctx context.Context,
	mu state.Mutable,
	id codec.AssetID,
	owner codec.Address,
	sufficient bool,
	minBalance uint64,
) error {
	if id == r.nativeID {
		return ErrNativeMint
	}
	if minBalance == 0 {
		return ErrMinBalanceZero
	}
	_, exists, err := storage.GetAsset(ctx, mu, id)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAssetExists, id)
	}
	return storage.SetAsset(ctx, mu, id, &storage.AssetInfo{
		Owner:      owner,
		Sufficient: sufficient,
		MinBalance: minBalance,
	})
}

// SetMetadata overwrites the name, symbol, and decimals of [id]. Only the
// owner may call it.
func (r *Registry) SetMetadata(
	ctx context.Context,
	mu state.Mutable,
	id codec.AssetID,
	actor codec.Address,
	name []byte,
	symbol []byte,
	decimals uint8,
) error {
	info, err := r.get(ctx, mu, id)
	if err != nil {
		return err
	}
	if info.Owner != actor {
		return fmt.Errorf("%w: %s", ErrNotOwner, actor)
	}
	info.Name = name
	info.Symbol = symbol
	info.Decimals = decimals
	return storage.SetAsset(ctx, mu, id, info)
}

// Freeze blocks every future transfer and mint of [id].
func (r *Registry) Freeze(ctx context.Context, mu state.Mutable, id codec.AssetID, actor codec.Address) error {
	info, err := r.get(ctx, mu, id)
	if err != nil {
		return err
	}
	if info.Owner != actor {
		return fmt.Errorf("%w: %s", ErrNotOwner, actor)
	}
	info.Frozen = true
	return storage.SetAsset(ctx, mu, id, info)
}

// Mint credits [amount] of [id] to [to] and increases the supply.
func (r *Registry) Mint(ctx context.Context, mu state.Mutable, id codec.AssetID, to codec.Address, amount uint64) error {
	info, err := r.get(ctx, mu, id)
	if err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	if info.Frozen {
		return fmt.Errorf("%w: %s", ErrAssetFrozen, id)
	}
	supply, err := smath.Add(info.Supply, amount)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSupplyOverflow, id)
	}
	bal, err := storage.GetAssetBalance(ctx, mu, id, to)
	if err != nil {
		return err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSupplyOverflow, id)
	}
	if nbal < info.MinBalance {
		return fmt.Errorf("%w: %d < %d", ErrBelowMinimumBalance, nbal, info.MinBalance)
	}
	if err := storage.SetAssetBalance(ctx, mu, id, to, nbal); err != nil {
		return err
	}
	info.Supply = supply
	return storage.SetAsset(ctx, mu, id, info)
}

// Transfer moves [amount] of [id] from [from] to [to]. Neither account may
// be left holding a nonzero balance below the asset minimum.
func (r *Registry) Transfer(
	ctx context.Context,
	mu state.Mutable,
	id codec.AssetID,
	from codec.Address,
	to codec.Address,
	amount uint64,
) error {
	info, err := r.get(ctx, mu, id)
	if err != nil {
		return err
	}
	if info.Frozen {
		return fmt.Errorf("%w: %s", ErrAssetFrozen, id)
	}
	if amount == 0 || from == to {
		return nil
	}
	fromBal, err := storage.GetAssetBalance(ctx, mu, id, from)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return fmt.Errorf("%w: %d < %d", ErrInsufficientFunds, fromBal, amount)
	}
	remaining := fromBal - amount
	if remaining > 0 && remaining < info.MinBalance {
		return fmt.Errorf("%w: sender left with %d", ErrBelowMinimumBalance, remaining)
	}
	toBal, err := storage.GetAssetBalance(ctx, mu, id, to)
	if err != nil {
		return err
	}
	// Bounded by supply, which fits a uint64.
	nbal := toBal + amount
	if nbal < info.MinBalance {
		return fmt.Errorf("%w: recipient would hold %d", ErrBelowMinimumBalance, nbal)
	}
	if err := storage.SetAssetBalance(ctx, mu, id, from, remaining); err != nil {
		return err
	}
	return storage.SetAssetBalance(ctx, mu, id, to, nbal)
}

func (*Registry) Balance(ctx context.Context, im state.Immutable, id codec.AssetID, who codec.Address) (uint64, error) {
	return storage.GetAssetBalance(ctx, im, id, who)
}

// TotalIssuance returns 0 for unknown assets.
func (r *Registry) TotalIssuance(ctx context.Context, im state.Immutable, id codec.AssetID) (uint64, error) {
	info, exists, err := storage.GetAsset(ctx, im, id)
	if err != nil || !exists {
		return 0, err
	}
	return info.Supply, nil
}

func (r *Registry) Exists(ctx context.Context, im state.Immutable, id codec.AssetID) (bool, error) {
	if id == r.nativeID {
		return false, nil
	}
	_, exists, err := storage.GetAsset(ctx, im, id)
	return exists, err
}

func (r *Registry) Symbol(ctx context.Context, im state.Immutable, id codec.AssetID) ([]byte, error) {
	info, err := r.get(ctx, im, id)
	if err != nil {
		return nil, err
	}
	return info.Symbol, nil
}

func (r *Registry) Decimals(ctx context.Context, im state.Immutable, id codec.AssetID) (uint8, error) {
	info, err := r.get(ctx, im, id)
	if err != nil {
		return 0, err
	}
	return info.Decimals, nil
}

// Info returns the full record of [id].
func (r *Registry) Info(ctx context.Context, im state.Immutable, id codec.AssetID) (*storage.AssetInfo, error) {
	return r.get(ctx, im, id)
}
