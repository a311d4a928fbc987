// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tokens

import (
	"context"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/state"
)

// Router resolves the [Ledger] of a token id. One id is reserved for the
// native currency; every other id is served by the asset registry.
type Router struct {
	nativeID     codec.AssetID
	nativeSymbol []byte
	registry     AssetRegistry
}

func NewRouter(nativeID codec.AssetID, nativeSymbol []byte, registry AssetRegistry) *Router {
	return &Router{
		nativeID:     nativeID,
		nativeSymbol: nativeSymbol,
		registry:     registry,
	}
}

func (r *Router) IsNative(id codec.AssetID) bool {
	return id == r.nativeID
}

func (r *Router) For(id codec.AssetID) Ledger {
	if r.IsNative(id) {
		return Native{}
	}
	return &Asset{id: id, registry: r.registry}
}

// Exists reports whether [id] can hold balances. The native currency
// always exists.
func (r *Router) Exists(ctx context.Context, im state.Immutable, id codec.AssetID) (bool, error) {
	if r.IsNative(id) {
		return true, nil
	}
	return r.registry.Exists(ctx, im, id)
}

func (r *Router) Symbol(ctx context.Context, im state.Immutable, id codec.AssetID) ([]byte, error) {
	if r.IsNative(id) {
		return r.nativeSymbol, nil
	}
	return r.registry.Symbol(ctx, im, id)
}

// TotalIssuance returns the supply of a registry-managed asset.
func (r *Router) TotalIssuance(ctx context.Context, im state.Immutable, id codec.AssetID) (uint64, error) {
	if r.IsNative(id) {
		return 0, ErrUntrackedIssuance
	}
	return r.registry.TotalIssuance(ctx, im, id)
}
