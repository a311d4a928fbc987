// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/dex"
	"github.com/ava-labs/decksvm/state"
	"github.com/ava-labs/decksvm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// AssetRegistry creates the assets declared in genesis.
type AssetRegistry interface {
	Create(ctx context.Context, mu state.Mutable, id codec.AssetID, owner codec.Address, sufficient bool, minBalance uint64) error
	SetMetadata(ctx context.Context, mu state.Mutable, id codec.AssetID, actor codec.Address, name []byte, symbol []byte, decimals uint8) error
}

type Asset struct {
	ID codec.AssetID `json:"id"`
	// Defaults to the module account when unset.
	Owner      *codec.Address `json:"owner,omitempty"`
	Name       string         `json:"name"`
	Symbol     string         `json:"symbol"`
	Decimals   uint8          `json:"decimals"`
	MinBalance uint64         `json:"minBalance"`
}

type CustomAllocation struct {
	Address codec.Address `json:"address"`
	Asset   codec.AssetID `json:"asset"`
	Balance uint64        `json:"balance"`
}

type LiquidityPool struct {
	Token0  codec.AssetID `json:"token0"`
	Amount0 uint64        `json:"amount0"`
	Token1  codec.AssetID `json:"token1"`
	Amount1 uint64        `json:"amount1"`
	// Defaults to the module account when unset.
	Provider *codec.Address `json:"provider,omitempty"`
}

type Genesis struct {
	Assets           []*Asset            `json:"assets"`
	CustomAllocation []*CustomAllocation `json:"customAllocation"`
	LiquidityPools   []*LiquidityPool    `json:"liquidityPools"`
}

func Default() *Genesis {
	return &Genesis{}
}

func New(b []byte) (*Genesis, error) {
	g := Default()
	if len(b) > 0 {
		if err := json.Unmarshal(b, g); err != nil {
			return nil, fmt.Errorf("failed to unmarshal genesis %s: %w", string(b), err)
		}
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}

// Verify checks everything that can be checked without state.
func (g *Genesis) Verify() error {
	seen := make(map[codec.AssetID]struct{}, len(g.Assets))
	for _, a := range g.Assets {
		if _, ok := seen[a.ID]; ok {
			return fmt.Errorf("%w: %w: %s", ErrGenesis, ErrDuplicateAsset, a.ID)
		}
		seen[a.ID] = struct{}{}
		if len(a.Name) > storage.MaxAssetNameSize || len(a.Symbol) > storage.MaxAssetSymbolSize || a.Decimals > storage.MaxAssetDecimals {
			return fmt.Errorf("%w: %w: %s", ErrGenesis, ErrInvalidMetadata, a.ID)
		}
	}
	for i, p := range g.LiquidityPools {
		if _, err := dex.NewPair(p.Token0, p.Token1); err != nil {
			return fmt.Errorf("%w: %w %d: %w", ErrGenesis, ErrInvalidPool, i, err)
		}
		if p.Amount0 == 0 || p.Amount1 == 0 {
			return fmt.Errorf("%w: %w %d: %w", ErrGenesis, ErrInvalidPool, i, dex.ErrAmountZero)
		}
	}
	if _, err := g.Supply(); err != nil {
		return err
	}
	return nil
}

// Supply returns the total allocation of every asset.
func (g *Genesis) Supply() (map[codec.AssetID]uint64, error) {
	supply := make(map[codec.AssetID]uint64)
	for _, alloc := range g.CustomAllocation {
		s, err := smath.Add(supply[alloc.Asset], alloc.Balance)
		if err != nil {
			return nil, fmt.Errorf("%w: %w: %s", ErrGenesis, ErrSupplyOverflow, alloc.Asset)
		}
		supply[alloc.Asset] = s
	}
	return supply, nil
}

// AllocatedAssets returns the ids of every allocated asset in ascending
// order.
func (g *Genesis) AllocatedAssets() ([]codec.AssetID, error) {
	supply, err := g.Supply()
	if err != nil {
		return nil, err
	}
	ids := maps.Keys(supply)
	slices.Sort(ids)
	return ids, nil
}

// Load creates the genesis assets, credits allocations, and then seeds
// each liquidity pool in list order. A state can only be initialized once.
// Any failure is wrapped in [ErrGenesis]; the caller must discard [mu].
func (g *Genesis) Load(ctx context.Context, tracer trace.Tracer, mu state.Mutable, registry AssetRegistry, d *dex.Dex) error {
	ctx, span := tracer.Start(ctx, "Genesis.Load")
	defer span.End()

	if err := g.Verify(); err != nil {
		return err
	}
	loaded, err := storage.GetGenesisLoaded(ctx, mu)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGenesis, err)
	}
	if loaded {
		return fmt.Errorf("%w: %w", ErrGenesis, ErrAlreadyLoaded)
	}
	module := d.ModuleAccount()

	for _, a := range g.Assets {
		owner := module
		if a.Owner != nil {
			owner = *a.Owner
		}
		if err := registry.Create(ctx, mu, a.ID, owner, true, a.MinBalance); err != nil {
			return fmt.Errorf("%w: asset %s: %w", ErrGenesis, a.ID, err)
		}
		if err := registry.SetMetadata(ctx, mu, a.ID, owner, []byte(a.Name), []byte(a.Symbol), a.Decimals); err != nil {
			return fmt.Errorf("%w: asset %s: %w", ErrGenesis, a.ID, err)
		}
	}

	for _, alloc := range g.CustomAllocation {
		if err := d.Tokens().For(alloc.Asset).Mint(ctx, mu, alloc.Address, alloc.Balance); err != nil {
			return fmt.Errorf("%w: allocation addr=%s asset=%s bal=%d: %w", ErrGenesis, alloc.Address, alloc.Asset, alloc.Balance, err)
		}
	}

	for i, p := range g.LiquidityPools {
		provider := module
		if p.Provider != nil {
			provider = *p.Provider
		}
		if _, err := d.CreateOrJoinPool(ctx, mu, p.Token0, p.Token1, p.Amount0, p.Amount1, provider); err != nil {
			return fmt.Errorf("%w: pool %d (%s/%s): %w", ErrGenesis, i, p.Token0, p.Token1, err)
		}
	}

	if err := storage.SetGenesisLoaded(ctx, mu); err != nil {
		return fmt.Errorf("%w: %w", ErrGenesis, err)
	}

	span.SetAttributes(
		attribute.Int("assets", len(g.Assets)),
		attribute.Int("allocations", len(g.CustomAllocation)),
		attribute.Int("pools", len(g.LiquidityPools)),
	)
	return nil
}
