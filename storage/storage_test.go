// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/consts"
	"github.com/ava-labs/decksvm/state"
	"github.com/ava-labs/decksvm/tstate"
)

var (
	alice = codec.CreateAddress(consts.ED25519ID, [32]byte{1})
	bob   = codec.CreateAddress(consts.ED25519ID, [32]byte{2})
)

func TestNativeBalance(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	bal, err := GetNativeBalance(ctx, mu, alice)
	require.NoError(err)
	require.Zero(bal)

	nbal, err := AddNativeBalance(ctx, mu, alice, 100)
	require.NoError(err)
	require.Equal(uint64(100), nbal)

	_, err = SubNativeBalance(ctx, mu, alice, 101)
	require.ErrorIs(err, ErrInvalidBalance)

	nbal, err = SubNativeBalance(ctx, mu, alice, 100)
	require.NoError(err)
	require.Zero(nbal)

	// Empty balances are removed from state.
	require.Empty(mu)
}

func TestAssetBalanceOverflow(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	require.NoError(SetAssetBalance(ctx, mu, 7, bob, consts.MaxUint64))
	_, err := AddAssetBalance(ctx, mu, 7, bob, 1)
	require.ErrorIs(err, ErrInvalidBalance)

	// Balances are scoped per asset.
	bal, err := GetAssetBalance(ctx, mu, 8, bob)
	require.NoError(err)
	require.Zero(bal)
}

func TestAssetRoundTrip(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	_, exists, err := GetAsset(ctx, mu, 3)
	require.NoError(err)
	require.False(exists)

	info := &AssetInfo{
		Owner:      alice,
		Sufficient: true,
		MinBalance: 1,
		Supply:     500,
		Decimals:   12,
		Name:       []byte("ab"),
		Symbol:     []byte("ab"),
	}
	require.NoError(SetAsset(ctx, mu, 3, info))

	got, exists, err := GetAsset(ctx, mu, 3)
	require.NoError(err)
	require.True(exists)
	require.Equal(info, got)
}

func TestAssetMetadataLimits(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	info := &AssetInfo{Owner: alice, Symbol: make([]byte, MaxAssetSymbolSize+1)}
	require.ErrorIs(SetAsset(ctx, mu, 1, info), ErrInvalidRecord)

	info = &AssetInfo{Owner: alice, Decimals: MaxAssetDecimals + 1}
	require.ErrorIs(SetAsset(ctx, mu, 1, info), ErrInvalidRecord)
}

func TestAssetRecordFitsChunks(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	// A maximal record must be accepted by a chunk-checking view.
	view := tstate.New(0).NewView(state.ImmutableStorage{})
	info := &AssetInfo{
		Owner:    alice,
		Decimals: MaxAssetDecimals,
		Name:     make([]byte, MaxAssetNameSize),
		Symbol:   make([]byte, MaxAssetSymbolSize),
	}
	require.NoError(SetAsset(ctx, view, 1, info))
}

func TestLiquidityPoolRoundTrip(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	view := tstate.New(0).NewView(state.ImmutableStorage{})

	_, _, exists, err := GetLiquidityPool(ctx, view, 1, 2)
	require.NoError(err)
	require.False(exists)

	account := ReserveAddress(consts.DefaultNamespace, codec.MaxAssetID)
	require.NoError(SetLiquidityPool(ctx, view, 1, 2, codec.MaxAssetID, account))

	shareID, got, exists, err := GetLiquidityPool(ctx, view, 1, 2)
	require.NoError(err)
	require.True(exists)
	require.Equal(codec.MaxAssetID, shareID)
	require.Equal(account, got)

	// The key is ordered; the reverse pair is a different record.
	_, _, exists, err = GetLiquidityPool(ctx, view, 2, 1)
	require.NoError(err)
	require.False(exists)
}

func TestNextShareID(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	_, exists, err := GetNextShareID(ctx, mu)
	require.NoError(err)
	require.False(exists)

	require.NoError(SetNextShareID(ctx, mu, codec.MaxAssetID-1))
	id, exists, err := GetNextShareID(ctx, mu)
	require.NoError(err)
	require.True(exists)
	require.Equal(codec.MaxAssetID-1, id)
}

func TestDerivedAddresses(t *testing.T) {
	require := require.New(t)

	module := ModuleAddress(consts.DefaultNamespace)
	require.Equal(module, ModuleAddress(consts.DefaultNamespace))
	require.NotEqual(module, ModuleAddress("other"))

	r1 := ReserveAddress(consts.DefaultNamespace, 1)
	r2 := ReserveAddress(consts.DefaultNamespace, 2)
	require.NotEqual(r1, r2)
	require.NotEqual(module, r1)
	require.Equal(r1, ReserveAddress(consts.DefaultNamespace, 1))
}

func TestGenesisMarker(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	loaded, err := GetGenesisLoaded(ctx, mu)
	require.NoError(err)
	require.False(loaded)

	require.NoError(SetGenesisLoaded(ctx, mu))
	loaded, err = GetGenesisLoaded(ctx, mu)
	require.NoError(err)
	require.True(loaded)
}
