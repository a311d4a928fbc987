// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tokens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/decksvm/assets"
	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/consts"
	"github.com/ava-labs/decksvm/state"
)

const (
	nativeID codec.AssetID = 0
	dotID    codec.AssetID = 1
)

var (
	alice = codec.CreateAddress(consts.ED25519ID, [32]byte{1})
	bob   = codec.CreateAddress(consts.ED25519ID, [32]byte{2})
)

func newRouter(t *testing.T) (*Router, state.Mutable) {
	ctx := context.Background()
	registry := assets.NewRegistry(nativeID)
	mu := state.MutableStorage{}
	require.NoError(t, registry.Create(ctx, mu, dotID, alice, true, 1))
	require.NoError(t, registry.SetMetadata(ctx, mu, dotID, alice, []byte("Polkadot"), []byte("DOT"), 10))
	return NewRouter(nativeID, []byte("UNIT"), registry), mu
}

func TestRouterSelectsLedger(t *testing.T) {
	require := require.New(t)
	r, _ := newRouter(t)

	require.True(r.IsNative(nativeID))
	require.IsType(Native{}, r.For(nativeID))
	l := r.For(dotID)
	require.IsType(&Asset{}, l)
	require.Equal(dotID, l.(*Asset).ID())
}

func TestRouterExistsAndSymbol(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	r, mu := newRouter(t)

	for id, want := range map[codec.AssetID]bool{nativeID: true, dotID: true, 2: false} {
		exists, err := r.Exists(ctx, mu, id)
		require.NoError(err)
		require.Equal(want, exists, "asset %d", id)
	}

	symbol, err := r.Symbol(ctx, mu, nativeID)
	require.NoError(err)
	require.Equal([]byte("UNIT"), symbol)
	symbol, err = r.Symbol(ctx, mu, dotID)
	require.NoError(err)
	require.Equal([]byte("DOT"), symbol)
}

func TestNativeTransfer(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	r, mu := newRouter(t)
	native := r.For(nativeID)

	require.NoError(native.Mint(ctx, mu, alice, 50))
	require.ErrorIs(native.Transfer(ctx, mu, alice, bob, 51), ErrInsufficientBalance)
	require.NoError(native.Transfer(ctx, mu, alice, bob, 20))

	bal, err := native.Balance(ctx, mu, alice)
	require.NoError(err)
	require.Equal(uint64(30), bal)
	bal, err = native.Balance(ctx, mu, bob)
	require.NoError(err)
	require.Equal(uint64(20), bal)
}

func TestAssetLedgerDelegates(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	r, mu := newRouter(t)
	dot := r.For(dotID)

	require.NoError(dot.Mint(ctx, mu, alice, 10))
	require.NoError(dot.Transfer(ctx, mu, alice, bob, 4))
	require.ErrorIs(dot.Transfer(ctx, mu, alice, bob, 7), assets.ErrInsufficientFunds)

	bal, err := dot.Balance(ctx, mu, bob)
	require.NoError(err)
	require.Equal(uint64(4), bal)

	// The native balance is untouched by asset transfers.
	bal, err = r.For(nativeID).Balance(ctx, mu, bob)
	require.NoError(err)
	require.Zero(bal)
}

func TestRouterIssuance(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	r, mu := newRouter(t)

	require.NoError(r.For(dotID).Mint(ctx, mu, bob, 25))
	supply, err := r.TotalIssuance(ctx, mu, dotID)
	require.NoError(err)
	require.Equal(uint64(25), supply)

	_, err = r.TotalIssuance(ctx, mu, nativeID)
	require.ErrorIs(err, ErrUntrackedIssuance)
}
