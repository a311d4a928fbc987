// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package assets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/consts"
	"github.com/ava-labs/decksvm/state"
)

const (
	nativeID codec.AssetID = 0
	dotID    codec.AssetID = 1
)

var (
	owner = codec.CreateAddress(consts.ED25519ID, [32]byte{1})
	alice = codec.CreateAddress(consts.ED25519ID, [32]byte{2})
	bob   = codec.CreateAddress(consts.ED25519ID, [32]byte{3})
)

func newRegistry(t *testing.T, minBalance uint64) (*Registry, state.Mutable) {
	r := NewRegistry(nativeID)
	mu := state.MutableStorage{}
	require.NoError(t, r.Create(context.Background(), mu, dotID, owner, true, minBalance))
	return r, mu
}

func TestCreate(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	r, mu := newRegistry(t, 1)

	exists, err := r.Exists(ctx, mu, dotID)
	require.NoError(err)
	require.True(exists)

	require.ErrorIs(r.Create(ctx, mu, dotID, owner, true, 1), ErrAssetExists)
	require.ErrorIs(r.Create(ctx, mu, nativeID, owner, true, 1), ErrNativeMint)
	require.ErrorIs(r.Create(ctx, mu, 9, owner, true, 0), ErrMinBalanceZero)

	exists, err = r.Exists(ctx, mu, nativeID)
	require.NoError(err)
	require.False(exists)
}

func TestMint(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	r, mu := newRegistry(t, 10)

	require.ErrorIs(r.Mint(ctx, mu, dotID, alice, 9), ErrBelowMinimumBalance)
	require.NoError(r.Mint(ctx, mu, dotID, alice, 10))
	require.NoError(r.Mint(ctx, mu, dotID, alice, 1))

	bal, err := r.Balance(ctx, mu, dotID, alice)
	require.NoError(err)
	require.Equal(uint64(11), bal)
	supply, err := r.TotalIssuance(ctx, mu, dotID)
	require.NoError(err)
	require.Equal(uint64(11), supply)

	require.ErrorIs(r.Mint(ctx, mu, dotID, bob, consts.MaxUint64), ErrSupplyOverflow)
	require.ErrorIs(r.Mint(ctx, mu, 5, alice, 1), ErrAssetNotFound)
	require.ErrorIs(r.Mint(ctx, mu, nativeID, alice, 1), ErrNativeMint)

	supply, err = r.TotalIssuance(ctx, mu, 5)
	require.NoError(err)
	require.Zero(supply)
}

func TestTransfer(t *testing.T) {
	tests := []struct {
		name     string
		amount   uint64
		wantErr  error
		aliceBal uint64
		bobBal   uint64
	}{
		{name: "partial", amount: 40, aliceBal: 60, bobBal: 40},
		{name: "everything", amount: 100, aliceBal: 0, bobBal: 100},
		{name: "zero", amount: 0, aliceBal: 100, bobBal: 0},
		{name: "insufficient", amount: 101, wantErr: ErrInsufficientFunds, aliceBal: 100},
		{name: "recipient dust", amount: 4, wantErr: ErrBelowMinimumBalance, aliceBal: 100},
		{name: "sender dust", amount: 97, wantErr: ErrBelowMinimumBalance, aliceBal: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()
			r, mu := newRegistry(t, 5)
			require.NoError(r.Mint(ctx, mu, dotID, alice, 100))

			err := r.Transfer(ctx, mu, dotID, alice, bob, tt.amount)
			require.ErrorIs(err, tt.wantErr)

			bal, err := r.Balance(ctx, mu, dotID, alice)
			require.NoError(err)
			require.Equal(tt.aliceBal, bal)
			bal, err = r.Balance(ctx, mu, dotID, bob)
			require.NoError(err)
			require.Equal(tt.bobBal, bal)

			// Transfers never change supply.
			supply, err := r.TotalIssuance(ctx, mu, dotID)
			require.NoError(err)
			require.Equal(uint64(100), supply)
		})
	}
}

func TestMetadataRequiresOwner(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	r, mu := newRegistry(t, 1)

	require.ErrorIs(r.SetMetadata(ctx, mu, dotID, alice, []byte("Polkadot"), []byte("DOT"), 10), ErrNotOwner)
	require.NoError(r.SetMetadata(ctx, mu, dotID, owner, []byte("Polkadot"), []byte("DOT"), 10))

	symbol, err := r.Symbol(ctx, mu, dotID)
	require.NoError(err)
	require.Equal([]byte("DOT"), symbol)
	decimals, err := r.Decimals(ctx, mu, dotID)
	require.NoError(err)
	require.Equal(uint8(10), decimals)

	info, err := r.Info(ctx, mu, dotID)
	require.NoError(err)
	require.Equal([]byte("Polkadot"), info.Name)
	require.True(info.Sufficient)

	_, err = r.Symbol(ctx, mu, 77)
	require.ErrorIs(err, ErrAssetNotFound)
}

func TestFreeze(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	r, mu := newRegistry(t, 1)
	require.NoError(r.Mint(ctx, mu, dotID, alice, 10))

	require.ErrorIs(r.Freeze(ctx, mu, dotID, alice), ErrNotOwner)
	require.NoError(r.Freeze(ctx, mu, dotID, owner))

	require.ErrorIs(r.Transfer(ctx, mu, dotID, alice, bob, 1), ErrAssetFrozen)
	require.ErrorIs(r.Mint(ctx, mu, dotID, alice, 1), ErrAssetFrozen)
}
