// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/decksvm/assets"
	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/config"
	"github.com/ava-labs/decksvm/consts"
	"github.com/ava-labs/decksvm/dex"
	"github.com/ava-labs/decksvm/event"
	"github.com/ava-labs/decksvm/genesis"
	"github.com/ava-labs/decksvm/storage"

	ametrics "github.com/ava-labs/avalanchego/api/metrics"
)

const (
	dotID codec.AssetID = 1
	ksmID codec.AssetID = 2
)

var (
	alice = codec.CreateAddress(consts.ED25519ID, [32]byte{1})
	bob   = codec.CreateAddress(consts.ED25519ID, [32]byte{2})

	errSubscriber = errors.New("subscriber failed")
)

func newController(t *testing.T, factories ...event.SubscriptionFactory[dex.Event]) *Controller {
	require := require.New(t)

	cfg, err := config.New(nil)
	require.NoError(err)
	c, err := New(logging.NoLog{}, trace.Noop, cfg, memdb.New(), ametrics.NewPrefixGatherer(), factories...)
	require.NoError(err)
	t.Cleanup(func() { require.NoError(c.Close()) })
	return c
}

func testGenesis() *genesis.Genesis {
	return &genesis.Genesis{
		Assets: []*genesis.Asset{
			{ID: dotID, Name: "Polkadot", Symbol: "DOT", Decimals: 10, MinBalance: 1},
			{ID: ksmID, Name: "Kusama", Symbol: "KSM", Decimals: 12, MinBalance: 1},
		},
		CustomAllocation: []*genesis.CustomAllocation{
			{Address: alice, Asset: dotID, Balance: 1_000},
			{Address: alice, Asset: ksmID, Balance: 1_000},
			{Address: bob, Asset: dotID, Balance: 1_000},
			{Address: bob, Asset: ksmID, Balance: 1_000},
		},
	}
}

func newTestController(t *testing.T, factories ...event.SubscriptionFactory[dex.Event]) *Controller {
	c := newController(t, factories...)
	require.NoError(t, c.LoadGenesis(context.Background(), testGenesis()))
	return c
}

func TestCreateOrJoinPool(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	var events []dex.Event
	c := newTestController(t, event.SubscriptionFuncFactory[dex.Event]{
		AcceptF: func(_ context.Context, e dex.Event) error {
			events = append(events, e)
			return nil
		},
	})

	// Scenario A
	r, err := c.CreateOrJoinPool(ctx, &AddLiquidityRequest{
		Token0: dotID, Amount0: 100, Token1: ksmID, Amount1: 200, Requester: alice,
	})
	require.NoError(err)
	require.True(r.Created)
	shares, err := c.Balance(ctx, r.Pool.ShareID, alice)
	require.NoError(err)
	require.Equal(uint64(100), shares)

	// Scenario B
	r, err = c.CreateOrJoinPool(ctx, &AddLiquidityRequest{
		Token0: dotID, Amount0: 50, Token1: ksmID, Amount1: 100, Requester: bob,
	})
	require.NoError(err)
	require.False(r.Created)
	shares, err = c.Balance(ctx, r.Pool.ShareID, bob)
	require.NoError(err)
	require.Equal(uint64(50), shares)

	info, err := c.Pool(ctx, ksmID, dotID)
	require.NoError(err)
	require.Equal(uint64(150), info.Reserve0)
	require.Equal(uint64(300), info.Reserve1)
	require.Equal(uint64(150), info.Issuance)

	issuance, err := c.Issuance(ctx, r.Pool.ShareID)
	require.NoError(err)
	require.Equal(uint64(150), issuance)

	asset, err := c.Asset(ctx, r.Pool.ShareID)
	require.NoError(err)
	require.Equal([]byte("DOTKSM"), asset.Symbol)
	require.Equal(c.ModuleAccount(), asset.Owner)

	decimals, err := c.Decimals(ctx, r.Pool.ShareID)
	require.NoError(err)
	require.Equal(uint8(config.DefaultLPTokenDecimals), decimals)
	decimals, err = c.Decimals(ctx, 0)
	require.NoError(err)
	require.Equal(uint8(config.DefaultNativeDecimals), decimals)

	require.Len(events, 3)
	require.Equal("LiquidityPoolCreated", events[0].Name())
	require.Equal("LiquidityAdded", events[1].Name())
	require.Equal("LiquidityAdded", events[2].Name())

	require.Equal(float64(1), testutil.ToFloat64(c.metrics.poolsCreated))
	require.Equal(float64(2), testutil.ToFloat64(c.metrics.liquidityAdded))
	require.Equal(float64(150), testutil.ToFloat64(c.metrics.sharesMinted))
	require.Zero(testutil.ToFloat64(c.metrics.depositsFailed))
}

func TestRejectedRequestLeavesNoTrace(t *testing.T) {
	tests := []struct {
		name    string
		req     *AddLiquidityRequest
		wantErr error
	}{
		{
			name:    "identical tokens",
			req:     &AddLiquidityRequest{Token0: dotID, Amount0: 10, Token1: dotID, Amount1: 10, Requester: alice},
			wantErr: dex.ErrIdenticalTokens,
		},
		{
			name:    "zero amount",
			req:     &AddLiquidityRequest{Token0: dotID, Amount0: 0, Token1: ksmID, Amount1: 10, Requester: alice},
			wantErr: dex.ErrAmountZero,
		},
		{
			name:    "insufficient balance",
			req:     &AddLiquidityRequest{Token0: dotID, Amount0: 1_001, Token1: ksmID, Amount1: 10, Requester: alice},
			wantErr: dex.ErrInsufficientBalance,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()

			var events []dex.Event
			c := newTestController(t, event.SubscriptionFuncFactory[dex.Event]{
				AcceptF: func(_ context.Context, e dex.Event) error {
					events = append(events, e)
					return nil
				},
			})

			_, err := c.CreateOrJoinPool(ctx, tt.req)
			require.ErrorIs(err, tt.wantErr)

			_, err = c.Pool(ctx, dotID, ksmID)
			require.ErrorIs(err, dex.ErrPoolNotFound)
			bal, err := c.Balance(ctx, dotID, alice)
			require.NoError(err)
			require.Equal(uint64(1_000), bal)
			require.Empty(events)
			require.Equal(float64(1), testutil.ToFloat64(c.metrics.depositsFailed))
		})
	}
}

func TestSubscriberFailureDoesNotFailRequest(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	var delivered int
	c := newTestController(t,
		event.SubscriptionFuncFactory[dex.Event]{
			AcceptF: func(context.Context, dex.Event) error { return errSubscriber },
		},
		event.SubscriptionFuncFactory[dex.Event]{
			AcceptF: func(context.Context, dex.Event) error {
				delivered++
				return nil
			},
		},
	)

	_, err := c.CreateOrJoinPool(ctx, &AddLiquidityRequest{
		Token0: dotID, Amount0: 100, Token1: ksmID, Amount1: 200, Requester: alice,
	})
	require.NoError(err)
	require.Equal(2, delivered)
	require.Equal(float64(2), testutil.ToFloat64(c.metrics.notifyFailures))
}

func TestLoadGenesisIsAtomic(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c := newController(t)

	// The first pool is valid; the second one has no funds behind it.
	g := testGenesis()
	g.LiquidityPools = []*genesis.LiquidityPool{
		{Token0: dotID, Amount0: 10, Token1: ksmID, Amount1: 10, Provider: &alice},
		{Token0: dotID, Amount0: 10, Token1: 0, Amount1: 10, Provider: &alice},
	}
	err := c.LoadGenesis(ctx, g)
	require.ErrorIs(err, genesis.ErrGenesis)
	require.ErrorIs(err, dex.ErrInsufficientBalance)

	_, err = c.Pool(ctx, dotID, ksmID)
	require.ErrorIs(err, dex.ErrPoolNotFound)
	_, err = c.Asset(ctx, dotID)
	require.ErrorIs(err, assets.ErrAssetNotFound)

	// A failed genesis leaves the ledger uninitialized.
	g.LiquidityPools = g.LiquidityPools[:1]
	require.NoError(c.LoadGenesis(ctx, g))
	_, err = c.Pool(ctx, dotID, ksmID)
	require.NoError(err)
}

func TestLoadGenesisOnce(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c := newController(t)

	g := &genesis.Genesis{CustomAllocation: []*genesis.CustomAllocation{
		{Address: alice, Asset: 0, Balance: 500},
	}}
	require.NoError(c.LoadGenesis(ctx, g))
	err := c.LoadGenesis(ctx, g)
	require.ErrorIs(err, genesis.ErrAlreadyLoaded)

	bal, err := c.Balance(ctx, 0, alice)
	require.NoError(err)
	require.Equal(uint64(500), bal)
}

func TestMetricsShareGathererWithStorage(t *testing.T) {
	require := require.New(t)

	cfg, err := config.New(nil)
	require.NoError(err)
	gatherer := ametrics.NewPrefixGatherer()
	db, err := storage.New(cfg.Pebble, t.TempDir(), cfg.Namespace, gatherer)
	require.NoError(err)
	t.Cleanup(func() { require.NoError(db.Close()) })

	c, err := New(logging.NoLog{}, trace.Noop, cfg, db, gatherer)
	require.NoError(err)
	t.Cleanup(func() { require.NoError(c.Close()) })
	require.NoError(c.LoadGenesis(context.Background(), testGenesis()))

	families, err := gatherer.Gather()
	require.NoError(err)
	require.NotEmpty(families)
}
