// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/decksvm/assets"
	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/config"
	"github.com/ava-labs/decksvm/dex"
	"github.com/ava-labs/decksvm/event"
	"github.com/ava-labs/decksvm/genesis"
	"github.com/ava-labs/decksvm/ledger"
	"github.com/ava-labs/decksvm/state"
	"github.com/ava-labs/decksvm/storage"
	"github.com/ava-labs/decksvm/tokens"

	ametrics "github.com/ava-labs/avalanchego/api/metrics"
)

// Controller wires the liquidity pool logic to persistent state, metrics,
// and event subscribers.
type Controller struct {
	log    logging.Logger
	tracer trace.Tracer
	config *config.Config

	ledger   *ledger.Ledger
	registry *assets.Registry
	router   *tokens.Router
	dex      *dex.Dex

	metrics       *metrics
	subscriptions []event.Subscription[dex.Event]
}

func New(
	log logging.Logger,
	tracer trace.Tracer,
	cfg *config.Config,
	db ledger.Database,
	gatherer ametrics.MultiGatherer,
	factories ...event.SubscriptionFactory[dex.Event],
) (*Controller, error) {
	m, err := newMetrics(gatherer)
	if err != nil {
		return nil, err
	}
	subscriptions := make([]event.Subscription[dex.Event], 0, len(factories))
	for _, f := range factories {
		sub, err := f.New()
		if err != nil {
			return nil, errors.Join(err, event.CloseAll(subscriptions...))
		}
		subscriptions = append(subscriptions, sub)
	}

	registry := assets.NewRegistry(cfg.NativeTokenID)
	router := tokens.NewRouter(cfg.NativeTokenID, []byte(cfg.NativeSymbol), registry)
	return &Controller{
		log:           log,
		tracer:        tracer,
		config:        cfg,
		ledger:        ledger.New(log, tracer, db),
		registry:      registry,
		router:        router,
		dex:           dex.New(log, cfg.DexConfig(), registry, router),
		metrics:       m,
		subscriptions: subscriptions,
	}, nil
}

func (c *Controller) ModuleAccount() codec.Address {
	return c.dex.ModuleAccount()
}

// LoadGenesis applies [g] in a single transition.
func (c *Controller) LoadGenesis(ctx context.Context, g *genesis.Genesis) error {
	if err := c.ledger.Execute(ctx, "Genesis", func(ctx context.Context, mu state.Mutable) error {
		return g.Load(ctx, c.tracer, mu, c.registry, c.dex)
	}); err != nil {
		return err
	}
	c.log.Info("loaded genesis",
		zap.Int("assets", len(g.Assets)),
		zap.Int("allocations", len(g.CustomAllocation)),
		zap.Int("pools", len(g.LiquidityPools)),
	)
	return nil
}

type AddLiquidityRequest struct {
	Token0    codec.AssetID `json:"token0"`
	Amount0   uint64        `json:"amount0"`
	Token1    codec.AssetID `json:"token1"`
	Amount1   uint64        `json:"amount1"`
	Requester codec.Address `json:"requester"`
}

// CreateOrJoinPool executes [req] atomically and, once committed, notifies
// every subscriber of the resulting events. Subscriber failures are logged
// and do not affect the result.
func (c *Controller) CreateOrJoinPool(ctx context.Context, req *AddLiquidityRequest) (*dex.Result, error) {
	var result *dex.Result
	err := c.ledger.Execute(ctx, "CreateOrJoinPool", func(ctx context.Context, mu state.Mutable) error {
		r, err := c.dex.CreateOrJoinPool(ctx, mu, req.Token0, req.Token1, req.Amount0, req.Amount1, req.Requester)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		c.metrics.depositsFailed.Inc()
		c.log.Info("rejected deposit",
			zap.Stringer("token0", req.Token0),
			zap.Stringer("token1", req.Token1),
			zap.Stringer("requester", req.Requester),
			zap.Error(err),
		)
		return nil, err
	}

	if result.Created {
		c.metrics.poolsCreated.Inc()
	}
	c.metrics.liquidityAdded.Inc()
	c.metrics.sharesMinted.Add(float64(result.Deposit.Shares))
	for _, e := range result.Events {
		if err := event.NotifyAll(ctx, e, c.subscriptions...); err != nil {
			c.metrics.notifyFailures.Inc()
			c.log.Warn("failed to notify subscribers",
				zap.String("event", e.Name()),
				zap.Error(err),
			)
		}
	}
	c.log.Info("added liquidity",
		zap.Stringer("pair", result.Pool.Pair),
		zap.Stringer("shareID", result.Pool.ShareID),
		zap.Bool("created", result.Created),
		zap.Uint64("shares", result.Deposit.Shares),
	)
	return result, nil
}

// PoolInfo is a snapshot of a pool and its reserves.
type PoolInfo struct {
	Pool     *dex.LiquidityPool `json:"pool"`
	Reserve0 uint64             `json:"reserve0"`
	Reserve1 uint64             `json:"reserve1"`
	Issuance uint64             `json:"issuance"`
}

func (c *Controller) Pool(ctx context.Context, token0 codec.AssetID, token1 codec.AssetID) (*PoolInfo, error) {
	pair, err := dex.NewPair(token0, token1)
	if err != nil {
		return nil, err
	}
	var info PoolInfo
	if err := c.ledger.Read(ctx, func(ctx context.Context, im state.Immutable) error {
		pool, err := c.dex.GetPool(ctx, im, pair)
		if err != nil {
			return err
		}
		info.Pool = pool
		info.Reserve0, info.Reserve1, err = pool.Reserves(ctx, im, c.router)
		if err != nil {
			return err
		}
		info.Issuance, err = c.registry.TotalIssuance(ctx, im, pool.ShareID)
		return err
	}); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Controller) Balance(ctx context.Context, asset codec.AssetID, addr codec.Address) (uint64, error) {
	var bal uint64
	err := c.ledger.Read(ctx, func(ctx context.Context, im state.Immutable) error {
		var err error
		bal, err = c.router.For(asset).Balance(ctx, im, addr)
		return err
	})
	return bal, err
}

func (c *Controller) Issuance(ctx context.Context, asset codec.AssetID) (uint64, error) {
	var supply uint64
	err := c.ledger.Read(ctx, func(ctx context.Context, im state.Immutable) error {
		var err error
		supply, err = c.router.TotalIssuance(ctx, im, asset)
		return err
	})
	return supply, err
}

// Decimals returns the display precision of [asset].
func (c *Controller) Decimals(ctx context.Context, asset codec.AssetID) (uint8, error) {
	if c.router.IsNative(asset) {
		return c.config.NativeDecimals, nil
	}
	var decimals uint8
	err := c.ledger.Read(ctx, func(ctx context.Context, im state.Immutable) error {
		var err error
		decimals, err = c.registry.Decimals(ctx, im, asset)
		return err
	})
	return decimals, err
}

func (c *Controller) Asset(ctx context.Context, asset codec.AssetID) (*storage.AssetInfo, error) {
	var info *storage.AssetInfo
	err := c.ledger.Read(ctx, func(ctx context.Context, im state.Immutable) error {
		var err error
		info, err = c.registry.Info(ctx, im, asset)
		return err
	})
	return info, err
}

// Close closes every subscriber.
func (c *Controller) Close() error {
	return event.CloseAll(c.subscriptions...)
}
