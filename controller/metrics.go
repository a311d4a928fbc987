// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/decksvm/consts"

	ametrics "github.com/ava-labs/avalanchego/api/metrics"
)

type metrics struct {
	poolsCreated   prometheus.Counter
	liquidityAdded prometheus.Counter
	depositsFailed prometheus.Counter
	sharesMinted   prometheus.Counter

	notifyFailures prometheus.Counter
}

func newMetrics(gatherer ametrics.MultiGatherer) (*metrics, error) {
	m := &metrics{
		poolsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dex",
			Name:      "pools_created",
			Help:      "number of liquidity pools created",
		}),
		liquidityAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dex",
			Name:      "liquidity_added",
			Help:      "number of successful deposits",
		}),
		depositsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dex",
			Name:      "deposits_failed",
			Help:      "number of rejected deposits",
		}),
		sharesMinted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dex",
			Name:      "shares_minted",
			Help:      "number of share token units minted",
		}),
		notifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dex",
			Name:      "notify_failures",
			Help:      "number of events a subscriber failed to accept",
		}),
	}
	r := prometheus.NewRegistry()
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.poolsCreated),
		r.Register(m.liquidityAdded),
		r.Register(m.depositsFailed),
		r.Register(m.sharesMinted),
		r.Register(m.notifyFailures),
		gatherer.Register(consts.Name, r),
	)
	return m, errs.Err
}
