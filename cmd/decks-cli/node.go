// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/decksvm/config"
	"github.com/ava-labs/decksvm/consts"
	"github.com/ava-labs/decksvm/controller"
	"github.com/ava-labs/decksvm/dex"
	"github.com/ava-labs/decksvm/event"
	"github.com/ava-labs/decksvm/pebble"
	"github.com/ava-labs/decksvm/storage"
	"github.com/ava-labs/decksvm/trace"
	"github.com/ava-labs/decksvm/utils"

	ametrics "github.com/ava-labs/avalanchego/api/metrics"
	avatrace "github.com/ava-labs/avalanchego/trace"
)

const (
	dataFolder = "data"
	logsFolder = "logs"
)

// node is a controller backed by the on-disk database of the CLI.
type node struct {
	log        logging.Logger
	logs       *logFactory
	tracer     avatrace.Tracer
	db         *pebble.Database
	controller *controller.Controller
}

func loadChainConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := getConfigValue(cmd, "config", false)
	if err != nil {
		return nil, err
	}
	var b []byte
	if len(path) > 0 {
		b, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	cfg, err := config.New(b)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, err := getConfigValue(cmd, "log-level", false)
	if err != nil {
		return nil, err
	}
	if len(level) > 0 {
		cfg.LogLevel, err = logging.ToLevel(level)
		if err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func openNode(cmd *cobra.Command) (*node, error) {
	cfg, err := loadChainConfig(cmd)
	if err != nil {
		return nil, err
	}
	dataDir, err := getConfigValue(cmd, "data-dir", false)
	if err != nil {
		return nil, err
	}
	if len(dataDir) == 0 {
		dataDir = cliDir
	}
	isJSON, err := isJSONOutputRequested(cmd)
	if err != nil {
		return nil, err
	}

	logDir, err := utils.InitSubDirectory(dataDir, logsFolder)
	if err != nil {
		return nil, err
	}
	loggingConfig := logging.Config{
		DisplayLevel: cfg.LogLevel,
		LogLevel:     cfg.LogLevel,
		LogFormat:    logging.JSON,
		// Keep stdout parseable when JSON output is requested.
		DisableWriterDisplaying: isJSON,
	}
	loggingConfig.Directory = logDir
	n := &node{logs: newLogFactory(loggingConfig)}
	n.log, err = n.logs.Make(consts.Name)
	if err != nil {
		n.logs.Close()
		return nil, err
	}

	n.tracer, err = trace.New(cfg.Trace)
	if err != nil {
		return nil, errors.Join(err, n.Close())
	}
	gatherer := ametrics.NewPrefixGatherer()
	n.db, err = storage.New(cfg.Pebble, filepath.Join(dataDir, dataFolder), cfg.Namespace, gatherer)
	if err != nil {
		return nil, errors.Join(err, n.Close())
	}

	var subs []event.SubscriptionFactory[dex.Event]
	if !isJSON {
		subs = append(subs, event.SubscriptionFuncFactory[dex.Event]{
			AcceptF: func(_ context.Context, e dex.Event) error {
				utils.Outf("{{yellow}}event:{{/}} %s\n", e.Name())
				return nil
			},
		})
	}
	n.controller, err = controller.New(n.log, n.tracer, cfg, n.db, gatherer, subs...)
	if err != nil {
		return nil, errors.Join(err, n.Close())
	}
	n.log.Debug("opened database",
		zap.String("dataDir", dataDir),
		zap.String("namespace", cfg.Namespace),
	)
	return n, nil
}

func (n *node) Close() error {
	var errs []error
	if n.controller != nil {
		errs = append(errs, n.controller.Close())
	}
	if n.db != nil {
		errs = append(errs, n.db.Close())
	}
	if n.tracer != nil {
		errs = append(errs, n.tracer.Close())
	}
	n.logs.Close()
	return errors.Join(errs...)
}

// withNode opens the node for the duration of [f].
func withNode(cmd *cobra.Command, f func(ctx context.Context, n *node) error) (err error) {
	n, err := openNode(cmd)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, n.Close())
	}()
	return f(cmd.Context(), n)
}
