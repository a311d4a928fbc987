// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/consts"
	"github.com/ava-labs/decksvm/dex"
	"github.com/ava-labs/decksvm/pebble"
	"github.com/ava-labs/decksvm/storage"
	"github.com/ava-labs/decksvm/trace"
)

const (
	DefaultLPTokenMinimumBalance = 1
	DefaultLPTokenDecimals       = 12
	DefaultNativeSymbol          = "UNIT"
	DefaultNativeDecimals        = 12
)

var (
	ErrEmptyNamespace         = errors.New("namespace is empty")
	ErrReservedNamespace      = errors.New("namespace is reserved")
	ErrZeroLPMinimumBalance   = errors.New("lp token minimum balance is zero")
	ErrInvalidLPTokenDecimals = errors.New("invalid lp token decimals")
	ErrInvalidNativeSymbol    = errors.New("invalid native symbol")
	ErrInvalidNativeDecimals  = errors.New("invalid native decimals")
)

type Config struct {
	LogLevel logging.Level `json:"logLevel"`

	// Namespace seeds the module account and every pool reserve account.
	Namespace string `json:"namespace"`

	NativeTokenID  codec.AssetID `json:"nativeTokenID"`
	NativeSymbol   string        `json:"nativeSymbol"`
	NativeDecimals uint8         `json:"nativeDecimals"`

	LPTokenMinimumBalance uint64 `json:"lpTokenMinimumBalance"`
	LPTokenDecimals       uint8  `json:"lpTokenDecimals"`

	Pebble pebble.Config `json:"pebble"`
	Trace  trace.Config  `json:"trace"`
}

// New applies the values in [b] on top of the defaults.
func New(b []byte) (*Config, error) {
	c := &Config{
		LogLevel:              logging.Info,
		Namespace:             consts.DefaultNamespace,
		NativeSymbol:          DefaultNativeSymbol,
		NativeDecimals:        DefaultNativeDecimals,
		LPTokenMinimumBalance: DefaultLPTokenMinimumBalance,
		LPTokenDecimals:       DefaultLPTokenDecimals,
		Pebble:                pebble.NewDefaultConfig(),
		Trace:                 trace.NewDefaultConfig(),
	}

	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Verify() error {
	if len(c.Namespace) == 0 {
		return ErrEmptyNamespace
	}
	// Storage metrics are gathered under the namespace, next to the
	// controller's metrics under [consts.Name].
	if c.Namespace == consts.Name || strings.HasPrefix(c.Namespace, consts.Name+"_") {
		return fmt.Errorf("%w: %q", ErrReservedNamespace, c.Namespace)
	}
	if c.LPTokenMinimumBalance == 0 {
		return ErrZeroLPMinimumBalance
	}
	if c.LPTokenDecimals > storage.MaxAssetDecimals {
		return fmt.Errorf("%w: %d > %d", ErrInvalidLPTokenDecimals, c.LPTokenDecimals, storage.MaxAssetDecimals)
	}
	if c.NativeDecimals > storage.MaxAssetDecimals {
		return fmt.Errorf("%w: %d > %d", ErrInvalidNativeDecimals, c.NativeDecimals, storage.MaxAssetDecimals)
	}
	if c.Trace.Enabled && len(c.Trace.Endpoint) == 0 {
		return trace.ErrMissingEndpoint
	}
	if len(c.NativeSymbol) == 0 || len(c.NativeSymbol) > storage.MaxAssetSymbolSize {
		return fmt.Errorf("%w: %q", ErrInvalidNativeSymbol, c.NativeSymbol)
	}
	return nil
}

func (c *Config) DexConfig() dex.Config {
	return dex.Config{
		Namespace:             c.Namespace,
		LPTokenMinimumBalance: c.LPTokenMinimumBalance,
		LPTokenDecimals:       c.LPTokenDecimals,
	}
}
