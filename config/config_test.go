// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/consts"
	"github.com/ava-labs/decksvm/trace"
)

func TestDefaults(t *testing.T) {
	require := require.New(t)

	c, err := New(nil)
	require.NoError(err)
	require.Equal(logging.Info, c.LogLevel)
	require.Equal(consts.DefaultNamespace, c.Namespace)
	require.Equal(codec.AssetID(0), c.NativeTokenID)
	require.Equal(uint64(DefaultLPTokenMinimumBalance), c.LPTokenMinimumBalance)
	require.Equal(uint8(DefaultLPTokenDecimals), c.LPTokenDecimals)
	require.True(c.Pebble.Sync)
	require.False(c.Trace.Enabled)

	d := c.DexConfig()
	require.Equal(c.Namespace, d.Namespace)
	require.Equal(c.LPTokenMinimumBalance, d.LPTokenMinimumBalance)
	require.Equal(c.LPTokenDecimals, d.LPTokenDecimals)
}

func TestOverrides(t *testing.T) {
	require := require.New(t)

	c, err := New([]byte(`{
		"logLevel": "debug",
		"namespace": "testdex",
		"nativeTokenID": 7,
		"lpTokenMinimumBalance": 5,
		"lpTokenDecimals": 6,
		"pebble": {"sync": false}
	}`))
	require.NoError(err)
	require.Equal(logging.Debug, c.LogLevel)
	require.Equal("testdex", c.Namespace)
	require.Equal(codec.AssetID(7), c.NativeTokenID)
	require.Equal(uint64(5), c.LPTokenMinimumBalance)
	require.Equal(uint8(6), c.LPTokenDecimals)
	require.False(c.Pebble.Sync)
	// Unset nested fields keep their defaults.
	require.Equal(int64(64*1024*1024), c.Pebble.CacheSize)
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr error
	}{
		{name: "empty namespace", config: `{"namespace": ""}`, wantErr: ErrEmptyNamespace},
		{name: "namespace shared with controller metrics", config: `{"namespace": "DecksVM"}`, wantErr: ErrReservedNamespace},
		{name: "namespace nested under controller metrics", config: `{"namespace": "DecksVM_pebble"}`, wantErr: ErrReservedNamespace},
		{name: "zero minimum balance", config: `{"lpTokenMinimumBalance": 0}`, wantErr: ErrZeroLPMinimumBalance},
		{name: "too many decimals", config: `{"lpTokenDecimals": 19}`, wantErr: ErrInvalidLPTokenDecimals},
		{name: "empty native symbol", config: `{"nativeSymbol": ""}`, wantErr: ErrInvalidNativeSymbol},
		{name: "too many native decimals", config: `{"nativeDecimals": 19}`, wantErr: ErrInvalidNativeDecimals},
		{name: "tracing without endpoint", config: `{"trace": {"enabled": true, "endpoint": ""}}`, wantErr: trace.ErrMissingEndpoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]byte(tt.config))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := New([]byte(`{`))
	require.Error(t, err)
}
