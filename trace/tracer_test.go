// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	avatrace "github.com/ava-labs/avalanchego/trace"
)

func TestDisabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(Config{})
	require.NoError(err)
	require.Equal(avatrace.Noop, tracer)
	_, span := tracer.Start(context.Background(), "test")
	require.False(span.IsRecording())
	span.End()
	require.NoError(tracer.Close())
}

func TestEnabledTracer(t *testing.T) {
	require := require.New(t)

	cfg := NewDefaultConfig()
	cfg.Enabled = true
	tracer, err := New(cfg)
	require.NoError(err)
	_, span := tracer.Start(context.Background(), "test")
	require.True(span.IsRecording())
	span.End()
}

func TestMissingEndpoint(t *testing.T) {
	_, err := New(Config{Enabled: true})
	require.ErrorIs(t, err, ErrMissingEndpoint)
}
