// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestPackerRoundTrip(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(1, ids.GenerateTestID())

	wp := NewWriter(64, 1024)
	wp.PackAssetID(MaxAssetID)
	wp.PackAddress(addr)
	wp.PackUint64(42)
	wp.PackBool(true)
	wp.PackBytes([]byte("LCMC"))
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), 1024)
	require.Equal(MaxAssetID, rp.UnpackAssetID())
	var parsed Address
	rp.UnpackAddress(&parsed)
	require.Equal(addr, parsed)
	require.Equal(uint64(42), rp.UnpackUint64(true))
	require.True(rp.UnpackBool())
	var symbol []byte
	rp.UnpackBytes(8, true, &symbol)
	require.Equal([]byte("LCMC"), symbol)
	require.NoError(rp.Err())
	require.True(rp.Empty())
}

func TestPackerRequiredUnpack(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(16, 16)
	wp.PackUint64(0)
	rp := NewReader(wp.Bytes(), 16)
	rp.UnpackUint64(true)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerUnpackBytesLimit(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(16, 64)
	wp.PackBytes([]byte("too long for limit"))
	rp := NewReader(wp.Bytes(), 64)
	var dest []byte
	rp.UnpackBytes(4, false, &dest)
	require.Error(rp.Err())
}
