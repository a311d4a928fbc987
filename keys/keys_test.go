// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumChunks(t *testing.T) {
	tests := []struct {
		size     int
		expected uint16
	}{
		{0, 0},
		{1, 1},
		{63, 1},
		{64, 2},
		{200, 4},
	}
	for _, tt := range tests {
		require := require.New(t)
		chunks, ok := NumChunks(make([]byte, tt.size))
		require.True(ok)
		require.Equal(tt.expected, chunks)
	}
}

func TestVerifyValue(t *testing.T) {
	require := require.New(t)
	key := EncodeChunks([]byte{0x1, 0x2}, 1)

	chunks, ok := MaxChunks(key)
	require.True(ok)
	require.Equal(uint16(1), chunks)

	require.True(VerifyValue(key, make([]byte, 63)))
	require.False(VerifyValue(key, make([]byte, 64)))
	require.False(VerifyValue([]byte{0x1}, []byte{0x1}))
}
