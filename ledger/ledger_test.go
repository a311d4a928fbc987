// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/decksvm/keys"
	"github.com/ava-labs/decksvm/state"
)

var errTest = errors.New("test")

func key(s string) []byte {
	return keys.EncodeChunks([]byte(s), 1)
}

func TestExecuteCommits(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()
	require.NoError(db.Put(key("stale"), []byte("x")))
	l := New(logging.NoLog{}, trace.Noop, db)

	require.NoError(l.Execute(ctx, "test", func(ctx context.Context, mu state.Mutable) error {
		if err := mu.Insert(ctx, key("a"), []byte("1")); err != nil {
			return err
		}
		// Writes are visible inside the transition.
		v, err := mu.GetValue(ctx, key("a"))
		if err != nil {
			return err
		}
		if string(v) != "1" {
			return errTest
		}
		return mu.Remove(ctx, key("stale"))
	}))

	v, err := db.Get(key("a"))
	require.NoError(err)
	require.Equal([]byte("1"), v)
	_, err = db.Get(key("stale"))
	require.ErrorIs(err, database.ErrNotFound)
}

func TestExecuteDiscardsOnError(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()
	require.NoError(db.Put(key("kept"), []byte("x")))
	l := New(logging.NoLog{}, trace.Noop, db)

	err := l.Execute(ctx, "test", func(ctx context.Context, mu state.Mutable) error {
		if err := mu.Insert(ctx, key("a"), []byte("1")); err != nil {
			return err
		}
		if err := mu.Remove(ctx, key("kept")); err != nil {
			return err
		}
		return errTest
	})
	require.ErrorIs(err, errTest)

	has, err := db.Has(key("a"))
	require.NoError(err)
	require.False(has)
	v, err := db.Get(key("kept"))
	require.NoError(err)
	require.Equal([]byte("x"), v)
}

func TestRead(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()
	require.NoError(db.Put(key("a"), []byte("1")))
	l := New(logging.NoLog{}, trace.Noop, db)

	var got []byte
	require.NoError(l.Read(ctx, func(ctx context.Context, im state.Immutable) error {
		v, err := im.GetValue(ctx, key("a"))
		got = v
		return err
	}))
	require.Equal([]byte("1"), got)
}
