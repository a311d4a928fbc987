// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/decksvm/state"
)

// GetGenesisLoaded reports whether a genesis has been applied to [im].
func GetGenesisLoaded(ctx context.Context, im state.Immutable) (bool, error) {
	_, err := im.GetValue(ctx, GenesisKey())
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func SetGenesisLoaded(ctx context.Context, mu state.Mutable) error {
	return mu.Insert(ctx, GenesisKey(), []byte{1})
}
