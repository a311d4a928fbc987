// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import (
	"context"
	"fmt"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/state"
	"github.com/ava-labs/decksvm/storage"
)

// allocateShareToken creates the share token of [pair]. Identifiers are
// handed out downward from [codec.MaxAssetID] so they stay clear of ids
// assigned to ordinary assets. The counter is only written here.
func (d *Dex) allocateShareToken(ctx context.Context, mu state.Mutable, pair Pair) (codec.AssetID, error) {
	id, ok, err := storage.GetNextShareID(ctx, mu)
	if err != nil {
		return 0, err
	}
	if !ok {
		id = codec.MaxAssetID
	}
	if id == 0 {
		return 0, ErrShareIDsExhausted
	}
	exists, err := d.tokens.Exists(ctx, mu, id)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: %s", ErrTokenAlreadyExists, id)
	}

	if err := d.registry.Create(ctx, mu, id, d.module, true, d.cfg.LPTokenMinimumBalance); err != nil {
		return 0, err
	}
	symbol, err := d.shareSymbol(ctx, mu, pair)
	if err != nil {
		return 0, err
	}
	name := symbol
	if len(symbol) > storage.MaxAssetSymbolSize {
		symbol = symbol[:storage.MaxAssetSymbolSize]
	}
	if err := d.registry.SetMetadata(ctx, mu, id, d.module, name, symbol, d.cfg.LPTokenDecimals); err != nil {
		return 0, err
	}
	if err := storage.SetNextShareID(ctx, mu, id-1); err != nil {
		return 0, err
	}
	return id, nil
}

// shareSymbol concatenates the symbols of the pair in canonical order.
func (d *Dex) shareSymbol(ctx context.Context, im state.Immutable, pair Pair) ([]byte, error) {
	low, err := d.tokens.Symbol(ctx, im, pair.Low)
	if err != nil {
		return nil, err
	}
	high, err := d.tokens.Symbol(ctx, im, pair.High)
	if err != nil {
		return nil, err
	}
	symbol := make([]byte, 0, len(low)+len(high))
	symbol = append(symbol, low...)
	symbol = append(symbol, high...)
	if len(symbol) > storage.MaxAssetNameSize {
		symbol = symbol[:storage.MaxAssetNameSize]
	}
	return symbol, nil
}
