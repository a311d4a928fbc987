// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dex

import (
	"fmt"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/storage"
)

// Pair is an unordered token pair in canonical form: Low < High.
type Pair struct {
	Low  codec.AssetID `json:"low"`
	High codec.AssetID `json:"high"`
}

// NewPair returns the canonical form of {a, b}. The result does not depend
// on argument order.
func NewPair(a codec.AssetID, b codec.AssetID) (Pair, error) {
	switch {
	case a < b:
		return Pair{Low: a, High: b}, nil
	case a > b:
		return Pair{Low: b, High: a}, nil
	default:
		return Pair{}, fmt.Errorf("%w: %s", ErrIdenticalTokens, a)
	}
}

// OrderAmounts canonicalizes {a, b} and reorders the amounts to match.
func OrderAmounts(a codec.AssetID, b codec.AssetID, amountA uint64, amountB uint64) (Pair, uint64, uint64, error) {
	pair, err := NewPair(a, b)
	if err != nil {
		return Pair{}, 0, 0, err
	}
	if pair.Low == a {
		return pair, amountA, amountB, nil
	}
	return pair, amountB, amountA, nil
}

func (p Pair) Key() []byte {
	return storage.LiquidityPoolKey(p.Low, p.High)
}

func (p Pair) String() string {
	return fmt.Sprintf("%s/%s", p.Low, p.High)
}
