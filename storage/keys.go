// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/consts"
	"github.com/ava-labs/decksvm/keys"
)

// State
// 0x0/ (native balance)
//   -> [owner] => balance
// 0x1/ (assets)
//   -> [asset] => owner|sufficient|minBalance|supply|frozen|decimals|name|symbol
// 0x2/ (asset balance)
//   -> [asset|owner] => balance
// 0x3/ (liquidity pools)
//   -> [low|high] => shareID|account
// 0x4/ (next share id)
//   -> [] => shareID
// 0x5/ (genesis)
//   -> [] => 1

const (
	nativeBalancePrefix byte = iota
	assetPrefix
	assetBalancePrefix
	liquidityPoolPrefix
	nextShareIDPrefix
	genesisPrefix
)

const (
	BalanceChunks       uint16 = 1
	AssetChunks         uint16 = 3
	LiquidityPoolChunks uint16 = 1
	NextShareIDChunks   uint16 = 1
	GenesisChunks       uint16 = 1
)

const (
	MaxAssetNameSize   = 64
	MaxAssetSymbolSize = 32
	MaxAssetDecimals   = 18
)

// [nativeBalancePrefix] + [address]
func NativeBalanceKey(addr codec.Address) []byte {
	k := make([]byte, 0, consts.ByteLen+codec.AddressLen+consts.Uint16Len)
	k = append(k, nativeBalancePrefix)
	k = append(k, addr[:]...)
	return keys.EncodeChunks(k, BalanceChunks)
}

// [assetPrefix] + [asset]
func AssetKey(asset codec.AssetID) []byte {
	k := make([]byte, 0, consts.ByteLen+codec.AssetIDLen+consts.Uint16Len)
	k = append(k, assetPrefix)
	k = append(k, asset.Bytes()...)
	return keys.EncodeChunks(k, AssetChunks)
}

// [assetBalancePrefix] + [asset] + [address]
func AssetBalanceKey(asset codec.AssetID, addr codec.Address) []byte {
	k := make([]byte, 0, consts.ByteLen+codec.AssetIDLen+codec.AddressLen+consts.Uint16Len)
	k = append(k, assetBalancePrefix)
	k = append(k, asset.Bytes()...)
	k = append(k, addr[:]...)
	return keys.EncodeChunks(k, BalanceChunks)
}

// [liquidityPoolPrefix] + [low] + [high]
//
// invariant: caller must guarantee low < high
func LiquidityPoolKey(low codec.AssetID, high codec.AssetID) []byte {
	k := make([]byte, 0, consts.ByteLen+2*codec.AssetIDLen+consts.Uint16Len)
	k = append(k, liquidityPoolPrefix)
	k = append(k, low.Bytes()...)
	k = append(k, high.Bytes()...)
	return keys.EncodeChunks(k, LiquidityPoolChunks)
}

func NextShareIDKey() []byte {
	return keys.EncodeChunks([]byte{nextShareIDPrefix}, NextShareIDChunks)
}

func GenesisKey() []byte {
	return keys.EncodeChunks([]byte{genesisPrefix}, GenesisChunks)
}
