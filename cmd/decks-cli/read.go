// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/storage"
	"github.com/ava-labs/decksvm/utils"
)

var poolCmd = &cobra.Command{
	Use:   "pool <token0> <token1>",
	Short: "Show the pool of a token pair and its reserves",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		token0, err := codec.ParseAssetID(args[0])
		if err != nil {
			return err
		}
		token1, err := codec.ParseAssetID(args[1])
		if err != nil {
			return err
		}
		return withNode(cmd, func(ctx context.Context, n *node) error {
			info, err := n.controller.Pool(ctx, token0, token1)
			if err != nil {
				return err
			}
			return printValue(cmd, poolCmdResponse{
				Pair:     info.Pool.Pair.String(),
				ShareID:  info.Pool.ShareID,
				Account:  info.Pool.Account,
				Reserve0: info.Reserve0,
				Reserve1: info.Reserve1,
				Issuance: info.Issuance,
			})
		})
	},
}

type poolCmdResponse struct {
	Pair     string        `json:"pair"`
	ShareID  codec.AssetID `json:"shareID"`
	Account  codec.Address `json:"account"`
	Reserve0 uint64        `json:"reserve0"`
	Reserve1 uint64        `json:"reserve1"`
	Issuance uint64        `json:"issuance"`
}

func (r poolCmdResponse) String() string {
	return fmt.Sprintf("pool %s\n  share token: %s\n  account: %s\n  reserves: %d/%d\n  issuance: %d",
		r.Pair, r.ShareID, r.Account, r.Reserve0, r.Reserve1, r.Issuance)
}

var balanceCmd = &cobra.Command{
	Use:   "balance <asset> <address>",
	Short: "Show the balance of an address",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, err := codec.ParseAssetID(args[0])
		if err != nil {
			return err
		}
		addr, err := codec.StringToAddress(args[1])
		if err != nil {
			return fmt.Errorf("failed to parse address: %w", err)
		}
		return withNode(cmd, func(ctx context.Context, n *node) error {
			bal, err := n.controller.Balance(ctx, asset, addr)
			if err != nil {
				return err
			}
			decimals, err := n.controller.Decimals(ctx, asset)
			if err != nil {
				return err
			}
			return printValue(cmd, balanceCmdResponse{
				Asset:   asset,
				Address: addr,
				Balance: bal,
				Display: utils.FormatBalance(bal, decimals),
			})
		})
	},
}

type balanceCmdResponse struct {
	Asset   codec.AssetID `json:"asset"`
	Address codec.Address `json:"address"`
	Balance uint64        `json:"balance"`
	Display string        `json:"display"`
}

func (r balanceCmdResponse) String() string {
	return r.Display
}

var assetCmd = &cobra.Command{
	Use:   "asset <asset>",
	Short: "Show the metadata and supply of an asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, err := codec.ParseAssetID(args[0])
		if err != nil {
			return err
		}
		return withNode(cmd, func(ctx context.Context, n *node) error {
			info, err := n.controller.Asset(ctx, asset)
			if err != nil {
				return err
			}
			return printValue(cmd, assetCmdResponse{
				ID:         asset,
				Owner:      info.Owner,
				Name:       string(info.Name),
				Symbol:     string(info.Symbol),
				Decimals:   info.Decimals,
				MinBalance: info.MinBalance,
				Supply:     utils.FormatBalance(info.Supply, info.Decimals),
				Frozen:     info.Frozen,
			})
		})
	},
}

type assetCmdResponse struct {
	ID         codec.AssetID `json:"id"`
	Owner      codec.Address `json:"owner"`
	Name       string        `json:"name"`
	Symbol     string        `json:"symbol"`
	Decimals   uint8         `json:"decimals"`
	MinBalance uint64        `json:"minBalance"`
	Supply     string        `json:"supply"`
	Frozen     bool          `json:"frozen"`
}

func (r assetCmdResponse) String() string {
	return fmt.Sprintf("%s (%s)\n  id: %s\n  owner: %s\n  decimals: %d\n  min balance: %d\n  supply: %s\n  frozen: %t",
		r.Name, r.Symbol, r.ID, r.Owner, r.Decimals, r.MinBalance, r.Supply, r.Frozen)
}

var moduleAddressCmd = &cobra.Command{
	Use:   "module-address",
	Short: "Print the address of the exchange module account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadChainConfig(cmd)
		if err != nil {
			return err
		}
		return printValue(cmd, moduleAddressCmdResponse{
			Address: storage.ModuleAddress(cfg.Namespace),
		})
	},
}

type moduleAddressCmdResponse struct {
	Address codec.Address `json:"address"`
}

func (r moduleAddressCmdResponse) String() string {
	return r.Address.String()
}

func init() {
	rootCmd.AddCommand(
		poolCmd,
		balanceCmd,
		assetCmd,
		moduleAddressCmd,
	)
}
