// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/decksvm/codec"
	"github.com/ava-labs/decksvm/controller"
	"github.com/ava-labs/decksvm/utils"
)

var addLiquidityCmd = &cobra.Command{
	Use:   "add-liquidity <token0> <amount0> <token1> <amount1>",
	Short: "Create a pool for two tokens or add liquidity to an existing one",
	Long: `Amounts are decimal values in the display precision of each token.
When joining a pool, amount1 is an upper bound: the deposit keeps the pool ratio.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		requesterString, err := getConfigValue(cmd, "requester", true)
		if err != nil {
			return err
		}
		requester, err := codec.StringToAddress(requesterString)
		if err != nil {
			return fmt.Errorf("failed to parse requester: %w", err)
		}
		token0, err := codec.ParseAssetID(args[0])
		if err != nil {
			return err
		}
		token1, err := codec.ParseAssetID(args[2])
		if err != nil {
			return err
		}

		return withNode(cmd, func(ctx context.Context, n *node) error {
			amount0, err := parseAmount(ctx, n, token0, args[1])
			if err != nil {
				return err
			}
			amount1, err := parseAmount(ctx, n, token1, args[3])
			if err != nil {
				return err
			}
			r, err := n.controller.CreateOrJoinPool(ctx, &controller.AddLiquidityRequest{
				Token0:    token0,
				Amount0:   amount0,
				Token1:    token1,
				Amount1:   amount1,
				Requester: requester,
			})
			if err != nil {
				return err
			}
			return printValue(cmd, addLiquidityCmdResponse{
				ShareID: r.Pool.ShareID,
				Account: r.Pool.Account,
				Created: r.Created,
				Amount0: r.Deposit.Amount0,
				Amount1: r.Deposit.Amount1,
				Shares:  r.Deposit.Shares,
			})
		})
	},
}

func parseAmount(ctx context.Context, n *node, id codec.AssetID, s string) (uint64, error) {
	decimals, err := n.controller.Decimals(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve asset %s: %w", id, err)
	}
	return utils.ParseBalance(s, decimals)
}

// Amounts are in pool order.
type addLiquidityCmdResponse struct {
	ShareID codec.AssetID `json:"shareID"`
	Account codec.Address `json:"account"`
	Created bool          `json:"created"`
	Amount0 uint64        `json:"amount0"`
	Amount1 uint64        `json:"amount1"`
	Shares  uint64        `json:"shares"`
}

func (r addLiquidityCmdResponse) String() string {
	verb := "joined"
	if r.Created {
		verb = "created"
	}
	return fmt.Sprintf("%s pool %s (account %s): deposited %d/%d, minted %d shares",
		verb, r.ShareID, r.Account, r.Amount0, r.Amount1, r.Shares)
}

func init() {
	addLiquidityCmd.Flags().String("requester", "", "Address providing the liquidity")
	rootCmd.AddCommand(addLiquidityCmd)
}
