// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/decksvm/genesis"
)

var genesisCmd = &cobra.Command{
	Use:   "genesis <file>",
	Short: "Load a genesis file into an empty database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read genesis: %w", err)
		}
		g, err := genesis.New(b)
		if err != nil {
			return err
		}
		return withNode(cmd, func(ctx context.Context, n *node) error {
			if err := n.controller.LoadGenesis(ctx, g); err != nil {
				return err
			}
			return printValue(cmd, genesisCmdResponse{
				Assets:      len(g.Assets),
				Allocations: len(g.CustomAllocation),
				Pools:       len(g.LiquidityPools),
			})
		})
	},
}

type genesisCmdResponse struct {
	Assets      int `json:"assets"`
	Allocations int `json:"allocations"`
	Pools       int `json:"pools"`
}

func (r genesisCmdResponse) String() string {
	return fmt.Sprintf("loaded %d assets, %d allocations, %d pools", r.Assets, r.Allocations, r.Pools)
}

func init() {
	rootCmd.AddCommand(genesisCmd)
}
