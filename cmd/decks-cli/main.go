// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "decks-cli",
	Short: "DecksVM CLI for managing liquidity pools",
	Long:  `A CLI application for loading a genesis, adding liquidity, and inspecting pools and balances.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.DisableAutoGenTag = true
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text or json)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding the database and logs")
	rootCmd.PersistentFlags().String("config", "", "Path to a JSON chain config")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level")
}

func main() {
	Execute()
}
