/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for tzerufim.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tzerufim/cmd/mergecmd"
	"bennypowers.dev/tzerufim/internal/logger"
	"bennypowers.dev/tzerufim/cmd/permutations"
	"bennypowers.dev/tzerufim/cmd/resolve"
	"bennypowers.dev/tzerufim/cmd/validate"
	"bennypowers.dev/tzerufim/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "tzerufim",
	Short: "Resolve design token manifests into merged token documents",
	Long:  `tzerufim expands token manifest modifiers into permutations and merges each permutation's design token files into one reference-resolved document.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetDebug(true)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("manifest", "m", "", "Path to the token manifest")
	rootCmd.PersistentFlags().String("prefix", "", "CSS variable prefix for css output")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	_ = viper.BindPFlag("prefix", rootCmd.PersistentFlags().Lookup("prefix"))
	_ = viper.BindPFlag("manifest", rootCmd.PersistentFlags().Lookup("manifest"))

	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(permutations.Cmd)
	rootCmd.AddCommand(mergecmd.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
