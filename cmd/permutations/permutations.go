/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package permutations provides the permutations command for tzerufim.
package permutations

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/tzerufim/fs"
	"bennypowers.dev/tzerufim/manifest"
)

// Cmd is the permutations cobra command.
var Cmd = &cobra.Command{
	Use:   "permutations <manifest>",
	Short: "List the permutations a manifest expands to",
	Long:  `Permutations enumerates every concrete modifier selection the manifest generates, with its id and ordered file list, without merging anything.`,
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	Cmd.Flags().String("format", "table", "Output format: table, json")
}

func run(cmd *cobra.Command, args []string) error {
	filesystem := fs.NewOSFileSystem()

	m, err := manifest.ParseFile(filesystem, args[0])
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")

	type row struct {
		ID    string   `json:"id"`
		Files []string `json:"files"`
	}
	var rows []row
	for _, g := range m.GenerateAllInputs() {
		rows = append(rows, row{
			ID:    m.PermutationID(g.Input),
			Files: m.CollectFiles(g.Input, g.Spec),
		})
	}

	if format == "json" {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	for _, r := range rows {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.ID, strings.Join(r.Files, ", "))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d permutations\n", len(rows))
	return nil
}
