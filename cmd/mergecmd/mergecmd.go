/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mergecmd provides the merge command for tzerufim.
package mergecmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/tzerufim/config"
	"bennypowers.dev/tzerufim/fs"
	"bennypowers.dev/tzerufim/merge"
	"bennypowers.dev/tzerufim/parser"
)

// Cmd is the merge cobra command.
var Cmd = &cobra.Command{
	Use:   "merge <files...>",
	Short: "Merge token files directly, without a manifest",
	Long: `Merge folds token files left to right through the conflict-detecting merge
engine. Later files override earlier ones; conflicting types or
token/group shapes abort the merge. Glob patterns are expanded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("output", "o", "", "Write merged document to a file instead of stdout")
}

func run(cmd *cobra.Command, args []string) error {
	filesystem := fs.NewOSFileSystem()

	files, err := config.ExpandFiles(filesystem, ".", args)
	if err != nil {
		return err
	}

	docs := make([]map[string]any, 0, len(files))
	for _, file := range files {
		doc, err := parser.ParseFile(filesystem, file)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	merged, err := merge.MergeAll(docs...)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	output, _ := cmd.Flags().GetString("output")
	if output != "" {
		return filesystem.WriteFile(output, data, 0644)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
