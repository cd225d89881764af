/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for tzerufim.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"bennypowers.dev/tzerufim/fs"
	"bennypowers.dev/tzerufim/manifest"
)

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate <manifest>",
	Short: "Validate a token manifest",
	Long:  `Validate parses a manifest and reports every declaration problem at once: missing sets, malformed modifiers, and generate entries naming unknown sets or modifiers.`,
	Args:  cobra.ExactArgs(1),
	RunE:  run,
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

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d sets, %d modifiers)\n", args[0], len(m.Sets), len(m.Modifiers))
	return nil
}
