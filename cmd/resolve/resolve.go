/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for tzerufim.
package resolve

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tzerufim/config"
	"bennypowers.dev/tzerufim/convert"
	"bennypowers.dev/tzerufim/fs"
	"bennypowers.dev/tzerufim/manifest"
	"bennypowers.dev/tzerufim/parser"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve [manifest]",
	Short: "Resolve manifest permutations into merged token documents",
	Long: `Resolve expands the manifest's modifiers into permutations, merges each
permutation's token files in order, optionally dereferences aliases, and
writes one document per permutation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("output", "o", "", "Output directory (default from config, else dist)")
	Cmd.Flags().StringP("format", "f", "dtcg", "Output format: dtcg, css")
	Cmd.Flags().Bool("resolve-references", false, "Dereference aliases in every permutation")
	Cmd.Flags().String("only", "", "Resolve only the permutation with this id")
}

func run(cmd *cobra.Command, args []string) error {
	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".")

	manifestPath := cfg.Manifest
	if viper.GetString("manifest") != "" {
		manifestPath = viper.GetString("manifest")
	}
	if len(args) == 1 {
		manifestPath = args[0]
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.Output
	}
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := convert.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	derefFlag, _ := cmd.Flags().GetBool("resolve-references")
	only, _ := cmd.Flags().GetString("only")

	m, err := manifest.ParseFile(filesystem, manifestPath)
	if err != nil {
		return err
	}

	opts := manifest.ResolveOptions{
		ResolveReferences: derefFlag,
		MaxDepth:          cfg.MaxDepth,
	}
	if cfg.ResolveReferences != nil {
		opts.ResolveReferences = opts.ResolveReferences || *cfg.ResolveReferences
	}

	resolver := manifest.NewResolver(m, parser.NewLoader(filesystem), opts)
	perms, err := resolver.ResolveAll()
	if err != nil {
		return err
	}

	prefix := viper.GetString("prefix")
	if prefix == "" {
		prefix = cfg.Prefix
	}

	written := 0
	for _, perm := range perms {
		if only != "" && perm.ID != only {
			continue
		}
		doc := perm.Tokens
		if perm.ResolvedTokens != nil {
			doc = perm.ResolvedTokens
		}

		data, err := convert.FormatDocument(doc, format, convert.Options{Prefix: prefix})
		if err != nil {
			return fmt.Errorf("formatting permutation %q: %w", perm.ID, err)
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}

		target := perm.Output
		if target == "" {
			target = filepath.Join(outputDir, perm.ID+extension(format))
		}
		if err := filesystem.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := filesystem.WriteFile(target, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		written++
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", target, strings.Join(perm.Files, ", "))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d permutations written\n", written)
	return nil
}

func extension(format convert.Format) string {
	if format == convert.FormatCSS {
		return ".css"
	}
	return ".json"
}
