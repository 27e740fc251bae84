// Package main provides the kasane CLI tool.
//
// Usage:
//
//	go tool kasane <command> [arguments]
//
// The commands compose one or more configuration files into a layered
// view. Files are ranked in argument order: the first file has the
// highest priority and shadows later ones key by key.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kasane",
		Short: "Inspect layered configuration files",
		Long: `kasane composes configuration files into a single layered view.

Files are ranked in argument order: the first file has the highest
priority, and its entries shadow identical keys in later files.
Supported formats: JSON (.json) and YAML (.yaml, .yml).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newGetCmd(),
		newKeysCmd(),
		newValuesCmd(),
		newMergeCmd(),
	)
	return root
}
