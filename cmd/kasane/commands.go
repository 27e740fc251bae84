package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacchi/kasane"
	kjson "github.com/yacchi/kasane/format/json"
	kyaml "github.com/yacchi/kasane/format/yaml"
	"github.com/yacchi/kasane/layer"
	"github.com/yacchi/kasane/layer/ordered"
	"github.com/yacchi/kasane/source/fs"
	"github.com/yacchi/kasane/strutil"
)

// outputOptions holds the list output flags shared by keys and values.
type outputOptions struct {
	sep string
	end string
}

// addOutputFlags registers --sep and --end on the given flag set.
func addOutputFlags(flags *pflag.FlagSet, o *outputOptions) {
	flags.StringVar(&o.sep, "sep", "\n", "separator printed between items")
	flags.StringVar(&o.end, "end", "\n", "terminator printed after the last item")
}

// buildChain loads each file as a layer and chains them in argument
// order (first file = highest priority).
func buildChain(ctx context.Context, paths []string) (kasane.Chain[string, any], error) {
	layers := make([]layer.Layer[string, any], 0, len(paths))
	for _, p := range paths {
		fl, err := fs.New(p)
		if err != nil {
			return kasane.Chain[string, any]{}, err
		}
		if err := fl.Load(ctx); err != nil {
			return kasane.Chain[string, any]{}, err
		}
		layers = append(layers, fl)
	}
	return kasane.New(layers...), nil
}

func newGetCmd() *cobra.Command {
	var showOrigin bool

	cmd := &cobra.Command{
		Use:   "get <key> <file>...",
		Short: "Print the effective value for a key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, paths := args[0], args[1:]
			chain, err := buildChain(cmd.Context(), paths)
			if err != nil {
				return err
			}

			v, err := chain.Get(key)
			if err != nil {
				return err
			}
			if showOrigin {
				if l, _, ok := chain.Origin(key); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%v\t(from %s)\n", v, layer.NameOf(l))
					return nil
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", v)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showOrigin, "origin", false, "show which file supplied the value")
	return cmd
}

func newKeysCmd() *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "keys <file>...",
		Short: "Print the union of keys across all files",
		Long: `Print the union of keys across all files, each key once, in layer
priority order then document order within each file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := buildChain(cmd.Context(), args)
			if err != nil {
				return err
			}

			keys := chain.Keys()
			items := make([]any, len(keys))
			for i, k := range keys {
				items[i] = k
			}
			fmt.Fprint(cmd.OutOrStdout(), strutil.Join(items, out.sep, out.end))
			return nil
		},
	}
	addOutputFlags(cmd.Flags(), &out)
	return cmd
}

func newValuesCmd() *cobra.Command {
	var out outputOptions
	var keyList string

	cmd := &cobra.Command{
		Use:   "values <file>...",
		Short: "Print effective values",
		Long: `Print the effective value of every key, or of the keys selected with
--keys. The selection accepts commas, semicolons, or whitespace as
separators: --keys "host, port; debug".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := buildChain(cmd.Context(), args)
			if err != nil {
				return err
			}

			keys := chain.Keys()
			if keyList != "" {
				keys = strutil.Fields(keyList)
			}

			items := make([]any, 0, len(keys))
			for _, k := range keys {
				v, err := chain.Get(k)
				if err != nil {
					return err
				}
				items = append(items, v)
			}
			fmt.Fprint(cmd.OutOrStdout(), strutil.Join(items, out.sep, out.end))
			return nil
		},
	}
	addOutputFlags(cmd.Flags(), &out)
	cmd.Flags().StringVar(&keyList, "keys", "", "restrict output to these keys, in the given order")
	return cmd
}

func newMergeCmd() *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "merge <file>...",
		Short: "Print the flattened view as a single document",
		Long: `Merge all files into one document. Each key appears once with its
effective value, in layer priority order then document order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := buildChain(cmd.Context(), args)
			if err != nil {
				return err
			}

			merged := ordered.New[string, any]()
			for _, e := range chain.Entries() {
				merged.Set(e.Key, e.Value)
			}

			var out []byte
			switch formatName {
			case "json":
				out, err = kjson.New().Marshal(merged)
			case "yaml", "yml":
				out, err = kyaml.New().Marshal(merged)
			default:
				return fmt.Errorf("unknown output format %q (want json or yaml)", formatName)
			}
			if err != nil {
				return err
			}
			cmd.OutOrStdout().Write(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&formatName, "format", "json", "output format: json or yaml")
	return cmd
}
