package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dragynn-Redeux/ACE-Dragynn-sub001/internal/config"
	"github.com/Dragynn-Redeux/ACE-Dragynn-sub001/internal/shroud"
)

// errSkipped is returned in strict mode when at least one entry was dropped.
var errSkipped = errors.New("malformed entries found")

type options struct {
	value      string
	properties string
	key        string
	strict     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "shroudcheck [file|-]",
		Short: "Decode a shroud zone configuration and report malformed entries",
		Long: "Decodes shroud zone entries from a file, stdin (-), an inline --value\n" +
			"or a key of a YAML property file, then prints every decoded zone and\n" +
			"every skipped entry.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.Context(), cmd.InOrStdin(), args, opts)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), raw, opts.strict)
		},
	}

	rootCmd.Flags().StringVar(&opts.value, "value", "", "Inline configuration value")
	rootCmd.Flags().StringVarP(&opts.properties, "properties", "p", "", "YAML property file to read the value from")
	rootCmd.Flags().StringVarP(&opts.key, "key", "k", shroud.PropertyKey, "Property key used with --properties")
	rootCmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit with an error if any entry was skipped")

	return rootCmd
}

// readInput выбирает источник: --value, --properties, файл или stdin.
func readInput(ctx context.Context, stdin io.Reader, args []string, opts options) (string, error) {
	sources := 0
	if opts.value != "" {
		sources++
	}
	if opts.properties != "" {
		sources++
	}
	if len(args) == 1 {
		sources++
	}
	if sources != 1 {
		return "", fmt.Errorf("exactly one of [file|-], --value or --properties is required")
	}

	switch {
	case opts.value != "":
		return opts.value, nil

	case opts.properties != "":
		if ctx == nil {
			ctx = context.Background()
		}
		return config.NewPropertyFile(opts.properties).GetString(ctx, opts.key, "")

	case args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil

	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
}

func report(w io.Writer, raw string, strict bool) error {
	zones, diags := shroud.Parse(raw)

	for i, z := range zones.All() {
		c := z.Center()
		fmt.Fprintf(w, "zone %d: region=0x%04X cell=0x%08X pos=[%g %g %g] rot=[%g %g %g %g] radius=%g max=%g\n",
			i, z.RegionID(), c.CellID,
			c.Coords.X, c.Coords.Y, c.Coords.Z,
			c.Orientation.X, c.Orientation.Y, c.Orientation.Z, c.Orientation.W,
			z.Radius(), z.MaxDistance(),
		)
	}
	for _, d := range diags {
		fmt.Fprintf(w, "skipped %d (%s): %q: %v\n", d.Index, d.Kind(), d.Entry, d.Err)
	}
	fmt.Fprintf(w, "%d zones, %d regions, %d skipped\n", zones.Len(), len(zones.RegionIDs()), len(diags))

	if strict && len(diags) > 0 {
		return fmt.Errorf("%w: %d", errSkipped, len(diags))
	}
	return nil
}
