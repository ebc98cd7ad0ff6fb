package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpyw/servicegen/manifest"
)

func newLookupCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "lookup <contract>",
		Short: "Print the implementors registered for a service contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := manifest.Lookup(os.DirFS(out), args[0])
			if err != nil {
				return fmt.Errorf("lookup %s: %w", args[0], err)
			}

			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", ".", "output root the manifests were generated in")

	return cmd
}
