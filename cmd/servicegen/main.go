// Command servicegen generates META-INF/services manifests from
// //servicegen:service markers.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Each call returns fresh flags.
func newRootCmd() *cobra.Command {
	flags := &generateFlags{}

	rootCmd := &cobra.Command{
		Use:   "servicegen [packages]",
		Short: "Generate service manifests from //servicegen:service markers",
		Long: `servicegen loads the given packages, checks every type marked with
//servicegen:service against its service contracts and writes one manifest per
contract below <out>/META-INF/services.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags, args)
		},
	}

	rootCmd.Version = buildVersion()
	flags.register(rootCmd)

	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
