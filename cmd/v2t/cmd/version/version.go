package version

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"v2t/internal/app/api/provider"
)

var version = "v0.1.0"

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of v2t",
	Long:  `All software has versions. This is v2t's.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printVersion(cmd)
		return nil
	},
}

func printVersion(cmd *cobra.Command) {
	families := make([]string, 0, len(provider.Families()))
	for _, f := range provider.Default().Registered() {
		families = append(families, f.String())
	}
	fmt.Fprintln(cmd.OutOrStdout(), version)
	fmt.Fprintf(cmd.OutOrStdout(), "models: %s\n", strings.Join(families, ", "))
}
