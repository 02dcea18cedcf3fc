package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tether/pkg/plug"
)

// plugCommand creates the plug command.
func (c *CLI) plugCommand() *cobra.Command {
	var (
		size  float64
		cache cacheFlags
	)

	kinds := make([]string, 0, len(plug.Kinds))
	for _, k := range plug.Kinds {
		kinds = append(kinds, string(k))
	}

	cmd := &cobra.Command{
		Use:       "plug KIND",
		Short:     "Print the SVG path data of a plug shape",
		Long:      "Print the SVG path data of a plug shape centered at the origin and pointing along +x.\n\nKinds: " + strings.Join(kinds, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			d, err := runner.Plug(cmd.Context(), plug.Kind(args[0]), size)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}

	cmd.Flags().Float64Var(&size, "size", plug.DefaultSize, "plug size")
	cache.register(cmd)
	return cmd
}
