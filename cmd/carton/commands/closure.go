package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/carton/internal/core/domain"
)

func (c *CLI) newClosureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "closure ROOT...",
		Short: "Print every unit reachable from the roots",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.Closure(cmd.Context(), args, options(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range result.Names() {
				_, _ = fmt.Fprintln(out, name)
			}

			showMissing, _ := cmd.Flags().GetBool("show-missing")
			if showMissing {
				for _, name := range result.Missing() {
					_, _ = fmt.Fprintf(out, "missing %s\n", name)
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("show-missing", false, "Also print the units that were dropped")
	return cmd
}

func (c *CLI) newWhyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "why ROOT TARGET",
		Short: "Print the reference chain that pulls TARGET into the closure of ROOT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Why(cmd.Context(), args[0], args[1], options(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, strings.Join(domain.Strings(res.Path), " -> "))
			if len(res.Dependents) > 0 {
				_, _ = fmt.Fprintf(out, "referenced by %s\n", strings.Join(domain.Strings(res.Dependents), ", "))
			}
			return nil
		},
	}
}

func (c *CLI) newUnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List every unit on the classpath",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := c.app.Units(cmd.Context(), options(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				_, _ = fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}
