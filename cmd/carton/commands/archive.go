package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.trai.ch/carton/internal/core/domain"
)

func (c *CLI) newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack ROOT...",
		Short: "Write the closure of the roots to an archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			res, err := c.app.Pack(cmd.Context(), args, output, options(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			state := "wrote"
			if res.Skipped {
				state = "unchanged"
			}
			_, _ = fmt.Fprintf(out, "%s %s (%d units, %s)\n", state, res.Output, res.Units, res.Digest)
			for _, name := range res.Missing {
				_, _ = fmt.Fprintf(out, "missing %s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Archive to write (default: configured output)")
	return cmd
}

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls ARCHIVE",
		Short: "List the units indexed by an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verify, _ := cmd.Flags().GetBool("verify")
			entries, err := c.app.List(args[0], verify)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range entries {
				if verify {
					_, _ = fmt.Fprintf(w, "%s\t%016x\t%d bytes\n", e.Name, e.Checksum, e.Size)
					continue
				}
				_, _ = fmt.Fprintf(w, "%s\t%016x\n", e.Name, e.Checksum)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Bool("verify", false, "Check every entry against the index and report payload sizes")
	return cmd
}

func (c *CLI) newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load ARCHIVE...",
		Short: "Resolve units from archives held in memory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, _ := cmd.Flags().GetStringSlice("unit")
			units, err := c.app.Load(cmd.Context(), args, names)
			if err != nil {
				return err
			}
			return printUnits(cmd, units)
		},
	}
	cmd.Flags().StringSlice("unit", nil, "Unit to resolve (repeatable)")
	_ = cmd.MarkFlagRequired("unit")
	return cmd
}

func (c *CLI) newMaterializeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materialize --to DIR ARCHIVE...",
		Short: "Write archives to a directory and resolve units from the written files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("to")
			names, _ := cmd.Flags().GetStringSlice("unit")
			units, err := c.app.Materialize(cmd.Context(), dir, args, names)
			if err != nil {
				return err
			}
			return printUnits(cmd, units)
		},
	}
	cmd.Flags().String("to", "", "Directory the archives are written to")
	cmd.Flags().StringSlice("unit", nil, "Unit to resolve (repeatable)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func printUnits(cmd *cobra.Command, units []*domain.Unit) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, u := range units {
		super := "-"
		if !u.Super.IsZero() {
			super = u.Super.String()
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d bytes\textends %s\t%d refs\t%s\n",
			u.Name, u.Kind(), u.Size(), super, len(u.References), u.Source)
	}
	return w.Flush()
}
