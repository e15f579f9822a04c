// Package commands implements the CLI commands for carton.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/carton/internal/app"
	"go.trai.ch/carton/internal/build"
	"go.trai.ch/carton/internal/core/ports"
)

// CLI represents the command line interface for carton.
type CLI struct {
	app     *app.App
	logger  ports.Logger
	rootCmd *cobra.Command
}

// configurableLogger is implemented by the slog adapter.
type configurableLogger interface {
	SetVerbose(verbose bool)
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a *app.App, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "carton",
		Short:         "Package the transitive closure of compiled units into archives",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to carton.yaml (default: discovered from the working directory)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.Bool("log-json", false, "Emit logs as JSON")
	flags.StringSliceP("classpath", "p", nil, "Classpath entries, replacing the configured ones")
	flags.StringSlice("include", nil, "Follow only references with these prefixes")
	flags.StringSlice("exclude", nil, "Do not follow references with these prefixes")
	flags.Bool("tolerate-missing", true, "Drop units that cannot be located instead of failing")

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logJSON, _ := cmd.Flags().GetBool("log-json")
		if l, ok := c.logger.(configurableLogger); ok {
			l.SetVerbose(verbose)
			l.SetJSON(logJSON)
		}
	}

	rootCmd.AddCommand(c.newClosureCmd())
	rootCmd.AddCommand(c.newPackCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newWhyCmd())
	rootCmd.AddCommand(c.newUnitsCmd())
	rootCmd.AddCommand(c.newLoadCmd())
	rootCmd.AddCommand(c.newMaterializeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}

// options reads the persistent flags shared by every command.
func options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()
	opts := app.Options{}
	opts.ConfigPath, _ = flags.GetString("config")
	opts.Classpath, _ = flags.GetStringSlice("classpath")
	opts.Include, _ = flags.GetStringSlice("include")
	opts.Exclude, _ = flags.GetStringSlice("exclude")
	if flags.Changed("tolerate-missing") {
		tolerate, _ := flags.GetBool("tolerate-missing")
		opts.TolerateMissing = &tolerate
	}
	return opts
}
