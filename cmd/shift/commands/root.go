// Package commands implements the CLI commands for the shift migration tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/shift/internal/app"
	"go.trai.ch/shift/internal/build"
	"go.trai.ch/shift/internal/core/ports"
)

// CLI represents the command line interface for shift.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Migrate(ctx context.Context, opts app.MigrateOptions) (*app.Plan, error)
}

// logConfigurer is implemented by loggers whose output mode can be switched at run time.
type logConfigurer interface {
	SetJSON(enable bool)
	SetQuiet(quiet bool)
}

// New creates a new CLI instance with the given app and logger.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "shift",
		Short:         "Upgrade packages and collect the migrations they owe",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log warnings and errors")

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = c.configureLogging

	rootCmd.AddCommand(c.newMigrateCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configureLogging(cmd *cobra.Command, _ []string) {
	lc, ok := c.logger.(logConfigurer)
	if !ok {
		return
	}
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	quiet, _ := cmd.Flags().GetBool("quiet")
	lc.SetJSON(jsonLogs)
	lc.SetQuiet(quiet)
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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
