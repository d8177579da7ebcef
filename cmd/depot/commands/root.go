// Package commands implements the CLI commands for depot.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/app"
	"go.trai.ch/depot/internal/build"
	"go.trai.ch/depot/internal/engine/query"
	"go.trai.ch/depot/internal/features"
)

// CLI represents the command line interface for depot.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	opts    globalOptions
}

type globalOptions struct {
	verbose bool
	logJSON bool
	output  string
}

// Application represents the application logic interface.
type Application interface {
	Features() *features.Features
	ConfigureLogging(opts app.LogOptions)
	Login(token string) error
	Logout() error
	LoggedIn() bool
	Overview(ctx context.Context) (*app.Overview, error)
	CacheEntries() []query.EntryInfo
	ClearCache()
	WatchCredentials(ctx context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "depot",
		Short:         "Warehouse administration from the terminal",
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

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&c.opts.verbose, "verbose", "v", false, "Show debug logs, including cache activity")
	pf.BoolVar(&c.opts.logJSON, "log-json", false, "Write logs as JSON")
	pf.StringVarP(&c.opts.output, "output", "o", "auto", "Output format: auto, table or json")

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		c.app.ConfigureLogging(app.LogOptions{Verbose: c.opts.verbose, JSON: c.opts.logJSON})
		return c.validateOutput()
	}

	rootCmd.AddCommand(
		c.newCategoriesCmd(),
		c.newCustomersCmd(),
		c.newInboundsCmd(),
		c.newInventoryCmd(),
		c.newProductsCmd(),
		c.newSuppliersCmd(),
		c.newWarehousesCmd(),
		c.newLoginCmd(),
		c.newLogoutCmd(),
		c.newOverviewCmd(),
		c.newCacheCmd(),
		c.newShellCmd(),
		c.newWatchCmd(),
		c.newVersionCmd(),
	)

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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the input stream for the root command. Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}
