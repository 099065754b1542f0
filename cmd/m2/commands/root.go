// Package commands implements the CLI commands for the m2 repository tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/m2/internal/app"
	"go.trai.ch/m2/internal/build"
	"go.trai.ch/m2/internal/core/domain"
)

// CLI represents the command line interface for m2.
type CLI struct {
	app     Application
	logger  any
	rootCmd *cobra.Command
	opts    app.Options
	jsonLog bool
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, opts app.Options, ro app.ResolveOptions) (*domain.ResolvedDependencies, error)
	Download(ctx context.Context, opts app.Options, coords []domain.ArtifactCoordinates) (*domain.ArtifactResults, error)
	Localize(ctx context.Context, opts app.Options, coords []domain.ArtifactCoordinates) (*domain.ArtifactResults, error)
	Watch(
		ctx context.Context,
		opts app.Options,
		localize bool,
		coords []domain.ArtifactCoordinates,
		onResult func(*domain.ArtifactResults),
	) error
	Install(ctx context.Context, opts app.Options, req domain.InstallRequest) (domain.ArtifactOutcome, error)
	Deploy(ctx context.Context, opts app.Options, repositoryID string, req domain.DeployRequest) error
	Serve(ctx context.Context, opts app.Options, so app.ServeOptions) error
}

type jsonSwitch interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app. When logger supports it,
// --json-log switches it to JSON output.
func New(a Application, logger any) *CLI {
	rootCmd := &cobra.Command{
		Use:           "m2",
		Short:         "Resolve, download, install and deploy Maven artifacts",
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
		logger:  logger,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.opts.ConfigPath, "config", "c", "", "Configuration file (default: search m2.yaml, m2.yml or m2.toml upward)")
	flags.StringVar(&c.opts.BuildDir, "build-dir", domain.DefaultBuildDir, "Directory for build records and outputs")
	flags.BoolVarP(&c.opts.Force, "force", "f", false, "Ignore stored build records and run the operation")
	flags.BoolVar(&c.jsonLog, "json-log", false, "Write logs as JSON")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if s, ok := c.logger.(jsonSwitch); ok && c.jsonLog {
			s.SetJSON(true)
		}
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newDownloadCmd())
	rootCmd.AddCommand(c.newLocalizeCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newDeployCmd())
	rootCmd.AddCommand(c.newServeCmd())
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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
