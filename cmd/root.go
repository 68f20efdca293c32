package cmd

import (
	"context"
	"fmt"
	"os"
	"watchdash/internal/app"

	"github.com/spf13/cobra"
)

var rootFlags app.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "watchdash [project-dir]",
	Short: "Terminal dashboard for deploys, CI runs and coding agents",
	Long: `watchdash shows the deploy history of a project next to its GitHub Actions
runs and the status of the coding agents working on it.

Deploy data comes from provider plugins: executables in the providers
directory that answer "name", "config" and "list". The project directory
defaults to the enclosing git work tree. Selection and provider settings
are kept in .deploy-watch.json inside it.

Data refreshes on a timer, on "r", and whenever fswatch reports a change
to fetched refs, the state file or the agent status directory.`,
	Args: cobra.MaximumNArgs(1),
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. a missing project directory)
	SilenceUsage: true,
	RunE:         runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := rootFlags
	if len(args) == 1 {
		cfg.ProjectDir = args[0]
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	application, err := app.NewApplication(ctx, &cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run(ctx)
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "watchdash version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newProvidersCmd())

	f := rootCmd.Flags()
	f.StringVar(&rootFlags.ProvidersDir, "providers-dir", "", "Directory holding provider plugins")
	f.DurationVar(&rootFlags.Interval, "interval", 0, "Poll interval (default from settings, 30s)")
	f.BoolVar(&rootFlags.Debug, "debug", false, "Enable debug logging")
	f.StringVar(&rootFlags.LogFile, "log-file", "", "Log file path (default $TMPDIR/watchdash.log)")
	f.BoolVar(&rootFlags.NoWatch, "no-watch", false, "Disable fswatch change notification and poll only")
	f.StringVar(&rootFlags.Repo, "repo", "", "GitHub repository (owner/name) for the Actions tab")
}
