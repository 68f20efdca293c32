package cmd

import (
	"context"
	"fmt"
	"io"
	"watchdash/internal/config"
	"watchdash/internal/provider"
	"watchdash/internal/status"
	"watchdash/pkg/logging"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var providersDir string

func newProvidersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List installed provider plugins",
		Long: `Lists the executable plugins in the providers directory together with the
display name each one reports. Use "providers config <name>" to see the
fields a plugin asks for.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, dir, err := providerRunner()
			if err != nil {
				return err
			}
			return listProviders(cmd.Context(), cmd.OutOrStdout(), runner, dir)
		},
	}
	cmd.PersistentFlags().StringVar(&providersDir, "providers-dir", "", "Directory holding provider plugins")

	cmd.AddCommand(&cobra.Command{
		Use:   "config <name>",
		Short: "Show the configuration fields a provider declares",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, dir, err := providerRunner()
			if err != nil {
				return err
			}
			return showProviderConfig(cmd.Context(), cmd.OutOrStdout(), runner, dir, args[0])
		},
	})
	return cmd
}

// providerRunner builds a runner from the user settings and the flag.
func providerRunner() (*provider.Runner, string, error) {
	settings, err := config.LoadSettings("")
	if err != nil {
		return nil, "", err
	}
	if providersDir != "" {
		settings.ProvidersDir = providersDir
	}
	runner := provider.NewRunner(provider.Options{
		IntrospectTimeout: settings.Timeouts.Introspect,
		ListTimeout:       settings.Timeouts.List,
		EnvPrefix:         settings.EnvPrefix,
	}, status.NewMapper(), logging.Discard())
	return runner, settings.ProvidersDir, nil
}

func listProviders(ctx context.Context, out io.Writer, runner *provider.Runner, dir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	descs, err := provider.Discover(dir)
	if err != nil {
		return err
	}
	if len(descs) == 0 {
		fmt.Fprintf(out, "No providers installed in %s\n", dir)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"NAME", "DISPLAY NAME", "PATH"})
	for _, d := range descs {
		label, err := runner.Name(ctx, d)
		if err != nil {
			label = "(error: " + err.Error() + ")"
		}
		t.AppendRow(table.Row{d.Name, label, d.Path})
	}
	t.Render()
	return nil
}

func showProviderConfig(ctx context.Context, out io.Writer, runner *provider.Runner, dir, name string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	d, err := provider.Lookup(dir, name)
	if err != nil {
		return err
	}
	fields, err := runner.Config(ctx, d)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		fmt.Fprintf(out, "%s needs no configuration\n", name)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"KEY", "LABEL", "REQUIRED", "DEFAULT"})
	for _, f := range fields {
		required := "no"
		if f.Required {
			required = "yes"
		}
		t.AppendRow(table.Row{f.Key, f.Label, required, f.Default})
	}
	t.Render()
	return nil
}
