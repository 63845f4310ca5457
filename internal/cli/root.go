package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/linkcheck/internal/app"
	"github.com/five82/linkcheck/internal/submit"
)

type rootOptions struct {
	configPath string
	prefsPath  string
	view       string
	url        string
	depth      int
	verbose    bool
}

// NewRootCommand builds the linkcheck command tree. Without a subcommand it
// starts the TUI.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "linkcheck",
		Short: "Find broken links from the terminal",
		Long: `linkcheck submits a URL to a broken-links checker backend and shows every
link it found in a sortable, filterable, paginated table. Filters and sort
order are kept in a shareable view address that survives restarts.`,
		Example: `  linkcheck
  linkcheck --url https://example.com --depth 2
  linkcheck --view "/?filter_status=broken&sortColumn=response_time&sortDir=desc"
  linkcheck check https://example.com --filter-status broken`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts.appOptions())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/linkcheck/config.toml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.Flags().StringVar(&opts.prefsPath, "prefs", "", "preferences file (default ~/.config/linkcheck/prefs.toml)")
	cmd.Flags().StringVar(&opts.view, "view", "", "initial results view address, e.g. \"/?filter_status=broken\"")
	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "URL to check as soon as the UI starts")
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", submit.DefaultDepth, "crawl depth for --url (0-4)")

	cmd.AddCommand(newCheckCommand(opts), newLogsCommand(opts), newVersionCommand())
	return cmd
}

func (o *rootOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath: o.configPath,
		PrefsPath:  o.prefsPath,
		Verbose:    o.verbose,
		View:       o.view,
		URL:        o.url,
		Depth:      strconv.Itoa(o.depth),
	}
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
