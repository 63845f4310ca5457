package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/linkcheck/internal/config"
	"github.com/five82/linkcheck/internal/logtail"
)

func newLogsCommand(root *rootOptions) *cobra.Command {
	var (
		lines int
		level string
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the end of the log file",
		Example: `  linkcheck logs
  linkcheck logs -n 200 --level warn`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			tail, err := logtail.Tail(cfg.LogFile, lines)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, line := range tail {
				entry := logtail.Parse(line)
				if !entry.AtLeast(level) {
					continue
				}
				if raw {
					fmt.Fprintln(out, line)
					continue
				}
				fmt.Fprintln(out, logtail.Format(entry))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to read from the end of the file")
	cmd.Flags().StringVar(&level, "level", "", "minimum level to show: debug, info, warn, error")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the JSON lines unchanged")
	return cmd
}
