package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// These variables are set at build time using ldflags.
// Example: go build -ldflags "-X github.com/five82/linkcheck/internal/cli.Version=1.0.0"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "linkcheck - broken link checker\n")
			fmt.Fprintf(out, "Version:    %s\n", Version)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
