package commands

import (
	"fmt"

	"github.com/MixinNetwork/ringvrf-go"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "v0.1.0-dev"

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version info",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("ringvrf %s (%s)\n", Version, ringvrf.SUITE_ID)
	},
}

func init() {
	RootCmd.AddCommand(VersionCmd)
}
