package gizichain

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func printVersion(cmd *cobra.Command) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "gizichain (unknown build)")
		return
	}
	version := info.Main.Version
	if version == "" || version == "(devel)" {
		version = "devel"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "gizichain %s (%s)\n", version, info.GoVersion)
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision", "vcs.time":
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", setting.Key, setting.Value)
		}
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
