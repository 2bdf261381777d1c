package main

import (
	"github.com/spf13/cobra"

	"github.com/sorenxr/xrshadow/appconfig"
)

var appRoot string

var rootCmd = &cobra.Command{
	Use:   "xrshadowctl",
	Short: "Inspect the shadow-action dispatch engine's profiles and config tree",
	Long: "xrshadowctl is a read-only companion to the xrshadow engine: it lists " +
		"the compiled-in interaction profile catalog, inspects an application's " +
		"declared actions and resolved bindings under an xrshadow root " +
		"directory, and validates a bindings JSON file's shape before it is " +
		"dropped into bindings/custom_bindings.json. It never talks to a live " +
		"runtime or session.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&appRoot, "root", "", "xrshadow root directory (defaults to XRSHADOW_ROOT / auto-detected)")
	rootCmd.AddCommand(profilesCmd, inspectCmd, validateCmd)
}

func loadConfig() appconfig.Config {
	if appRoot != "" {
		return appconfig.LoadWithRoot(appRoot)
	}
	return appconfig.Conf
}
