package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sorenxr/xrshadow/appconfig"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <app-id>",
	Short: "Dump an application's declared actions and resolved bindings",
	Long: "Reads <root>/apps/<app-id>/actions.json and resolves " +
		"bindings/custom_bindings.json (falling back to default_bindings.json), " +
		"and prints a summary. The Binding Resolver's attach step does not read " +
		"these files; it uses only the suggestions recorded in the session. This reads files written by the out-of-scope editor/runtime " +
		"collaborator; it does not talk to a live session.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		appID := args[0]
		cfg := loadConfig()

		actions, err := cfg.LoadActions(appID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
			os.Exit(1)
		}

		bindings, err := appconfig.NewLoader(cfg).Resolve(appID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
			os.Exit(1)
		}

		color.Cyan("%s (%s)", actions.AppName, appID)
		for setName, set := range actions.Sets {
			fmt.Printf("  %s — %s\n", setName, set.LocalizedName)
			for actionName, action := range set.Actions {
				leafPaths := bindings.LeafPaths(setName, actionName)
				total := 0
				for _, paths := range leafPaths {
					total += len(paths)
				}
				fmt.Printf("    %-20s %-10s user_paths=%v bound_leaf_paths=%d\n",
					actionName, action.ActionType, action.UserPaths, total)
			}
		}
	},
}
