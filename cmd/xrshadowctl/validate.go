package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sorenxr/xrshadow/appconfig"
)

var validateCmd = &cobra.Command{
	Use:   "validate <bindings.json>",
	Short: "Validate a bindings JSON file's shape before deploying it as custom_bindings.json",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
			os.Exit(1)
		}

		var f appconfig.BindingsFile
		if err := json.Unmarshal(data, &f); err != nil {
			fmt.Fprintf(os.Stderr, "%s invalid JSON: %v\n", color.RedString("Error:"), err)
			os.Exit(1)
		}

		var problems []string
		for profile, sets := range f {
			if !strings.HasPrefix(profile, "/interaction_profiles/") {
				problems = append(problems, fmt.Sprintf("profile %q does not look like an interaction profile path", profile))
			}
			for setName, set := range sets {
				for actionName, spec := range set {
					for _, leaf := range spec.Bindings {
						if !strings.HasPrefix(leaf, "/user/") {
							problems = append(problems, fmt.Sprintf("%s/%s/%s: leaf path %q does not start with /user/", profile, setName, actionName, leaf))
						}
					}
				}
			}
		}

		if len(problems) == 0 {
			color.Green("OK: %s is a well-formed bindings file", path)
			return
		}

		color.Yellow("%d problem(s) found in %s:", len(problems), path)
		for _, p := range problems {
			fmt.Printf("  - %s\n", p)
		}
		os.Exit(1)
	},
}
