package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sorenxr/xrshadow/catalog"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the compiled-in interaction profile catalog",
	Run: func(cmd *cobra.Command, args []string) {
		cat := catalog.Generate()
		for _, path := range cat.SortedPaths() {
			p := cat.Profiles[path]
			color.Cyan("%s", p.Path)
			fmt.Printf("  %s\n", p.Title)
			fmt.Printf("  user paths: %v\n", p.UserPaths)
			for _, subpathKey := range p.SortedSubpaths() {
				sp := p.Subpaths[subpathKey]
				side := ""
				if sp.Side != catalog.SideNone {
					side = fmt.Sprintf(" [%s]", sp.Side)
				}
				fmt.Printf("    %s%s — %s %v\n", subpathKey, side, sp.Name, sp.Features)
			}
			fmt.Println()
		}
	},
}
