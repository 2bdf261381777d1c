// Command xrshadowctl is a read-only introspection CLI over this module's
// catalog and the JSON config tree an application's editor/runtime
// collaborator persists under <root>/apps/ (spec.md §6). It never mutates
// live engine state — the editor and the runtime itself are out of scope
// per spec.md §1 — and exists only to make the shadow-action dispatch
// engine's data observable from a terminal, the way the teacher ships a
// small cobra command tree alongside its library packages
// (_examples/wwsheng009-yao/cmd).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
