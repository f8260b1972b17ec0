// Command drawer runs, replays and renders the slide-out drawer.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/drawer/cmd/drawer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
