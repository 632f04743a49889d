// Command brc computes per-station min/mean/max over measurement files.
package main

import (
	"fmt"
	"os"

	"github.com/eunmann/brc/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
