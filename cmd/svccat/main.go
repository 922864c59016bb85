// Command svccat browses a service catalog from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/svccat/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

func run() error {
	return cli.NewRootCmd(version).Execute()
}
