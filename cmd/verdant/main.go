package main

import (
	"os"

	"github.com/verdant-io/verdant/internal/cli"
	"github.com/verdant-io/verdant/pkg/version"
)

func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}

func main() {
	if err := run(); err != nil {
		// Cobra already printed the error.
		os.Exit(1)
	}
}
