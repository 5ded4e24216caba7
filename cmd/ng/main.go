package main

import (
	"os"

	"github.com/oscarlic/angular-cli/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
