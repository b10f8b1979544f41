package main

import (
	"os"

	"github.com/idilsaglam/tada/internal/cli"
)

func main() {
	// Hand the args to the command tree; it picks the exit code.
	os.Exit(cli.Execute(os.Args[1:], cli.Options{}))
}
