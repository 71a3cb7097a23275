// Package main is the entry point for the fuzzy CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/fuzzy/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
