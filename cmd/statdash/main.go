// Package main is the entry point of the statdash CLI.
package main

import (
	"os"

	"github.com/ougirez/statdash/cmd/statdash/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
