// Package main is the entry point for the mdxgen CLI.
package main

import (
	"os"

	"github.com/quillon/mdxgen/cmd/mdxgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
