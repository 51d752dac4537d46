// Package main is the entry point for the novelkit CLI tool.
package main

import (
	"os"

	"github.com/t59688/novel-kit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
