// Package main is the single-binary entrypoint for digd, the DIG
// adaptive compute allocation daemon.
package main

import "github.com/dig-network/digd/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
