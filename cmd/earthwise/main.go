// Package main is the single-binary entrypoint for EarthWise.
// One binary: local store, points engine, REST API, and CLI.
package main

import "github.com/abayate/earthwise/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
