// Package main provides the entry point for the stringcat server.
package main

import (
	"github.com/stringcat/stringcat/cmd/stringcat/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
