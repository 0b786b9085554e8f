package main

import "github.com/strrl/tmuxdev/cmd/tmuxdev/commands"

// Version information set via ldflags at build time
var version = "dev"

func main() {
	commands.SetVersion(version)
	commands.Execute()
}
