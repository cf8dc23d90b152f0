package main

import (
	"os"

	"mars/cmd/mars/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
