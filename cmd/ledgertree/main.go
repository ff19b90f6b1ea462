package main

import (
	"os"

	"github.com/ledgertree-dev/ledgertree/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
