package main

import (
	"os"

	"github.com/techiewarrior/panrule/cmd/panrule/command"
)

func main() {
	if err := command.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
