package main

import (
	"os"

	"github.com/goliatone/go-formsend/cmd/formsend/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
