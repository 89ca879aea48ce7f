package main

import (
	"os"

	"github.com/ayusman/shadowbox/cmd/shadowbox/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
