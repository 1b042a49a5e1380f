package main

import (
	"os"

	"github.com/BrandonKowalski/shoppinglist/cmd/shoppinglist/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
