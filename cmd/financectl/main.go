package main

import (
	"os"

	"github.com/jhoicas/Financeiro-api/cmd/financectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
