package main

import (
	"os"

	"github.com/lexdraft/lexdraft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
