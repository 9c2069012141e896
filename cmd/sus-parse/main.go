package main

import (
	"os"

	"github.com/sus-lang/sus-parser/cmd/sus-parse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
