package main

import (
	"os"

	"scrollfx/cmd/scrollfx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
