package main

import (
	"os"

	"github.com/LithiraHettiarachchi/gridSense/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
