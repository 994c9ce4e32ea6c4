package main

import (
	"os"

	"github.com/bvisness/flowcanvas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
