package main

import (
	"os"

	"github.com/webfront-labs/storegate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
