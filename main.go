package main

import (
	"os"

	"github.com/gztensor/btcli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
