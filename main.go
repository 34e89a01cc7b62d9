package main

import (
	"os"

	"github.com/gridcap/renew247/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
