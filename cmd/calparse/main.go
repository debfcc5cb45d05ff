package main

import (
	"os"

	"github.com/klauskaan/go-cal/cmd/calparse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
