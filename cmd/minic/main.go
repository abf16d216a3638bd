package main

import (
	"os"

	"github.com/xiaobogaga/minic/cmd/minic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
