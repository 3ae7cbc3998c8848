package main

import (
	"os"

	"github.com/uklc/lessons/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
