package main

import (
	"os"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
