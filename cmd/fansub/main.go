package main

import (
	"os"

	"github.com/mgpai22/fansub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
