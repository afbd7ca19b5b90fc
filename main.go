package main

import (
	"os"

	"github.com/caffeine-storm/shipyard/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
