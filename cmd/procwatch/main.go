package main

import (
	"os"

	"github.com/psantana5/procwatch/cmd/procwatch/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
