package main

import (
	_ "github.com/gdamore/tcell/v2" // keep tcell in the build; Bubble Tea owns the terminal
	"github.com/tcheinen/bandwhich/internal/cli"
)

// set via ldflags at build time:
//
//	go build -ldflags "-X main.version=1.0.0"
var version = "dev"

func main() {
	cli.SetVersionInfo(version)
	cli.Execute()
}
