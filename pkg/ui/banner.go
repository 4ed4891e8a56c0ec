package ui

import (
	"fmt"
	"os"
)

// Version information, overridable at build time via ldflags:
//
//	go build -ldflags "-X github.com/oasfuzz/oasfuzz/pkg/ui.Version=1.0.0"
var (
	Version   = "0.3.0"
	BuildDate = "dev"
	Commit    = "dev"
)

// PrintBanner prints the tool banner to stderr.
func PrintBanner() {
	if ColorTerminal() {
		fmt.Fprintln(os.Stderr, TitleStyle.Render("oasfuzz")+" "+MutedStyle.Render("v"+Version))
		return
	}
	fmt.Fprintf(os.Stderr, "oasfuzz v%s\n", Version)
}
