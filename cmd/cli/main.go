// Command oasfuzz resolves and mutates schemas from OpenAPI contracts.
package main

import (
	"fmt"
	"os"

	"github.com/oasfuzz/oasfuzz/pkg/ui"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "resolve":
		runResolve(os.Args[2:])
	case "mutate":
		runMutate(os.Args[2:])
	case "testconf":
		runTestconf(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("oasfuzz %s (built %s, commit %s)\n", ui.Version, ui.BuildDate, ui.Commit)
	case "help", "-h", "--help":
		printUsage()
	default:
		ui.Errorf("unknown command %q", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: oasfuzz <command> [flags]

Commands:
  resolve    Materialize a schema from an OpenAPI spec (dereference all $refs)
  mutate     Emit mutated variants of a schema for fault-based testing
  testconf   Rewrite a test-configuration YAML for a fuzzing run
  version    Print version information

Run "oasfuzz <command> -h" for command flags.
`)
}
