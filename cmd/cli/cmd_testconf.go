package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oasfuzz/oasfuzz/pkg/testconf"
	"github.com/oasfuzz/oasfuzz/pkg/ui"
)

func runTestconf(args []string) {
	fs := flag.NewFlagSet("testconf", flag.ExitOnError)

	confPath := fs.String("conf", "", "Path to the test configuration YAML")
	dataDir := fs.String("data", "data", "Directory holding generator seed data (CSV/JSON)")
	outputFile := fs.String("o", "", "Output file (default modified_<input name>)")
	_ = fs.Parse(args)

	if *confPath == "" {
		ui.Errorf("testconf requires -conf")
		fs.Usage()
		os.Exit(2)
	}

	conf, err := testconf.Load(*confPath)
	if err != nil {
		ui.Errorf("%v", err)
		os.Exit(1)
	}

	testconf.Rewrite(conf, testconf.RewriteOptions{DataDir: *dataDir})

	out := *outputFile
	if out == "" {
		out = "modified_" + filepath.Base(*confPath)
	}
	if err := conf.Save(out); err != nil {
		ui.Errorf("%v", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", out)
}
