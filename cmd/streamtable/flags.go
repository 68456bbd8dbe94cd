// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports -config, -exec, -file, -demo, -max-rows, -log, -v and -version

package main

import (
	"flag"
	"time"
)

type cliArgs struct {
	configPath   string
	exec         string
	file         string
	demo         bool
	demoInterval time.Duration
	maxRows      int
	logPath      string
	verbose      bool
	version      bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.configPath, "config", "", "Config file (default: ~/.streamtable/config.yaml then .streamtable/config.yaml)")
	flag.StringVar(&args.exec, "exec", "", "Shell command whose stdout is streamed as rows")
	flag.StringVar(&args.file, "file", "", "File whose lines are loaded as rows")
	flag.BoolVar(&args.demo, "demo", false, "Stream synthetic log rows")
	flag.DurationVar(&args.demoInterval, "demo-interval", 200*time.Millisecond, "Delay between synthetic rows")
	flag.IntVar(&args.maxRows, "max-rows", 0, "Rows kept before the oldest is dropped (overrides config)")
	flag.StringVar(&args.logPath, "log", "", "Write logs to this file (default: discard)")
	flag.BoolVar(&args.verbose, "v", false, "Verbose (debug) logging")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}
