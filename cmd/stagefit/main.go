package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/stagefit"
	"github.com/agiangrant/stagefit/cmd/stagefit/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "init":
		err = commands.Init(args)
	case "config":
		err = commands.Config(args)
	case "simulate":
		err = commands.Simulate(args)
	case "version", "-v", "--version":
		fmt.Printf("stagefit version %s\n", stagefit.Version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`stagefit - embedded stage viewport adapter

Usage: stagefit <command> [options]

Commands:
  init            Write a default stagefit.toml
  config          Print the effective configuration
  simulate        Run the frame loop against an in-memory stage
  version         Print version information
  help            Show this help message

Examples:
  stagefit init                               Create stagefit.toml here
  stagefit config --config ./stagefit.toml    Show the merged configuration
  stagefit simulate --css-width 800 --dpr 2   Simulate a retina layout
  stagefit simulate --mode webgl --snapshot stage.png

Configuration:
  Commands read stagefit.toml from the current directory or the nearest
  parent directory unless --config is given.`)
}
