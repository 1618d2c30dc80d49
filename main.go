package main

import (
	"fmt"
	"os"

	"github.com/avolkova/shelves/internal/cli"
	"github.com/avolkova/shelves/internal/config"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.NewConfig()
	args := os.Args[2:]

	var cmd command
	switch os.Args[1] {
	case "init":
		cmd = cli.NewInitCommand(cfg)
	case "view":
		cmd = cli.NewViewCommand(cfg)
	case "manage":
		cmd = cli.NewManageCommand(cfg)
	case "config":
		cmd = cli.NewConfigCommand(cfg)
	case "version":
		fmt.Printf("shelves %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  init     Create the backing storage (use -force to recreate)\n")
	fmt.Fprintf(os.Stderr, "  view     Render the books or reading view, or summary stats\n")
	fmt.Fprintf(os.Stderr, "  manage   Add, edit or delete books and reading entries\n")
	fmt.Fprintf(os.Stderr, "  config   Show the active configuration\n")
	fmt.Fprintf(os.Stderr, "  version  Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
