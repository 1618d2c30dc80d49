package cli

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/avolkova/shelves/internal/config"
)

// InitCommand creates the backing storage for the configured backend.
type InitCommand struct {
	Force bool

	cfg *config.Config
}

func NewInitCommand(cfg *config.Config) *InitCommand {
	return &InitCommand{cfg: cfg}
}

func (cmd *InitCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	fs.BoolVar(&cmd.Force, "force", false, "Destructively recreate the store if it already exists")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s init [-force]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create the backing storage for the configured backend (%s).\n", cmd.cfg.Storage.Backend)
		fmt.Fprintf(os.Stderr, "Without -force, an already-initialized store is left untouched and\n")
		fmt.Fprintf(os.Stderr, "the command fails.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *InitCommand) Run() error {
	store, err := openStore(cmd.cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Initialize(cmd.Force); err != nil {
		return err
	}
	log.Printf("Initialized %s backend", cmd.cfg.Storage.Backend)
	return nil
}
