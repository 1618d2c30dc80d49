package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/avolkova/shelves/internal/config"
)

// ConfigCommand prints the active configuration.
type ConfigCommand struct {
	cfg *config.Config
}

func NewConfigCommand(cfg *config.Config) *ConfigCommand {
	return &ConfigCommand{cfg: cfg}
}

func (cmd *ConfigCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s config\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Show the active backend and storage paths. Override with the\n")
		fmt.Fprintf(os.Stderr, "SHELVES_BACKEND, SHELVES_DATA_DIR and SHELVES_DATABASE_PATH\n")
		fmt.Fprintf(os.Stderr, "environment variables, or a YAML file via SHELVES_CONFIG_FILE.\n")
	}
	return fs.Parse(args)
}

func (cmd *ConfigCommand) Run() error {
	fmt.Printf("Backend:        %s\n", cmd.cfg.Storage.Backend)
	fmt.Printf("Data directory: %s\n", cmd.cfg.Storage.DataDir)
	fmt.Printf("Database path:  %s\n", cmd.cfg.Storage.DatabasePath)
	return nil
}
