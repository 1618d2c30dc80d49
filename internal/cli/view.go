package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/avolkova/shelves/internal/config"
	"github.com/avolkova/shelves/internal/library"
	"github.com/avolkova/shelves/internal/views"
)

// ViewCommand renders a friendly view (or summary stats), optionally reduced
// by filter arguments.
type ViewCommand struct {
	Database string // books | reading
	Mode     string // table | stats
	Filters  []views.Predicate

	cfg *config.Config
}

func NewViewCommand(cfg *config.Config) *ViewCommand {
	return &ViewCommand{cfg: cfg}
}

func (cmd *ViewCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s view <books|reading> <table|stats> [filters...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Render the books or reading view as a table, or print summary stats.\n\n")
		fmt.Fprintf(os.Stderr, "Filters combine with AND:\n")
		fmt.Fprintf(os.Stderr, "  'Title~dune' 'Rating>4' 'Pages=100..300' 'Start=2021' 'Finish=null'\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) < 2 {
		fs.Usage()
		return fmt.Errorf("view needs a database (books|reading) and a mode (table|stats)")
	}
	cmd.Database = rest[0]
	cmd.Mode = rest[1]

	if cmd.Database != "books" && cmd.Database != "reading" {
		return fmt.Errorf("unknown database %q (want books or reading)", cmd.Database)
	}
	switch cmd.Mode {
	case "table", "stats":
	case "charts":
		return fmt.Errorf("chart rendering is not supported by this build")
	default:
		return fmt.Errorf("unknown mode %q (want table or stats)", cmd.Mode)
	}

	filters, err := ParsePredicates(rest[2:])
	if err != nil {
		return err
	}
	cmd.Filters = filters
	return nil
}

func (cmd *ViewCommand) Run() error {
	store, err := openStore(cmd.cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	lib := library.New(store)

	if cmd.Mode == "stats" {
		stats, err := lib.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("Books:          %d\n", stats.TotalBooks)
		fmt.Printf("Finished reads: %d\n", stats.FinishedReads)
		fmt.Printf("In progress:    %d\n", stats.InProgress)
		fmt.Printf("Pages read:     %d\n", stats.PagesRead)
		fmt.Printf("Average rating: %.1f\n", stats.AverageRating)
		return nil
	}

	var table views.Table
	if cmd.Database == "books" {
		table, err = lib.ListBooks(cmd.Filters...)
	} else {
		table, err = lib.ListReading(cmd.Filters...)
	}
	if err != nil {
		return err
	}
	return RenderTable(os.Stdout, table)
}
