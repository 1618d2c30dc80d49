package cli

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avolkova/shelves/internal/config"
	"github.com/avolkova/shelves/internal/entities"
	"github.com/avolkova/shelves/internal/library"
)

// ManageCommand adds, edits or deletes catalog rows. Field values come from
// flags, so every input is in hand before the first write.
type ManageCommand struct {
	Database string // books | reading
	Mode     string // add | edit | delete

	ID      int64
	Title   string
	Pages   int
	Rating  int
	Authors string // "First Middle Last, Suffix; Other Author"
	Genres  string // "Sci-Fi,Fantasy"
	Series  string // "Dune:1;Legends:3"
	BookID  int64
	Start   string
	Finish  string

	cfg *config.Config
}

func NewManageCommand(cfg *config.Config) *ManageCommand {
	return &ManageCommand{cfg: cfg}
}

func (cmd *ManageCommand) ParseFlags(args []string) error {
	if len(args) < 2 {
		cmd.usage()
		return fmt.Errorf("manage needs a database (books|reading) and a mode (add|edit|delete)")
	}
	cmd.Database = args[0]
	cmd.Mode = args[1]

	if cmd.Database != "books" && cmd.Database != "reading" {
		return fmt.Errorf("unknown database %q (want books or reading)", cmd.Database)
	}
	if cmd.Mode != "add" && cmd.Mode != "edit" && cmd.Mode != "delete" {
		return fmt.Errorf("unknown mode %q (want add, edit or delete)", cmd.Mode)
	}

	fs := flag.NewFlagSet("manage "+cmd.Database+" "+cmd.Mode, flag.ExitOnError)
	fs.Int64Var(&cmd.ID, "id", 0, "Row id (required for edit and delete)")
	if cmd.Database == "books" {
		fs.StringVar(&cmd.Title, "title", "", "Book title (required for add)")
		fs.IntVar(&cmd.Pages, "pages", 0, "Page count")
		fs.IntVar(&cmd.Rating, "rating", 0, "Your rating, 1-5")
		fs.StringVar(&cmd.Authors, "authors", "", "Semicolon-separated author names, e.g. 'Frank Herbert; Ursula K. Le Guin'")
		fs.StringVar(&cmd.Genres, "genres", "", "Comma-separated genre names")
		fs.StringVar(&cmd.Series, "series", "", "Semicolon-separated 'Series:position' entries")
	} else {
		fs.Int64Var(&cmd.BookID, "book", 0, "Book id the session belongs to (required for add)")
		fs.StringVar(&cmd.Start, "start", "", "Start date, YYYY-MM-DD")
		fs.StringVar(&cmd.Finish, "finish", "", "Finish date, YYYY-MM-DD (omit while still reading)")
		fs.IntVar(&cmd.Rating, "rating", 0, "Session rating, 1-5")
	}
	fs.Usage = cmd.usage

	if err := fs.Parse(args[2:]); err != nil {
		return err
	}
	if cmd.Mode != "add" && cmd.ID == 0 {
		return fmt.Errorf("manage %s %s requires -id", cmd.Database, cmd.Mode)
	}
	return nil
}

func (cmd *ManageCommand) usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s manage <books|reading> <add|edit|delete> [flags]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Examples:\n")
	fmt.Fprintf(os.Stderr, "  %s manage books add -title Dune -pages 412 -authors 'Frank Herbert' -genres Sci-Fi\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s manage reading add -book 1 -start 2020-01-01 -finish 2020-01-10 -rating 5\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s manage books delete -id 1\n", os.Args[0])
}

func (cmd *ManageCommand) Run() error {
	store, err := openStore(cmd.cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	lib := library.New(store)

	if cmd.Database == "books" {
		return cmd.runBooks(lib)
	}
	return cmd.runReading(lib)
}

func (cmd *ManageCommand) runBooks(lib *library.Library) error {
	switch cmd.Mode {
	case "add", "edit":
		input, err := cmd.bookInput()
		if err != nil {
			return err
		}
		if cmd.Mode == "add" {
			id, err := lib.AddBook(input)
			if err != nil {
				return err
			}
			log.Printf("Added book %d: %s", id, input.Title)
			return nil
		}
		if err := lib.EditBook(cmd.ID, input); err != nil {
			return err
		}
		log.Printf("Updated book %d", cmd.ID)
		return nil
	default:
		if err := lib.DeleteBook(cmd.ID); err != nil {
			return err
		}
		log.Printf("Deleted book %d and its reading entries", cmd.ID)
		return nil
	}
}

func (cmd *ManageCommand) runReading(lib *library.Library) error {
	switch cmd.Mode {
	case "add", "edit":
		input, err := cmd.sessionInput()
		if err != nil {
			return err
		}
		if cmd.Mode == "add" {
			id, err := lib.AddReadingSession(input)
			if err != nil {
				return err
			}
			log.Printf("Added reading entry %d", id)
			return nil
		}
		if err := lib.EditReadingSession(cmd.ID, input); err != nil {
			return err
		}
		log.Printf("Updated reading entry %d", cmd.ID)
		return nil
	default:
		if err := lib.DeleteReadingSession(cmd.ID); err != nil {
			return err
		}
		log.Printf("Deleted reading entry %d", cmd.ID)
		return nil
	}
}

func (cmd *ManageCommand) bookInput() (library.BookInput, error) {
	input := library.BookInput{Title: cmd.Title}
	if cmd.Pages > 0 {
		pages := cmd.Pages
		input.Pages = &pages
	}
	if cmd.Rating > 0 {
		rating := cmd.Rating
		input.Rating = &rating
	}
	input.Authors = parseAuthors(cmd.Authors)
	if cmd.Genres != "" {
		for _, name := range strings.Split(cmd.Genres, ",") {
			input.Genres = append(input.Genres, strings.TrimSpace(name))
		}
	}
	series, err := parseSeries(cmd.Series)
	if err != nil {
		return library.BookInput{}, err
	}
	input.Series = series
	return input, nil
}

func (cmd *ManageCommand) sessionInput() (library.SessionInput, error) {
	input := library.SessionInput{BookID: cmd.BookID}
	if cmd.Rating > 0 {
		rating := cmd.Rating
		input.Rating = &rating
	}
	var err error
	if input.StartDate, err = parseOptionalDate(cmd.Start); err != nil {
		return library.SessionInput{}, err
	}
	if input.FinishDate, err = parseOptionalDate(cmd.Finish); err != nil {
		return library.SessionInput{}, err
	}
	return input, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("bad date %q (want YYYY-MM-DD)", value)
	}
	return &t, nil
}

// parseAuthors splits a semicolon-separated list of names, each in the
// "First Middle Last, Suffix" form the views render.
func parseAuthors(value string) []entities.Author {
	if value == "" {
		return nil
	}
	var authors []entities.Author
	for _, name := range strings.Split(value, ";") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		authors = append(authors, parseAuthor(name))
	}
	return authors
}

func parseAuthor(name string) entities.Author {
	var author entities.Author
	if base, suffix, ok := strings.Cut(name, ","); ok {
		author.Suffix = strings.TrimSpace(suffix)
		name = strings.TrimSpace(base)
	}
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
	case 1:
		author.LastName = parts[0]
	case 2:
		author.FirstName = parts[0]
		author.LastName = parts[1]
	default:
		author.FirstName = parts[0]
		author.MiddleName = strings.Join(parts[1:len(parts)-1], " ")
		author.LastName = parts[len(parts)-1]
	}
	return author
}

func parseSeries(value string) ([]library.SeriesEntry, error) {
	if value == "" {
		return nil, nil
	}
	var entries []library.SeriesEntry
	for _, entry := range strings.Split(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, position, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("bad series entry %q (want 'Name:position')", entry)
		}
		number, err := strconv.Atoi(strings.TrimSpace(position))
		if err != nil {
			return nil, fmt.Errorf("bad series position in %q", entry)
		}
		entries = append(entries, library.SeriesEntry{
			Name:       strings.TrimSpace(name),
			BookNumber: number,
		})
	}
	return entries, nil
}
