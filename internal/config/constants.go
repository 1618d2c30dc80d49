package config

// Default storage locations
const (
	// DefaultDataDir is where the flat-file backend keeps its CSV tables.
	DefaultDataDir = "./data"

	// DefaultDatabasePath is the default SQLite database file.
	DefaultDatabasePath = "./data/shelves.db"
)
