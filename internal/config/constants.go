package config

// DefaultDatabasePath is the default SQLite file for the catalog database.
const DefaultDatabasePath = "./book-exchange.db"
