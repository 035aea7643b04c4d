package config

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"
	DriverPostgres DatabaseDriver = "postgres"
)

const (
	// DefaultDatabasePath is the default path for the sqlite database
	DefaultDatabasePath = "./vokabel.db"

	DefaultCORSAllowOrigins  = "http://localhost:5173,http://127.0.0.1:5173"
	DefaultUserAgent         = "vokabel/1.0 (+lesson import)"
	DefaultDictionaryBaseURL = "https://api.dictionaryapi.dev/api/v2/entries"
)
