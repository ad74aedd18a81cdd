package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./shelfcache.db"

	// DefaultCatalogBaseURL is the Gutendex API root
	DefaultCatalogBaseURL = "https://gutendex.com"
)
