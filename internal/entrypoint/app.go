package entrypoint

import (
	"fmt"

	"github.com/mrlokans/shelfcache/internal/catalog"
	"github.com/mrlokans/shelfcache/internal/config"
	"github.com/mrlokans/shelfcache/internal/database"
	"github.com/mrlokans/shelfcache/internal/database/annotations"
	"github.com/mrlokans/shelfcache/internal/database/items"
	"github.com/mrlokans/shelfcache/internal/services"
)

// App bundles the store handle and the repositories built on it. It is
// created once per process and passed to whoever needs it.
type App struct {
	DB          *database.Database
	Catalog     *catalog.Client
	Items       *services.ItemCache
	Annotations *services.Annotations
}

// NewApp opens the store at dbPath and wires both repositories to it.
func NewApp(dbPath string, dbCfg config.Database, catalogCfg config.Catalog) (*App, error) {
	db, err := database.NewDatabase(dbPath, database.WithLogLevel(database.ParseLogLevel(dbCfg.LogLevel)))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	client := catalog.NewClient(catalogCfg.BaseURL,
		catalog.WithTimeout(catalogCfg.Timeout),
		catalog.WithMinInterval(catalogCfg.MinInterval),
	)

	return &App{
		DB:          db,
		Catalog:     client,
		Items:       services.NewItemCache(items.NewRepository(db.DB, db.Hub), client),
		Annotations: services.NewAnnotations(annotations.NewRepository(db.DB, db.Hub)),
	}, nil
}

// Close releases every live query and the database connection.
func (a *App) Close() error {
	return a.DB.Close()
}
