package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mrlokans/shelfcache/internal/config"
	"github.com/mrlokans/shelfcache/internal/entrypoint"
)

// SeedCommand fills an empty local store from the remote catalog.
type SeedCommand struct {
	DatabasePath string
	CatalogURL   string
	Timeout      time.Duration
	Verbose      bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.StringVar(&cmd.CatalogURL, "catalog-url", config.DefaultCatalogBaseURL, "Base URL of the remote catalog")
	fs.DurationVar(&cmd.Timeout, "timeout", 0, "Give up on the catalog after this long (0 waits indefinitely)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "List the stored items after seeding")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch the first catalog page into the local database if it is empty.\n")
		fmt.Fprintf(os.Stderr, "A database that already holds items is left untouched.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	fmt.Println("Catalog Seed")
	fmt.Println("============")

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	fmt.Printf("Database: %s\n", absDBPath)
	fmt.Printf("Catalog:  %s\n", cmd.CatalogURL)

	app, err := entrypoint.NewApp(absDBPath, config.Database{LogLevel: "error"}, config.Catalog{
		BaseURL: cmd.CatalogURL,
		Timeout: cmd.Timeout,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := app.Items.RefreshIfEmpty(ctx)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	if result.Skipped {
		fmt.Printf("\nDatabase already holds %d items, nothing fetched.\n", result.ExistingItems)
		return nil
	}

	fmt.Printf("\nFetched %d records, stored %d items.\n", result.Fetched, result.Inserted)

	if cmd.Verbose {
		items, err := app.Items.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list items: %w", err)
		}
		printItems(items)
	}
	return nil
}
