package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/shelfcache/internal/config"
	"github.com/mrlokans/shelfcache/internal/entities"
	"github.com/mrlokans/shelfcache/internal/entrypoint"
	"github.com/mrlokans/shelfcache/internal/share"
)

// ListCommand prints the locally stored items.
type ListCommand struct {
	DatabasePath    string
	Query           string
	ShowAnnotations bool
	ShareText       bool
}

func NewListCommand() *ListCommand {
	return &ListCommand{}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.StringVar(&cmd.Query, "q", "", "Only show items whose title or author contains this text")
	fs.BoolVar(&cmd.ShowAnnotations, "annotations", false, "Show the annotations of every item")
	fs.BoolVar(&cmd.ShareText, "share", false, "Print the share text of every item")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List items in the local database, sorted by title.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ListCommand) Run() error {
	app, err := entrypoint.NewApp(cmd.DatabasePath, config.Database{LogLevel: "error"}, config.Catalog{})
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := context.Background()

	var items []entities.Item
	if cmd.Query != "" {
		items, err = app.Items.Search(ctx, cmd.Query)
	} else {
		items, err = app.Items.List(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	if len(items) == 0 {
		fmt.Println("No items found. Run 'seed' to fetch the catalog.")
		return nil
	}

	for i, item := range items {
		printItem(i+1, item)

		if cmd.ShareText {
			fmt.Printf("    share: %s\n", share.Text(item))
		}

		if cmd.ShowAnnotations {
			annotations, err := app.Annotations.List(ctx, item.ID)
			if err != nil {
				return fmt.Errorf("failed to list annotations of item %d: %w", item.ID, err)
			}
			for _, a := range annotations {
				fmt.Printf("    - [%d] %s\n", a.ID, a.Text)
			}
		}
	}
	fmt.Printf("\n%d items\n", len(items))
	return nil
}

func printItems(items []entities.Item) {
	fmt.Println("\n=== Items ===")
	for i, item := range items {
		printItem(i+1, item)
	}
}

func printItem(n int, item entities.Item) {
	author := item.Author
	if author == "" {
		author = "(no author)"
	}
	fmt.Printf("%d. [%d] \"%s\" by %s (%s)\n", n, item.ID, item.Title, author, item.Language)
}
