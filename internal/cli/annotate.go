package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/shelfcache/internal/config"
	"github.com/mrlokans/shelfcache/internal/entities"
	"github.com/mrlokans/shelfcache/internal/entrypoint"
)

// AnnotateCommand attaches an annotation to a stored item.
type AnnotateCommand struct {
	DatabasePath string
	ItemID       uint
	Text         string
}

func NewAnnotateCommand() *AnnotateCommand {
	return &AnnotateCommand{}
}

func (cmd *AnnotateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)

	var itemID uint64
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.Uint64Var(&itemID, "item", 0, "ID of the item to annotate (required)")
	fs.StringVar(&cmd.Text, "text", "", "Annotation text (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s annotate -item <id> -text <text> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if itemID == 0 {
		return fmt.Errorf("required flag -item not provided")
	}
	cmd.ItemID = uint(itemID)
	return nil
}

func (cmd *AnnotateCommand) Run() error {
	app, err := entrypoint.NewApp(cmd.DatabasePath, config.Database{LogLevel: "error"}, config.Catalog{})
	if err != nil {
		return err
	}
	defer app.Close()

	annotation, err := app.Annotations.Add(context.Background(), cmd.ItemID, cmd.Text)
	switch {
	case errors.Is(err, entities.ErrValidationFailed):
		return fmt.Errorf("annotation text must not be blank")
	case errors.Is(err, entities.ErrConstraintViolation):
		return fmt.Errorf("item %d does not exist", cmd.ItemID)
	case err != nil:
		return fmt.Errorf("failed to add annotation: %w", err)
	}

	fmt.Printf("Added annotation %d to item %d\n", annotation.ID, annotation.ItemID)
	return nil
}
