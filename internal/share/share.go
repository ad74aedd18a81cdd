// Package share builds the human-readable text used to recommend an item.
package share

import (
	"fmt"

	"github.com/mrlokans/shelfcache/internal/entities"
)

// Text returns the share message for an item.
func Text(item entities.Item) string {
	return fmt.Sprintf("Check out this book: %s by %s. Summary: %s", item.Title, item.Author, item.Summary)
}
