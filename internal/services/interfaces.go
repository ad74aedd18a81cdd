package services

import (
	"context"

	"github.com/mrlokans/shelfcache/internal/catalog"
	"github.com/mrlokans/shelfcache/internal/entities"
	"github.com/mrlokans/shelfcache/internal/live"
)

// ItemStore is the local item table.
type ItemStore interface {
	Insert(ctx context.Context, item *entities.Item) (uint, error)
	InsertBulk(ctx context.Context, items []entities.Item) error
	Get(ctx context.Context, id uint) (*entities.Item, error)
	List(ctx context.Context) ([]entities.Item, error)
	Search(ctx context.Context, query string) ([]entities.Item, error)
	Observe(ctx context.Context, id uint) (*live.Subscription[*entities.Item], error)
	ObserveAll(ctx context.Context) (*live.Subscription[[]entities.Item], error)
	Update(ctx context.Context, item *entities.Item) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// AnnotationStore is the local annotation table.
type AnnotationStore interface {
	Insert(ctx context.Context, annotation *entities.Annotation) (uint, error)
	Update(ctx context.Context, annotation *entities.Annotation) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*entities.Annotation, error)
	ListByItem(ctx context.Context, itemID uint) ([]entities.Annotation, error)
	ObserveByItem(ctx context.Context, itemID uint) (*live.Subscription[[]entities.Annotation], error)
}

// CatalogFetcher retrieves the default page of the remote catalog.
type CatalogFetcher interface {
	FetchBooks(ctx context.Context) ([]catalog.Record, error)
}

// SeedResult contains the outcome of a refresh-if-empty call.
type SeedResult struct {
	Skipped       bool  `json:"skipped"`
	ExistingItems int64 `json:"existing_items"`
	Fetched       int   `json:"fetched"`
	Inserted      int   `json:"inserted"`
}
