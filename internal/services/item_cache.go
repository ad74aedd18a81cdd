package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mrlokans/shelfcache/internal/catalog"
	"github.com/mrlokans/shelfcache/internal/entities"
	"github.com/mrlokans/shelfcache/internal/live"
)

// ItemCache serves items from the local store and seeds the store from the
// remote catalog the first time it is found empty.
type ItemCache struct {
	store   ItemStore
	catalog CatalogFetcher
}

// NewItemCache creates a new ItemCache.
func NewItemCache(store ItemStore, catalog CatalogFetcher) *ItemCache {
	return &ItemCache{
		store:   store,
		catalog: catalog,
	}
}

// RefreshIfEmpty seeds the store from the remote catalog iff it holds no
// items. A non-empty store is left alone: there is no TTL and no
// revalidation. A failed fetch leaves the store untouched and is returned
// wrapped in entities.ErrFetchFailed; retrying is up to the caller.
//
// The count and the insert are separate steps, so two refreshes racing on an
// empty store may both seed it.
func (c *ItemCache) RefreshIfEmpty(ctx context.Context) (SeedResult, error) {
	count, err := c.store.Count(ctx)
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to count items: %w", err)
	}
	if count != 0 {
		return SeedResult{Skipped: true, ExistingItems: count}, nil
	}

	log.Printf("[SEED] Local store is empty, fetching catalog")
	records, err := c.catalog.FetchBooks(ctx)
	if err != nil {
		log.Printf("[SEED] Catalog fetch failed: %v", err)
		if !errors.Is(err, entities.ErrFetchFailed) {
			err = fmt.Errorf("%w: %w", entities.ErrFetchFailed, err)
		}
		return SeedResult{}, err
	}

	items := catalog.ToItems(records)
	if err := c.store.InsertBulk(ctx, items); err != nil {
		log.Printf("[SEED] Failed to store %d items: %v", len(items), err)
		return SeedResult{Fetched: len(records)}, fmt.Errorf("failed to store catalog items: %w", err)
	}

	log.Printf("[SEED] Stored %d items from catalog", len(items))
	return SeedResult{Fetched: len(records), Inserted: len(items)}, nil
}

// Get returns the item with the given ID, or nil if there is none.
func (c *ItemCache) Get(ctx context.Context, id uint) (*entities.Item, error) {
	return c.store.Get(ctx, id)
}

// Observe streams one item; the snapshot is nil while it does not exist.
func (c *ItemCache) Observe(ctx context.Context, id uint) (*live.Subscription[*entities.Item], error) {
	return c.store.Observe(ctx, id)
}

// List returns all items sorted by title.
func (c *ItemCache) List(ctx context.Context) ([]entities.Item, error) {
	return c.store.List(ctx)
}

// ObserveAll streams the title-sorted item list.
func (c *ItemCache) ObserveAll(ctx context.Context) (*live.Subscription[[]entities.Item], error) {
	return c.store.ObserveAll(ctx)
}

// Search returns items whose title or author contains query.
func (c *ItemCache) Search(ctx context.Context, query string) ([]entities.Item, error) {
	return c.store.Search(ctx, query)
}

// CreateOrReplace stores item, replacing the existing row when item.ID is
// set. Text fields are trimmed and the title must not be blank.
func (c *ItemCache) CreateOrReplace(ctx context.Context, item *entities.Item) (uint, error) {
	if err := normalizeItem(item); err != nil {
		return 0, err
	}
	return c.store.Insert(ctx, item)
}

// Update replaces an existing item. Returns entities.ErrNotFound when there
// is no item with that ID.
func (c *ItemCache) Update(ctx context.Context, item *entities.Item) error {
	if err := normalizeItem(item); err != nil {
		return err
	}
	return c.store.Update(ctx, item)
}

// Delete removes an item together with its annotations.
func (c *ItemCache) Delete(ctx context.Context, id uint) error {
	return c.store.Delete(ctx, id)
}

// Count returns the number of stored items.
func (c *ItemCache) Count(ctx context.Context) (int64, error) {
	return c.store.Count(ctx)
}
