// Package items provides the store operations for catalog items.
//
// Every write goes through the live hub so continuous queries observe it.
// Writes run detached from the caller's cancellation: once started, a write
// completes even if the caller has gone away.
//
// # Usage
//
//	repo := items.NewRepository(db.DB, db.Hub)
//	id, err := repo.Insert(ctx, &entities.Item{Title: "Dracula"})
//
//	sub, err := repo.ObserveAll(ctx)
//	defer sub.Close()
package items

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/shelfcache/internal/database"
	"github.com/mrlokans/shelfcache/internal/entities"
	"github.com/mrlokans/shelfcache/internal/live"
)

const (
	allItemsKey = "items/all"
	listOrder   = "title ASC, id ASC"
)

var (
	itemTables    = []live.Table{live.TableItems}
	cascadeTables = []live.Table{live.TableItems, live.TableAnnotations}
	writableCols  = []string{"Title", "Author", "Summary", "Language"}
)

// Repository handles item persistence.
type Repository struct {
	db  *gorm.DB
	hub *live.Hub
}

// NewRepository creates a new items repository.
func NewRepository(db *gorm.DB, hub *live.Hub) *Repository {
	return &Repository{db: db, hub: hub}
}

// Insert stores an item. A zero ID is assigned by the store; a non-zero ID
// inserts or fully replaces the row with that ID.
func (r *Repository) Insert(ctx context.Context, item *entities.Item) (uint, error) {
	err := r.hub.Mutate(itemTables, live.OpInsert, func(c *live.Change) error {
		if err := r.writer(ctx).Clauses(upsertByID()).Create(item).Error; err != nil {
			return err
		}
		c.ID = item.ID
		c.Rows = 1
		return nil
	})
	if err != nil {
		return 0, database.TranslateError(err)
	}
	return item.ID, nil
}

// InsertBulk upserts all items in a single transaction. Either every item is
// stored or none is. Assigned IDs are written back into the slice.
func (r *Repository) InsertBulk(ctx context.Context, items []entities.Item) error {
	if len(items) == 0 {
		return nil
	}

	err := r.hub.Mutate(itemTables, live.OpBulkInsert, func(c *live.Change) error {
		err := r.writer(ctx).Transaction(func(tx *gorm.DB) error {
			for i := range items {
				if err := tx.Clauses(upsertByID()).Create(&items[i]).Error; err != nil {
					return fmt.Errorf("insert item %q: %w", items[i].Title, err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		c.Rows = len(items)
		return nil
	})
	return database.TranslateError(err)
}

// Get returns the item with the given ID, or nil if there is none.
func (r *Repository) Get(ctx context.Context, id uint) (*entities.Item, error) {
	var item entities.Item
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns all items sorted by title.
func (r *Repository) List(ctx context.Context) ([]entities.Item, error) {
	items := make([]entities.Item, 0)
	err := r.db.WithContext(ctx).Order(listOrder).Find(&items).Error
	return items, err
}

// Search returns items whose title or author contains query (case-insensitive).
func (r *Repository) Search(ctx context.Context, query string) ([]entities.Item, error) {
	items := make([]entities.Item, 0)
	searchPattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)", searchPattern, searchPattern).
		Order(listOrder).
		Find(&items).Error
	return items, err
}

// Observe streams the item with the given ID. A nil snapshot means the item
// does not exist (anymore); the stream stays open.
func (r *Repository) Observe(ctx context.Context, id uint) (*live.Subscription[*entities.Item], error) {
	key := fmt.Sprintf("items/%d", id)
	return live.Observe(ctx, r.hub, key, itemTables, func(ctx context.Context) (*entities.Item, error) {
		return r.Get(ctx, id)
	})
}

// ObserveAll streams the full item list sorted by title.
func (r *Repository) ObserveAll(ctx context.Context) (*live.Subscription[[]entities.Item], error) {
	return live.Observe(ctx, r.hub, allItemsKey, itemTables, r.List)
}

// Update replaces every column of an existing item.
func (r *Repository) Update(ctx context.Context, item *entities.Item) error {
	if item.ID == 0 {
		return fmt.Errorf("item without id: %w", entities.ErrNotFound)
	}

	err := r.hub.Mutate(itemTables, live.OpUpdate, func(c *live.Change) error {
		result := r.writer(ctx).Model(item).Select(writableCols).Updates(item)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("item %d: %w", item.ID, entities.ErrNotFound)
		}
		c.ID = item.ID
		c.Rows = int(result.RowsAffected)
		return nil
	})
	return database.TranslateError(err)
}

// Delete removes an item. Its annotations go with it through the foreign
// key cascade, in the same statement, and both tables are published together.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	err := r.hub.Mutate(cascadeTables, live.OpDelete, func(c *live.Change) error {
		result := r.writer(ctx).Delete(&entities.Item{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("item %d: %w", id, entities.ErrNotFound)
		}
		c.ID = id
		c.Rows = int(result.RowsAffected)
		return nil
	})
	return database.TranslateError(err)
}

// Count returns the number of stored items.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Item{}).Count(&count).Error
	return count, err
}

func (r *Repository) writer(ctx context.Context) *gorm.DB {
	return r.db.WithContext(context.WithoutCancel(ctx))
}

func upsertByID() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}
}
