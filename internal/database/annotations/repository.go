// Package annotations provides the store operations for item annotations.
//
// Parent existence is enforced by the foreign key only; inserting an
// annotation for a missing item fails with entities.ErrConstraintViolation.
package annotations

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/shelfcache/internal/database"
	"github.com/mrlokans/shelfcache/internal/entities"
	"github.com/mrlokans/shelfcache/internal/live"
)

const newestFirst = "id DESC"

var (
	annotationTables = []live.Table{live.TableAnnotations}
	writableCols     = []string{"ItemID", "Text"}
)

// Repository handles annotation persistence.
type Repository struct {
	db  *gorm.DB
	hub *live.Hub
}

// NewRepository creates a new annotations repository.
func NewRepository(db *gorm.DB, hub *live.Hub) *Repository {
	return &Repository{db: db, hub: hub}
}

// Insert stores a new annotation and assigns its ID.
func (r *Repository) Insert(ctx context.Context, annotation *entities.Annotation) (uint, error) {
	annotation.ID = 0
	err := r.hub.Mutate(annotationTables, live.OpInsert, func(c *live.Change) error {
		if err := r.writer(ctx).Omit("Item").Create(annotation).Error; err != nil {
			return err
		}
		c.ID = annotation.ID
		c.Rows = 1
		return nil
	})
	if err != nil {
		return 0, database.TranslateError(err)
	}
	return annotation.ID, nil
}

// Update replaces the text and item reference of an existing annotation.
func (r *Repository) Update(ctx context.Context, annotation *entities.Annotation) error {
	if annotation.ID == 0 {
		return fmt.Errorf("annotation without id: %w", entities.ErrNotFound)
	}

	err := r.hub.Mutate(annotationTables, live.OpUpdate, func(c *live.Change) error {
		result := r.writer(ctx).Model(annotation).Select(writableCols).Updates(annotation)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("annotation %d: %w", annotation.ID, entities.ErrNotFound)
		}
		c.ID = annotation.ID
		c.Rows = int(result.RowsAffected)
		return nil
	})
	return database.TranslateError(err)
}

// Delete removes an annotation by ID.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	err := r.hub.Mutate(annotationTables, live.OpDelete, func(c *live.Change) error {
		result := r.writer(ctx).Delete(&entities.Annotation{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("annotation %d: %w", id, entities.ErrNotFound)
		}
		c.ID = id
		c.Rows = int(result.RowsAffected)
		return nil
	})
	return database.TranslateError(err)
}

// Get returns the annotation with the given ID, or nil if there is none.
func (r *Repository) Get(ctx context.Context, id uint) (*entities.Annotation, error) {
	var annotation entities.Annotation
	err := r.db.WithContext(ctx).First(&annotation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &annotation, nil
}

// ListByItem returns the annotations of an item, newest first.
func (r *Repository) ListByItem(ctx context.Context, itemID uint) ([]entities.Annotation, error) {
	annotations := make([]entities.Annotation, 0)
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order(newestFirst).
		Find(&annotations).Error
	return annotations, err
}

// ObserveByItem streams the annotations of an item, newest first. The stream
// emits an empty list once the item is deleted.
func (r *Repository) ObserveByItem(ctx context.Context, itemID uint) (*live.Subscription[[]entities.Annotation], error) {
	key := fmt.Sprintf("annotations/item/%d", itemID)
	return live.Observe(ctx, r.hub, key, annotationTables, func(ctx context.Context) ([]entities.Annotation, error) {
		return r.ListByItem(ctx, itemID)
	})
}

// Count returns the number of stored annotations.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Annotation{}).Count(&count).Error
	return count, err
}

func (r *Repository) writer(ctx context.Context) *gorm.DB {
	return r.db.WithContext(context.WithoutCancel(ctx))
}
