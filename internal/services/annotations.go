package services

import (
	"context"

	"github.com/mrlokans/shelfcache/internal/entities"
	"github.com/mrlokans/shelfcache/internal/live"
)

// Annotations manages user comments on items. Whether the item exists is
// left to the store's foreign key.
type Annotations struct {
	store AnnotationStore
}

// NewAnnotations creates a new Annotations service.
func NewAnnotations(store AnnotationStore) *Annotations {
	return &Annotations{store: store}
}

// Observe streams the annotations of an item, newest first.
func (a *Annotations) Observe(ctx context.Context, itemID uint) (*live.Subscription[[]entities.Annotation], error) {
	return a.store.ObserveByItem(ctx, itemID)
}

// List returns the annotations of an item, newest first.
func (a *Annotations) List(ctx context.Context, itemID uint) ([]entities.Annotation, error) {
	return a.store.ListByItem(ctx, itemID)
}

// Get returns the annotation with the given ID, or nil if there is none.
func (a *Annotations) Get(ctx context.Context, id uint) (*entities.Annotation, error) {
	return a.store.Get(ctx, id)
}

// Add attaches a new annotation to an item. Blank text is rejected with a
// validation error; a missing item yields entities.ErrConstraintViolation.
func (a *Annotations) Add(ctx context.Context, itemID uint, text string) (*entities.Annotation, error) {
	trimmed, err := normalizeAnnotationText(text)
	if err != nil {
		return nil, err
	}

	annotation := &entities.Annotation{ItemID: itemID, Text: trimmed}
	if _, err := a.store.Insert(ctx, annotation); err != nil {
		return nil, err
	}
	return annotation, nil
}

// Edit replaces an existing annotation.
func (a *Annotations) Edit(ctx context.Context, annotation *entities.Annotation) error {
	trimmed, err := normalizeAnnotationText(annotation.Text)
	if err != nil {
		return err
	}
	annotation.Text = trimmed
	return a.store.Update(ctx, annotation)
}

// Delete removes an annotation.
func (a *Annotations) Delete(ctx context.Context, id uint) error {
	return a.store.Delete(ctx, id)
}
