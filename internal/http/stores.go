package http

import (
	"context"

	"github.com/mrlokans/shelfcache/internal/entities"
	"github.com/mrlokans/shelfcache/internal/live"
	"github.com/mrlokans/shelfcache/internal/services"
)

// This file consolidates the service interfaces used by HTTP controllers.

// ItemService is the item cache as seen by the items controller.
type ItemService interface {
	RefreshIfEmpty(ctx context.Context) (services.SeedResult, error)
	Get(ctx context.Context, id uint) (*entities.Item, error)
	Observe(ctx context.Context, id uint) (*live.Subscription[*entities.Item], error)
	List(ctx context.Context) ([]entities.Item, error)
	ObserveAll(ctx context.Context) (*live.Subscription[[]entities.Item], error)
	Search(ctx context.Context, query string) ([]entities.Item, error)
	CreateOrReplace(ctx context.Context, item *entities.Item) (uint, error)
	Update(ctx context.Context, item *entities.Item) error
	Delete(ctx context.Context, id uint) error
}

// AnnotationService manages annotations for the annotations controller.
type AnnotationService interface {
	Observe(ctx context.Context, itemID uint) (*live.Subscription[[]entities.Annotation], error)
	List(ctx context.Context, itemID uint) ([]entities.Annotation, error)
	Get(ctx context.Context, id uint) (*entities.Annotation, error)
	Add(ctx context.Context, itemID uint, text string) (*entities.Annotation, error)
	Edit(ctx context.Context, annotation *entities.Annotation) error
	Delete(ctx context.Context, id uint) error
}
