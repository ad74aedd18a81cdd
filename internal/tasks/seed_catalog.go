package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/shelfcache/internal/services"
)

// SeedCatalogQueue is the backlite queue name for catalog seeding.
const SeedCatalogQueue = "seed_catalog"

// Seeder fills an empty item store from the remote catalog.
type Seeder interface {
	RefreshIfEmpty(ctx context.Context) (services.SeedResult, error)
}

// SeedCatalogTask runs one refresh-if-empty pass.
type SeedCatalogTask struct {
	Reason string `json:"reason,omitempty"`
}

// Config returns the queue configuration for catalog seeding. A failed seed
// is not retried by the queue; the caller decides whether to try again.
func (t SeedCatalogTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        SeedCatalogQueue,
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SeedCatalogProcessor creates a processor function for SeedCatalogTask.
func SeedCatalogProcessor(seeder Seeder) backlite.QueueProcessor[SeedCatalogTask] {
	return func(ctx context.Context, task SeedCatalogTask) error {
		if seeder == nil {
			return fmt.Errorf("seeder not configured")
		}

		result, err := seeder.RefreshIfEmpty(ctx)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}

		if result.Skipped {
			log.Printf("[TASK] Seed skipped (%s): store already holds %d items", task.Reason, result.ExistingItems)
		} else {
			log.Printf("[TASK] Seeded %d items from catalog (%s)", result.Inserted, task.Reason)
		}
		return nil
	}
}

// NewSeedCatalogQueue creates a backlite queue for catalog seeding.
func NewSeedCatalogQueue(seeder Seeder) backlite.Queue {
	return backlite.NewQueue(SeedCatalogProcessor(seeder))
}
