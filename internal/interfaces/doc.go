// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - ItemStore: Local item table (internal/services/interfaces.go)
//   - AnnotationStore: Local annotation table (internal/services/interfaces.go)
//
// Both are implemented by gorm repositories under internal/database/ that
// publish every committed write to the live hub (internal/live).
//
// ## External Service Interfaces
//
//   - CatalogFetcher: Remote catalog page (internal/services/interfaces.go)
//
// ## HTTP Interfaces
//
//   - ItemService: Item cache operations (internal/http/stores.go)
//   - AnnotationService: Annotation operations (internal/http/stores.go)
//
// ## Background Work Interfaces
//
//   - Seeder: Refresh-if-empty entry point for the task queue
//     (internal/tasks/seed_catalog.go) and the retry scheduler
//     (internal/scheduler/seed_retry.go)
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct {
//         db  *gorm.DB
//         hub *live.Hub
//     }
//
//     func NewRepository(db *gorm.DB, hub *live.Hub) *Repository
//
//  3. Wrap every write in hub.Mutate with the tables it touches, and expose
//     reads through live.Observe keyed by the query parameters.
//
//  4. Add compile-time check in checks.go.
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
