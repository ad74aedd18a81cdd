package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/shelfcache/internal/catalog"
	"github.com/mrlokans/shelfcache/internal/database/annotations"
	"github.com/mrlokans/shelfcache/internal/database/items"
	"github.com/mrlokans/shelfcache/internal/http"
	"github.com/mrlokans/shelfcache/internal/scheduler"
	"github.com/mrlokans/shelfcache/internal/services"
	"github.com/mrlokans/shelfcache/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.ItemStore = (*items.Repository)(nil)
var _ services.AnnotationStore = (*annotations.Repository)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ services.CatalogFetcher = (*catalog.Client)(nil)

// =============================================================================
// HTTP Layer
// =============================================================================

var _ http.ItemService = (*services.ItemCache)(nil)
var _ http.AnnotationService = (*services.Annotations)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.Seeder = (*services.ItemCache)(nil)
var _ scheduler.Seeder = (*services.ItemCache)(nil)
