// Package database provides the local store for items and annotations.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, error translation
//	├── items/           # Item CRUD, bulk upsert and continuous queries
//	└── annotations/     # Annotation CRUD and continuous queries per item
//
// # Using Sub-packages
//
// A single Database handle is created at startup and passed to every
// repository. It owns the GORM connection and the live hub that serializes
// writes and pushes snapshots to observers:
//
//	db, err := database.NewDatabase("./shelfcache.db")
//
//	itemsRepo := items.NewRepository(db.DB, db.Hub)
//	annotationsRepo := annotations.NewRepository(db.DB, db.Hub)
//
// # Referential Integrity
//
// Foreign keys are enabled on every connection through the DSN. Deleting an
// item removes its annotations in the same statement (ON DELETE CASCADE), and
// inserting an annotation for a missing item fails with
// entities.ErrConstraintViolation.
package database
