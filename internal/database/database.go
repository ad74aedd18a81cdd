package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/shelfcache/internal/entities"
	"github.com/mrlokans/shelfcache/internal/live"
)

// connectionParams are appended to every DSN. Foreign keys must be enabled
// per connection for the annotation cascade to work.
const connectionParams = "_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"

// Database is the store handle shared by all repositories. It is created once
// at startup and passed explicitly.
type Database struct {
	DB  *gorm.DB
	Hub *live.Hub
}

// Option customizes NewDatabase.
type Option func(*gorm.Config)

// WithLogLevel sets the GORM SQL log level.
func WithLogLevel(level logger.LogLevel) Option {
	return func(cfg *gorm.Config) {
		cfg.Logger = logger.Default.LogMode(level)
	}
}

// ParseLogLevel maps a config value onto a GORM log level. Unknown values
// fall back to warn.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	for _, opt := range opts {
		opt(gormCfg)
	}

	db, err := gorm.Open(sqlite.Open(DSN(dbPath)), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Item{},
		&entities.Annotation{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db, Hub: live.NewHub()}, nil
}

// DSN builds the SQLite connection string for a database file.
func DSN(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + connectionParams
}

func (d *Database) Close() error {
	d.Hub.Close()

	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks database connectivity.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// TranslateError maps driver errors onto the domain error taxonomy.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", entities.ErrNotFound, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return fmt.Errorf("%w: %w", entities.ErrConstraintViolation, err)
		}
	}
	return err
}
