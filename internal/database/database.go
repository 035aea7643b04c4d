package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mrlokans/vokabel/internal/config"
	"github.com/mrlokans/vokabel/internal/entities"
	"github.com/mrlokans/vokabel/internal/logger"
)

var ErrUnknownDriver = errors.New("unknown database driver")

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the database selected by cfg.Driver and migrates the
// schema. Slow queries and errors are reported through log.
func NewDatabase(cfg config.Database, log *logger.Logger) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormLog := gormlogger.Discard
	if log != nil {
		gormLog = gormlogger.New(log.Named("gorm"), gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if log != nil {
		log.Info("Database initialized", "driver", cfg.Driver, "path", cfg.Path)
	}
	return &Database{DB: db}, nil
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return sqlite.Open(cfg.Path), nil
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires DATABASE_DSN")
		}
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// Migrate creates or updates the tables of all entities.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entities.Lesson{},
		&entities.Flashcard{},
		&entities.FlashcardContext{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Stats counts lessons and flashcards.
func (d *Database) Stats(ctx context.Context) (lessons int64, cards int64, err error) {
	db := d.DB.WithContext(ctx)
	if err = db.Model(&entities.Lesson{}).Count(&lessons).Error; err != nil {
		return
	}
	err = db.Model(&entities.Flashcard{}).Count(&cards).Error
	return
}
