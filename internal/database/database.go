package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avoronin/reading-diary/internal/entities"
)

var defaultGenres = []entities.Genre{
	{Name: "Novel"},
	{Name: "Science Fiction"},
	{Name: "Detective"},
	{Name: "Fantasy"},
	{Name: "Science"},
	{Name: "Biography"},
	{Name: "Historical"},
	{Name: "Poetry"},
	{Name: "Drama"},
	{Name: "Comedy"},
	{Name: "Thriller"},
	{Name: "Horror"},
	{Name: "Adventure"},
	{Name: "Popular Science"},
	{Name: "Reference"},
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (or creates) the sqlite database at dbPath, migrates the
// schema and seeds the default genre set. Safe to call on every start: both
// migration and seeding are idempotent.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Genre{},
		&entities.Book{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedGenres(); err != nil {
		return nil, fmt.Errorf("failed to seed genres: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedGenres inserts the default genres that are not present yet. Existing
// rows are never overwritten or duplicated.
func (d *Database) seedGenres() error {
	for _, genre := range defaultGenres {
		var existing entities.Genre
		result := d.DB.Where("name = ?", genre.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&genre).Error; err != nil {
				return fmt.Errorf("failed to create genre %s: %w", genre.Name, err)
			}
		}
	}
	return nil
}
