package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/SiddharthNagaych-aigod/axel-guard-prod/catalog"
)

// Store is the database-backed content repository. Unlike the blob-backed
// repository it persists per-document upserts instead of whole-collection
// rewrites.
type Store struct {
	database *gorm.DB
}

func New(ctx context.Context, dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Migrate the schemas
	if err := db.WithContext(ctx).AutoMigrate(
		&Category{}, &Subcategory{}, &Product{},
		&BlogPost{}, &Comment{}, &Client{}, &Service{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %v", err)
	}

	return &Store{database: db}, nil
}

func (s *Store) Close() error {
	db, err := s.database.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %v", err)
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %v", err)
	}
	return nil
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// parseID reads a catalog-side string id back into a primary key. Blob-mode
// ids and Mongo-era hex ids simply fail to parse and fall through to
// natural-key lookup.
func parseID(id string) (uint, bool) {
	if id == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// parseDate accepts the date shapes the scraped blog data carries.
func parseDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "January 2, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func categoryRef(c *Category) *catalog.CategoryRef {
	if c == nil {
		return nil
	}
	return &catalog.CategoryRef{ID: idString(c.ID), Name: c.Name, Val: c.Val}
}

func subcategoryRef(s *Subcategory) *catalog.CategoryRef {
	if s == nil {
		return nil
	}
	return &catalog.CategoryRef{ID: idString(s.ID), Name: s.Name, Val: s.Val}
}
