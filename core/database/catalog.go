package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Run statuses recorded in the catalog. Unresolved marks a conversion
// that produced its archive but kept a placeholder file name because the
// rename pass could not derive or apply a descriptive one.
const (
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusUnresolved = "unresolved"
)

// ConversionRun is one catalog row: a single session converted by a
// batch, with its final output location.
type ConversionRun struct {
	ID         string `gorm:"primaryKey;size:36"`
	Experiment string `gorm:"size:255;index"`
	Session    string `gorm:"size:255"`
	OutputPath string `gorm:"size:1024"`
	Status     string `gorm:"size:32"`
	Error      string `gorm:"type:text"`
	CreatedAt  time.Time
}

// Catalog persists conversion runs.
type Catalog struct {
	db *gorm.DB
}

// NewCatalog wraps a database connection and migrates the run table.
func NewCatalog(db *gorm.DB) (*Catalog, error) {
	if err := db.AutoMigrate(&ConversionRun{}); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Record inserts one run. An empty ID gets a fresh UUID.
func (c *Catalog) Record(ctx context.Context, run *ConversionRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if err := c.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record conversion run: %w", err)
	}
	return nil
}

// List returns all runs, newest first.
func (c *Catalog) List(ctx context.Context) ([]ConversionRun, error) {
	var runs []ConversionRun
	if err := c.db.WithContext(ctx).Order("created_at DESC").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list conversion runs: %w", err)
	}
	return runs, nil
}

// Get returns one run by ID. A missing row yields gorm.ErrRecordNotFound.
func (c *Catalog) Get(ctx context.Context, id string) (*ConversionRun, error) {
	var run ConversionRun
	if err := c.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
