package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Category groups products for browsing and reporting. Categories form a
// single-level tree via ParentID.
type Category struct {
	shared.AuditedAggregateRoot
	Name      string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	ParentID  *uuid.UUID     `gorm:"type:uuid;index"`
	SortOrder int            `gorm:"not null;default:0"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name string, parentID *uuid.UUID) (*Category, error) {
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewValidationError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}

	return &Category{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 name,
		ParentID:             parentID,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Category name cannot be empty")
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}
