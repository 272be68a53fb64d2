package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "airnav/groundcheck/internal/models/gorm"

	"gorm.io/gorm"
)

// GroundCheckRepository handles ground_checks and ground_check_rows using GORM.
// Callers that need several statements to commit together bind it to a
// transaction with WithTx.
type GroundCheckRepository struct {
	db *gorm.DB
}

// NewGroundCheckRepository creates a new GORM-based ground check repository
func NewGroundCheckRepository(db *gorm.DB) *GroundCheckRepository {
	return &GroundCheckRepository{db: db}
}

// WithTx returns a repository whose statements run on tx.
func (r *GroundCheckRepository) WithTx(tx *gorm.DB) *GroundCheckRepository {
	return &GroundCheckRepository{db: tx}
}

// GetByID retrieves a header without its rows. Returns nil, nil when missing.
func (r *GroundCheckRepository) GetByID(ctx context.Context, id uint) (*gormModels.GroundCheck, error) {
	var gc gormModels.GroundCheck

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&gc).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch ground check: %w", err)
	}

	return &gc, nil
}

// GetWithRows retrieves a header and its rows in position order.
// Returns nil, nil when missing.
func (r *GroundCheckRepository) GetWithRows(ctx context.Context, id uint) (*gormModels.GroundCheck, error) {
	var gc gormModels.GroundCheck

	err := r.db.WithContext(ctx).
		Preload("Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&gc).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch ground check: %w", err)
	}

	return &gc, nil
}

// List retrieves every header in insertion order.
func (r *GroundCheckRepository) List(ctx context.Context) ([]gormModels.GroundCheck, error) {
	var checks []gormModels.GroundCheck

	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&checks).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch ground checks: %w", err)
	}

	return checks, nil
}

// CreateHeader inserts the header only; gc.ID is filled on success.
func (r *GroundCheckRepository) CreateHeader(ctx context.Context, gc *gormModels.GroundCheck) error {
	err := r.db.WithContext(ctx).
		Omit("Rows").
		Create(gc).Error

	if err != nil {
		return fmt.Errorf("failed to create ground check: %w", err)
	}

	return nil
}

// UpdateHeader overwrites every scalar header column, including empty values.
func (r *GroundCheckRepository) UpdateHeader(ctx context.Context, gc *gormModels.GroundCheck) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.GroundCheck{}).
		Where("id = ?", gc.ID).
		Updates(map[string]interface{}{
			"location":    gc.Location,
			"date":        gc.Date,
			"technicians": gc.Technicians,
			"sign_offs":   gc.SignOffs,
			"notes":       gc.Notes,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update ground check: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("ground check not found with ID: %d", gc.ID)
	}

	return nil
}

// CreateRows inserts the measurement rows in one batch.
func (r *GroundCheckRepository) CreateRows(ctx context.Context, rows []gormModels.GroundCheckRow) error {
	if len(rows) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to create ground check rows: %w", err)
	}

	return nil
}

// DeleteRows removes every row belonging to a header.
func (r *GroundCheckRepository) DeleteRows(ctx context.Context, groundCheckID uint) error {
	err := r.db.WithContext(ctx).
		Where("ground_check_id = ?", groundCheckID).
		Delete(&gormModels.GroundCheckRow{}).Error

	if err != nil {
		return fmt.Errorf("failed to delete ground check rows: %w", err)
	}

	return nil
}

// Delete removes a header and its rows. The rows are deleted explicitly so
// the result does not depend on the store enforcing ON DELETE CASCADE.
// Reports false when no header with that ID exists.
func (r *GroundCheckRepository) Delete(ctx context.Context, id uint) (bool, error) {
	if err := r.DeleteRows(ctx, id); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&gormModels.GroundCheck{})

	if result.Error != nil {
		return false, fmt.Errorf("failed to delete ground check: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// CountRows returns how many rows are stored for a header.
func (r *GroundCheckRepository) CountRows(ctx context.Context, groundCheckID uint) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&gormModels.GroundCheckRow{}).
		Where("ground_check_id = ?", groundCheckID).
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count ground check rows: %w", err)
	}

	return count, nil
}
