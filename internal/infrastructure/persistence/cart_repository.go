package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart entry by its ID
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.CartEntry, error) {
	var entry trade.CartEntry
	if err := dbFrom(ctx, r.db).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByUser finds all cart entries for a user, oldest first
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]trade.CartEntry, error) {
	var entries []trade.CartEntry
	if err := dbFrom(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByUserAndProduct finds the user's entry for a product, if any
func (r *GormCartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*trade.CartEntry, error) {
	var entry trade.CartEntry
	if err := dbFrom(ctx, r.db).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Save creates or updates a cart entry
func (r *GormCartRepository) Save(ctx context.Context, entry *trade.CartEntry) error {
	if err := dbFrom(ctx, r.db).Save(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a cart entry
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFrom(ctx, r.db).Delete(&trade.CartEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByUser removes all of a user's cart entries
func (r *GormCartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&trade.CartEntry{}, "user_id = ?", userID).Error
}

// Ensure GormCartRepository implements CartRepository
var _ trade.CartRepository = (*GormCartRepository)(nil)
