package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/social-favorites/internal/favorite/domain"
	"github.com/tair/social-favorites/pkg/apperror"
)

// GormFavoriteRepository implements domain.FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// FirstOrCreate inserts with ON CONFLICT DO NOTHING and reads the surviving row back,
// so concurrent duplicates converge on one row.
func (r *GormFavoriteRepository) FirstOrCreate(ctx context.Context, f *domain.Favorite) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(f)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create favorite: %w", result.Error)
	}
	if result.RowsAffected == 1 {
		return true, nil
	}

	existing, err := r.FindOwned(ctx, f.UserID, f.FavoritableType, f.FavoritableID)
	if err != nil {
		return false, err
	}
	*f = *existing
	return false, nil
}

// FindOwned finds the favorite owned by userID for the given target
func (r *GormFavoriteRepository) FindOwned(ctx context.Context, userID uint, targetType domain.TargetType, targetID uint) (*domain.Favorite, error) {
	var f domain.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND favoritable_type = ? AND favoritable_id = ?", userID, targetType, targetID).
		First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("favorite %s %d: %w", targetType, targetID, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find favorite: %w", err)
	}
	return &f, nil
}

// Delete hard-deletes a favorite and returns the number of affected rows
func (r *GormFavoriteRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Favorite{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// FindByUser lists a user's favorites in insertion order
func (r *GormFavoriteRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	favorites := []domain.Favorite{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// FindFollowers lists every favorite pointing at the target
func (r *GormFavoriteRepository) FindFollowers(ctx context.Context, targetType domain.TargetType, targetID uint) ([]domain.Favorite, error) {
	favorites := []domain.Favorite{}
	err := r.db.WithContext(ctx).
		Where("favoritable_type = ? AND favoritable_id = ?", targetType, targetID).
		Order("id").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find followers: %w", err)
	}
	return favorites, nil
}

// CountByUser returns the number of favorites a user holds
func (r *GormFavoriteRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Favorite{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}
