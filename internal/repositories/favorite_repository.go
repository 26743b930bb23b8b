package repositories

import (
	"errors"

	"gorm.io/gorm"

	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("favorite already exists")
)

type FavoriteRepository interface {
	Create(favorite *models.Favorite) error
	Delete(userID, propertyID string) error
	Exists(userID, propertyID string) (bool, error)
	ListByUser(userID string, pg query.Page) ([]models.Favorite, int64, error)
	CountByProperty(propertyID string) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(favorite *models.Favorite) error {
	exists, err := r.Exists(favorite.UserID, favorite.PropertyID)
	if err != nil {
		return err
	}
	if exists {
		return ErrFavoriteExists
	}
	return r.db.Create(favorite).Error
}

func (r *favoriteRepository) Delete(userID, propertyID string) error {
	result := r.db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *favoriteRepository) Exists(userID, propertyID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	return count > 0, err
}

func (r *favoriteRepository) ListByUser(userID string, pg query.Page) ([]models.Favorite, int64, error) {
	var total int64
	if err := r.db.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []models.Favorite
	err := r.db.Where("user_id = ?", userID).
		Preload("Property").
		Preload("Property.Agent").
		Preload("Property.Agent.User", publicUserFields).
		Order("created_at DESC").
		Scopes(pg.Scope).
		Find(&favorites).Error

	return favorites, total, err
}

func (r *favoriteRepository) CountByProperty(propertyID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).Where("property_id = ?", propertyID).Count(&count).Error
	return count, err
}
