package services

import (
	"context"
	"errors"

	"estatehub_backend/internal/models"
	"estatehub_backend/internal/query"
	"estatehub_backend/internal/repositories"
	"estatehub_backend/internal/services/dto"
	"estatehub_backend/pkg/apperrors"
)

type FavoriteService interface {
	Add(ctx context.Context, userID, propertyID string) error
	Remove(ctx context.Context, userID, propertyID string) error
	List(ctx context.Context, userID string, pageRaw, limitRaw string) (*dto.ListResult[dto.FavoriteResponse], error)
}

type favoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	propertyRepo repositories.PropertyRepository
}

func NewFavoriteService(
	favoriteRepo repositories.FavoriteRepository,
	propertyRepo repositories.PropertyRepository,
) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, propertyRepo: propertyRepo}
}

// Add favorites an active property. Favoriting twice is a conflict.
func (s *favoriteService) Add(ctx context.Context, userID, propertyID string) error {
	property, err := s.propertyRepo.FindByID(propertyID)
	if err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.StorageError(err)
	}
	if property.Status != models.PropertyStatusActive {
		return apperrors.ErrPropertyNotActive
	}

	err = s.favoriteRepo.Create(&models.Favorite{UserID: userID, PropertyID: propertyID})
	if err != nil {
		if errors.Is(err, repositories.ErrFavoriteExists) {
			return apperrors.ErrAlreadyFavorited
		}
		return apperrors.StorageError(err)
	}
	return nil
}

// Remove is idempotent: unfavoriting something never favorited succeeds.
func (s *favoriteService) Remove(ctx context.Context, userID, propertyID string) error {
	if err := s.favoriteRepo.Delete(userID, propertyID); err != nil {
		if errors.Is(err, repositories.ErrFavoriteNotFound) {
			return nil
		}
		return apperrors.StorageError(err)
	}
	return nil
}

func (s *favoriteService) List(ctx context.Context, userID string, pageRaw, limitRaw string) (*dto.ListResult[dto.FavoriteResponse], error) {
	pg := query.ParsePage(pageRaw, limitRaw, propertyPageSize)

	items, total, err := s.favoriteRepo.ListByUser(userID, pg)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	return &dto.ListResult[dto.FavoriteResponse]{
		Items: dto.ToFavoriteResponses(items),
		Total: total,
		Page:  pg.Page,
		Pages: pg.Pages(total),
	}, nil
}
