package dto

import "estatehub_backend/internal/models"

type FavoriteResponse struct {
	ID        string           `json:"id"`
	Property  PropertyResponse `json:"property"`
	CreatedAt string           `json:"createdAt"`
}

func ToFavoriteResponse(f *models.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:        f.ID,
		Property:  ToPropertyResponse(&f.Property),
		CreatedAt: isoTime(f.CreatedAt),
	}
}

func ToFavoriteResponses(favorites []models.Favorite) []FavoriteResponse {
	out := make([]FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		out = append(out, ToFavoriteResponse(&favorites[i]))
	}
	return out
}
