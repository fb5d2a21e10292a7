package services

import (
	"gorm.io/gorm"

	"negar/internal/repositories"
)

// Services aggregates all domain services backed by the database.
type Services struct {
	Artworks ArtworkService
}

// NewServices constructs the service container using repositories backed by db.
func NewServices(db *gorm.DB) *Services {
	artworkRepo := repositories.NewArtworkRepository(db)

	return &Services{
		Artworks: NewArtworkService(artworkRepo),
	}
}
