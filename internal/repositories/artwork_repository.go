package repositories

import (
	"errors"

	"gorm.io/gorm"

	"negar/internal/models"
)

type ArtworkRepository interface {
	Create(artwork *models.Artwork) error
	GetByID(id uint) (*models.Artwork, error)
	ListByCategory(category string, limit int) ([]models.Artwork, error)
	ListRecent(limit int) ([]models.Artwork, error)
	Delete(id uint) error
}

type artworkRepository struct {
	db *gorm.DB
}

func NewArtworkRepository(db *gorm.DB) ArtworkRepository {
	return &artworkRepository{db: db}
}

func (r *artworkRepository) Create(artwork *models.Artwork) error {
	return r.db.Create(artwork).Error
}

func (r *artworkRepository) GetByID(id uint) (*models.Artwork, error) {
	var artwork models.Artwork
	res := r.db.First(&artwork, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &artwork, nil
}

func (r *artworkRepository) ListByCategory(category string, limit int) ([]models.Artwork, error) {
	var artworks []models.Artwork
	res := r.db.Where("category = ?", category).Order("created_at desc").Limit(limit).Find(&artworks)
	if res.Error != nil {
		return nil, res.Error
	}
	return artworks, nil
}

func (r *artworkRepository) ListRecent(limit int) ([]models.Artwork, error) {
	var artworks []models.Artwork
	res := r.db.Order("created_at desc").Limit(limit).Find(&artworks)
	if res.Error != nil {
		return nil, res.Error
	}
	return artworks, nil
}

func (r *artworkRepository) Delete(id uint) error {
	return r.db.Delete(&models.Artwork{}, id).Error
}
