package mocks

import (
	"negar/internal/models"
)

type ArtworkRepositoryMock struct {
	CreateFunc         func(artwork *models.Artwork) error
	GetByIDFunc        func(id uint) (*models.Artwork, error)
	ListByCategoryFunc func(category string, limit int) ([]models.Artwork, error)
	ListRecentFunc     func(limit int) ([]models.Artwork, error)
	DeleteFunc         func(id uint) error
}

func (m *ArtworkRepositoryMock) Create(artwork *models.Artwork) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(artwork)
	}
	return nil
}

func (m *ArtworkRepositoryMock) GetByID(id uint) (*models.Artwork, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, nil
}

func (m *ArtworkRepositoryMock) ListByCategory(category string, limit int) ([]models.Artwork, error) {
	if m.ListByCategoryFunc != nil {
		return m.ListByCategoryFunc(category, limit)
	}
	return nil, nil
}

func (m *ArtworkRepositoryMock) ListRecent(limit int) ([]models.Artwork, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(limit)
	}
	return nil, nil
}

func (m *ArtworkRepositoryMock) Delete(id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}
