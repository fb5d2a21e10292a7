package unit_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"negar/internal/models"
	"negar/internal/services"
	"negar/internal/tests/mocks"
)

func TestArtworkService_Save_Success(t *testing.T) {
	mockRepo := &mocks.ArtworkRepositoryMock{
		CreateFunc: func(artwork *models.Artwork) error {
			artwork.ID = 7
			return nil
		},
	}
	service := services.NewArtworkService(mockRepo)

	artwork, err := service.Save(services.ArtworkInput{
		Category:    "Poem",
		Title:       "  Autumn  ",
		Content:     "Leaves fall.",
		PublishDate: "2026-09-01",
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(7), artwork.ID)
	assert.Equal(t, "poem", artwork.Category)
	assert.Equal(t, "Autumn", artwork.Title)
	assert.Equal(t, "public", artwork.Status)
	assert.NotNil(t, artwork.PublishDate)
}

func TestArtworkService_Save_RequiredFields(t *testing.T) {
	service := services.NewArtworkService(&mocks.ArtworkRepositoryMock{})

	_, err := service.Save(services.ArtworkInput{Category: "poem", Content: "x"})
	assert.EqualError(t, err, "title is required")

	_, err = service.Save(services.ArtworkInput{Category: "poem", Title: "x"})
	assert.EqualError(t, err, "content is required")

	_, err = service.Save(services.ArtworkInput{Title: "x", Content: "y"})
	assert.EqualError(t, err, "category is required")
}

func TestArtworkService_Save_RejectsUnknownCategory(t *testing.T) {
	service := services.NewArtworkService(&mocks.ArtworkRepositoryMock{})

	_, err := service.Save(services.ArtworkInput{Category: "recipe", Title: "x", Content: "y"})
	assert.EqualError(t, err, "unsupported category: recipe")
}

func TestArtworkService_Save_NormalizesTagsAndStatus(t *testing.T) {
	var saved *models.Artwork
	mockRepo := &mocks.ArtworkRepositoryMock{
		CreateFunc: func(artwork *models.Artwork) error {
			saved = artwork
			return nil
		},
	}
	service := services.NewArtworkService(mockRepo)

	_, err := service.Save(services.ArtworkInput{
		Category: "story",
		Title:    "t",
		Content:  "c",
		Status:   "hidden",
		Tags:     "one، two، three، four، five، six",
	})
	assert.NoError(t, err)
	assert.Equal(t, "public", saved.Status)
	assert.Equal(t, "one,two,three,four,five", saved.Tags)
}

func TestArtworkService_Save_BadPublishDateDegrades(t *testing.T) {
	var saved *models.Artwork
	mockRepo := &mocks.ArtworkRepositoryMock{
		CreateFunc: func(artwork *models.Artwork) error {
			saved = artwork
			return nil
		},
	}
	service := services.NewArtworkService(mockRepo)

	_, err := service.Save(services.ArtworkInput{
		Category:    "note",
		Title:       "t",
		Content:     "c",
		PublishDate: "soon",
	})
	assert.NoError(t, err)
	assert.Nil(t, saved.PublishDate)
}

func TestArtworkService_Save_PrivateStatusKept(t *testing.T) {
	var saved *models.Artwork
	mockRepo := &mocks.ArtworkRepositoryMock{
		CreateFunc: func(artwork *models.Artwork) error {
			saved = artwork
			return nil
		},
	}
	service := services.NewArtworkService(mockRepo)

	_, err := service.Save(services.ArtworkInput{
		Category: "essay",
		Title:    "t",
		Content:  "c",
		Status:   "Private",
	})
	assert.NoError(t, err)
	assert.Equal(t, "private", saved.Status)
}
