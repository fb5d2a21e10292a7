package services

import (
	"fmt"
	"strings"
	"time"

	"negar/internal/models"
	"negar/internal/repositories"
)

const maxArtworkTags = 5

var artworkCategories = map[string]bool{
	"poem":  true,
	"story": true,
	"essay": true,
	"note":  true,
}

// ArtworkInput is the raw submission for saving an accepted text.
type ArtworkInput struct {
	Category    string
	Title       string
	Content     string
	Author      string
	Status      string
	Tags        string
	Readability string
	PublishDate string
	MaxTokens   int
	ImageURL    string
}

type ArtworkService interface {
	Save(input ArtworkInput) (*models.Artwork, error)
	Get(id uint) (*models.Artwork, error)
	ListByCategory(category string, limit int) ([]models.Artwork, error)
	ListRecent(limit int) ([]models.Artwork, error)
	Delete(id uint) error
}

type artworkService struct {
	repo repositories.ArtworkRepository
}

func NewArtworkService(repo repositories.ArtworkRepository) ArtworkService {
	return &artworkService{repo: repo}
}

// Save validates and persists one artwork. Malformed optional fields
// (tags, publish date) degrade rather than reject the submission.
func (s *artworkService) Save(input ArtworkInput) (*models.Artwork, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	category := strings.TrimSpace(strings.ToLower(input.Category))

	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if content == "" {
		return nil, fmt.Errorf("content is required")
	}
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if !artworkCategories[category] {
		return nil, fmt.Errorf("unsupported category: %s", category)
	}

	status := strings.TrimSpace(strings.ToLower(input.Status))
	if status != "private" {
		status = "public"
	}

	artwork := &models.Artwork{
		Category:    category,
		Title:       title,
		Content:     content,
		Author:      strings.TrimSpace(input.Author),
		Status:      status,
		Tags:        normalizeTags(input.Tags),
		Readability: strings.TrimSpace(input.Readability),
		PublishDate: parsePublishDate(input.PublishDate),
		MaxTokens:   input.MaxTokens,
		ImageURL:    strings.TrimSpace(input.ImageURL),
	}
	if err := s.repo.Create(artwork); err != nil {
		return nil, fmt.Errorf("failed to save artwork: %w", err)
	}
	return artwork, nil
}

func (s *artworkService) Get(id uint) (*models.Artwork, error) {
	return s.repo.GetByID(id)
}

func (s *artworkService) ListByCategory(category string, limit int) ([]models.Artwork, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListByCategory(strings.TrimSpace(strings.ToLower(category)), limit)
}

func (s *artworkService) ListRecent(limit int) ([]models.Artwork, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListRecent(limit)
}

func (s *artworkService) Delete(id uint) error {
	return s.repo.Delete(id)
}

// normalizeTags splits on the Persian comma when present, the ASCII
// comma otherwise, trims each entry, and keeps at most five.
func normalizeTags(raw string) string {
	sep := ","
	if strings.Contains(raw, "،") {
		sep = "،"
	}
	var tags []string
	for _, part := range strings.Split(raw, sep) {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
		if len(tags) == maxArtworkTags {
			break
		}
	}
	return strings.Join(tags, ",")
}

// parsePublishDate accepts an ISO date and returns nil for anything
// else; a bad date is not worth rejecting the whole artwork.
func parsePublishDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}
