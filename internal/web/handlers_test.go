package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"negar/internal/models"
	"negar/internal/services"
	"negar/internal/tests/mocks"
)

func newTestServer(generation *mocks.GenerationServiceMock, repo *mocks.ArtworkRepositoryMock) *Server {
	if generation == nil {
		generation = &mocks.GenerationServiceMock{}
	}
	if repo == nil {
		repo = &mocks.ArtworkRepositoryMock{}
	}
	return NewServer(0, generation, services.NewArtworkService(repo))
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleGenerate_CoercesFormishInput(t *testing.T) {
	var captured *models.GenerateRequest
	generation := &mocks.GenerationServiceMock{
		GenerateFunc: func(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
			captured = req
			return &models.GenerateResponse{Response: "ok", GenerationID: "id-1"}, nil
		},
	}
	server := newTestServer(generation, nil)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/api/generate", `{
		"prompt": "a story",
		"enable_evaluation": "on",
		"generate_image": "checked",
		"creativity": "70",
		"max_tokens": "300",
		"quality_threshold": 8,
		"evaluation_criteria": {"relevance": "on", "grammar": true}
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, captured)
	assert.True(t, captured.EnableEvaluation)
	assert.True(t, captured.GenerateImage)
	assert.Equal(t, 70, captured.Creativity)
	assert.Equal(t, 300, captured.MaxTokens)
	assert.Equal(t, 8, captured.QualityThreshold)
	assert.True(t, captured.Criteria.Relevance)
	assert.True(t, captured.Criteria.Grammar)
}

func TestHandleGenerate_PartialCriteriaKeepPerToggleDefaults(t *testing.T) {
	var captured *models.GenerateRequest
	generation := &mocks.GenerationServiceMock{
		GenerateFunc: func(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
			captured = req
			return &models.GenerateResponse{}, nil
		},
	}
	server := newTestServer(generation, nil)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/api/generate", `{
		"prompt": "p",
		"evaluation_criteria": {"creativity": true, "grammar": false}
	}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, captured.Criteria.Creativity)
	assert.False(t, captured.Criteria.Grammar)
	// toggles the caller never named keep their own defaults
	assert.True(t, captured.Criteria.Relevance)
	assert.True(t, captured.Criteria.Coherence)
	assert.True(t, captured.Criteria.Completeness)
	assert.False(t, captured.Criteria.Engagement)
}

func TestHandleGenerate_DefaultCriteriaWhenOmitted(t *testing.T) {
	var captured *models.GenerateRequest
	generation := &mocks.GenerationServiceMock{
		GenerateFunc: func(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
			captured = req
			return &models.GenerateResponse{}, nil
		},
	}
	server := newTestServer(generation, nil)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/api/generate", `{"prompt": "p"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DefaultCriteria(), captured.Criteria)
}

func TestHandleGenerate_MissingPrompt(t *testing.T) {
	server := newTestServer(nil, nil)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/api/generate", `{"prompt": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate_InvalidJSON(t *testing.T) {
	server := newTestServer(nil, nil)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/api/generate", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate_ProviderFailure(t *testing.T) {
	generation := &mocks.GenerationServiceMock{
		GenerateFunc: func(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
			return nil, assert.AnError
		},
	}
	server := newTestServer(generation, nil)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/api/generate", `{"prompt": "p"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleRegenerate_DeclinePassesThroughAs200(t *testing.T) {
	generation := &mocks.GenerationServiceMock{
		RegenerateFunc: func(ctx context.Context, generationID string) (*models.RegenerateResponse, error) {
			assert.Equal(t, "id-9", generationID)
			return &models.RegenerateResponse{OK: false, Message: "no regeneration attempts remaining"}, nil
		},
	}
	server := newTestServer(generation, nil)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/api/regenerate", `{"generation_id": "id-9"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body models.RegenerateResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.OK)
	assert.Equal(t, "no regeneration attempts remaining", body.Message)
}

func TestHandleRegenerate_MissingID(t *testing.T) {
	server := newTestServer(nil, nil)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/api/regenerate", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreateArtwork(t *testing.T) {
	repo := &mocks.ArtworkRepositoryMock{
		CreateFunc: func(artwork *models.Artwork) error {
			artwork.ID = 3
			return nil
		},
	}
	server := newTestServer(nil, repo)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/api/artworks", `{
		"category": "poem", "title": "Autumn", "content": "Leaves."
	}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body models.Artwork
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint(3), body.ID)
}

func TestHandleCreateArtwork_ValidationError(t *testing.T) {
	server := newTestServer(nil, nil)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/api/artworks", `{"category": "poem"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetArtwork_NotFound(t *testing.T) {
	server := newTestServer(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/artworks/42", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	server := newTestServer(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
