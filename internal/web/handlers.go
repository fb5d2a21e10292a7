package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"negar/internal/models"
	"negar/internal/services"
	"negar/internal/utils"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeBody(r *http.Request) (map[string]any, error) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// handleGenerate starts a generation. The input surface is form-like
// JSON: booleans may arrive as checkbox strings and numbers as their
// string forms, so every field goes through coercion.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req := &models.GenerateRequest{
		Prompt:           utils.ToString(payload["prompt"], ""),
		UseBio:           utils.ToBool(payload["use_bio"], false),
		BioText:          utils.ToString(payload["bio_text"], ""),
		Mode:             utils.ToString(payload["mode"], "write"),
		Creativity:       utils.ToInt(payload["creativity"], 50, 0, 100),
		MaxTokens:        utils.ToInt(payload["max_tokens"], 0, 0, 4000),
		GenerateImage:    utils.ToBool(payload["generate_image"], false),
		ImageSize:        utils.ToString(payload["img_size"], ""),
		EnableEvaluation: utils.ToBool(payload["enable_evaluation"], false),
		EvaluationModel:  utils.ToString(payload["evaluation_model"], "auto"),
		QualityThreshold: utils.ToInt(payload["quality_threshold"], 0, 0, 10),
		MaxRetryAttempts: utils.ToInt(payload["max_retry_attempts"], 0, 0, 10),
		Criteria:         decodeCriteria(payload["evaluation_criteria"]),
	}
	if req.Prompt == "" {
		respondError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	resp, err := s.generation.Generate(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleRegenerate spends one retry attempt on an existing generation.
// Policy declines come back as 200 with ok=false; only transport and
// provider failures are HTTP errors.
func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	generationID := utils.ToString(payload["generation_id"], "")
	if generationID == "" {
		respondError(w, http.StatusBadRequest, "generation_id is required")
		return
	}

	resp, err := s.generation.Regenerate(r.Context(), generationID)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateArtwork(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	artwork, err := s.artworks.Save(services.ArtworkInput{
		Category:    utils.ToString(payload["category"], ""),
		Title:       utils.ToString(payload["title"], ""),
		Content:     utils.ToString(payload["content"], ""),
		Author:      utils.ToString(payload["author"], ""),
		Status:      utils.ToString(payload["status"], "public"),
		Tags:        utils.ToString(payload["tags"], ""),
		Readability: utils.ToString(payload["readability"], ""),
		PublishDate: utils.ToString(payload["publish_date"], ""),
		MaxTokens:   utils.ToInt(payload["max_tokens"], 0, 0, 4000),
		ImageURL:    utils.ToString(payload["image_url"], ""),
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, artwork)
}

func (s *Server) handleListArtworks(w http.ResponseWriter, r *http.Request) {
	limit := utils.ToInt(r.URL.Query().Get("limit"), 20, 1, 100)
	category := r.URL.Query().Get("category")

	var (
		artworks []models.Artwork
		err      error
	)
	if category != "" {
		artworks, err = s.artworks.ListByCategory(category, limit)
	} else {
		artworks, err = s.artworks.ListRecent(limit)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, artworks)
}

func (s *Server) handleGetArtwork(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid artwork id")
		return
	}
	artwork, err := s.artworks.Get(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if artwork == nil {
		respondError(w, http.StatusNotFound, "artwork not found")
		return
	}
	respondJSON(w, http.StatusOK, artwork)
}

func (s *Server) handleDeleteArtwork(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid artwork id")
		return
	}
	if err := s.artworks.Delete(id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// decodeCriteria reads the rubric toggles. Each missing toggle keeps
// its own default, so a partial object only overrides what it names.
func decodeCriteria(v any) models.Criteria {
	raw, ok := v.(map[string]any)
	if !ok {
		return models.DefaultCriteria()
	}
	defaults := models.DefaultCriteria()
	return models.Criteria{
		Relevance:    utils.ToBool(raw["relevance"], defaults.Relevance),
		Coherence:    utils.ToBool(raw["coherence"], defaults.Coherence),
		Creativity:   utils.ToBool(raw["creativity"], defaults.Creativity),
		Grammar:      utils.ToBool(raw["grammar"], defaults.Grammar),
		Engagement:   utils.ToBool(raw["engagement"], defaults.Engagement),
		Completeness: utils.ToBool(raw["completeness"], defaults.Completeness),
	}
}
