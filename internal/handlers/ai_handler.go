package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"mgaBack/internal/models"
	"mgaBack/internal/services"
)

type AIHandler struct {
	Service *services.AIService
}

// QueryRequest is one natural-language search: the free-text query plus the
// caller's active filter state to merge the extracted criteria into.
type QueryRequest struct {
	Query   string                 `json:"query"`
	Filters *models.FilterCriteria `json:"filters,omitempty"`
}

type QueryResponse struct {
	Filters         models.FilterCriteria `json:"filters"`
	Location        string                `json:"location,omitempty"`
	ResponseMessage string                `json:"response_message"`
}

// Query translates a free-text search into filter criteria and merges them
// into the active snapshot. Only fields the model actually extracted replace
// the user's current values.
func (h *AIHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		http.Error(w, "Query is required", http.StatusBadRequest)
		return
	}

	extracted, err := h.Service.FindPropertiesFromQuery(r.Context(), query)
	if err != nil {
		if errors.Is(err, models.ErrAINotConfigured) {
			http.Error(w, "AI service is not configured", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, models.ErrQueryNotUnderstood.Error(), http.StatusUnprocessableEntity)
		return
	}

	current := models.DefaultFilterCriteria()
	if req.Filters != nil {
		current = *req.Filters
	}

	resp := QueryResponse{
		Filters:         services.ApplyQueryFilters(current, extracted),
		ResponseMessage: extracted.ResponseMessage,
	}
	if extracted.Location != nil {
		resp.Location = *extracted.Location
	}
	json.NewEncoder(w).Encode(resp)
}

func (h *AIHandler) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid property id", http.StatusBadRequest)
		return
	}
	description, err := h.Service.GenerateDescription(r.Context(), id)
	if err != nil {
		writeAIError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"description": description})
}

// GenerateAllDescriptions fills descriptions for listings that lack one.
func (h *AIHandler) GenerateAllDescriptions(w http.ResponseWriter, r *http.Request) {
	generated := h.Service.GenerateAllDescriptions(r.Context())
	json.NewEncoder(w).Encode(map[string]int{"generated": generated})
}

func (h *AIHandler) AgentAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid property id", http.StatusBadRequest)
		return
	}
	analysis, err := h.Service.GenerateAgentAnalysis(r.Context(), id)
	if err != nil {
		writeAIError(w, err)
		return
	}
	json.NewEncoder(w).Encode(analysis)
}

func (h *AIHandler) FengShui(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BirthYear int    `json:"birth_year"`
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.BirthYear == 0 || req.Direction == "" {
		http.Error(w, "birth_year and direction are required", http.StatusBadRequest)
		return
	}
	analysis, err := h.Service.GenerateFengShuiAnalysis(r.Context(), req.BirthYear, req.Direction)
	if err != nil {
		writeAIError(w, err)
		return
	}
	json.NewEncoder(w).Encode(analysis)
}

func (h *AIHandler) InvestmentAdvice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Budget float64 `json:"budget"`
		Goal   string  `json:"goal"`
		Risk   string  `json:"risk"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	advice, err := h.Service.GenerateInvestmentAdvice(r.Context(), req.Budget, req.Goal, req.Risk)
	if err != nil {
		writeAIError(w, err)
		return
	}
	json.NewEncoder(w).Encode(advice)
}

func writeAIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrAINotConfigured):
		http.Error(w, "AI service is not configured", http.StatusServiceUnavailable)
	case errors.Is(err, models.ErrPropertyNotFound):
		http.Error(w, "Property not found", http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}
