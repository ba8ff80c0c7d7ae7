package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"roamscope/internal/codec"
	"roamscope/internal/service"
)

// SurveyHandler handles survey API requests
type SurveyHandler struct {
	surveys    *service.SurveyService
	analysis   *service.AnalysisService
	validation *service.ValidationService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveys *service.SurveyService, analysis *service.AnalysisService, validation *service.ValidationService) *SurveyHandler {
	return &SurveyHandler{
		surveys:    surveys,
		analysis:   analysis,
		validation: validation,
	}
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ListSurveys returns all stored surveys
func (h *SurveyHandler) ListSurveys(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveys.ListSurveys(r.Context())
	if err != nil {
		log.Printf("Failed to list surveys: %v", err)
		h.writeError(w, "Failed to list surveys", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, surveys, http.StatusOK)
}

// GetSurvey returns one floor's survey
func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	floor := r.PathValue("floor")

	survey, err := h.surveys.GetSurvey(r.Context(), floor)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to get survey: %v", err)
		h.writeError(w, "Failed to get survey", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, survey, http.StatusOK)
}

// DeleteSurvey removes a floor's survey and measurements
func (h *SurveyHandler) DeleteSurvey(w http.ResponseWriter, r *http.Request) {
	floor := r.PathValue("floor")

	if err := h.surveys.DeleteSurvey(r.Context(), floor); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to delete survey: %v", err)
		h.writeError(w, "Failed to delete survey", err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetMeasurements returns a floor's positioned measurements
func (h *SurveyHandler) GetMeasurements(w http.ResponseWriter, r *http.Request) {
	floor := r.PathValue("floor")

	measurements, err := h.surveys.GetMeasurements(r.Context(), floor)
	if err != nil {
		log.Printf("Failed to get measurements: %v", err)
		h.writeError(w, "Failed to get measurements", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, measurements, http.StatusOK)
}

// importFloor resolves the floor for an import request from the floor
// query parameter, falling back to the capture filename convention.
func importFloor(r *http.Request) string {
	if floor := r.URL.Query().Get("floor"); floor != "" {
		return floor
	}
	if filename := r.URL.Query().Get("filename"); filename != "" {
		return codec.FloorFromFilename(filename)
	}
	return ""
}

// ImportAirodump ingests an airodump-ng capture from the request body
func (h *SurveyHandler) ImportAirodump(w http.ResponseWriter, r *http.Request) {
	floor := importFloor(r)
	if floor == "" {
		h.writeError(w, "Floor required", "Provide a floor or filename query parameter", http.StatusBadRequest)
		return
	}

	survey, err := h.surveys.ImportAirodump(r.Context(), floor, r.Body)
	if err != nil {
		log.Printf("Failed to import capture: %v", err)
		h.writeError(w, "Failed to import capture", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"floor":    survey.Floor,
		"aps":      len(survey.Observations),
		"stations": survey.StationCount,
	}, http.StatusCreated)
}

// ImportMeasurements ingests a positioned measurement CSV from the request body
func (h *SurveyHandler) ImportMeasurements(w http.ResponseWriter, r *http.Request) {
	floor := importFloor(r)
	if floor == "" {
		h.writeError(w, "Floor required", "Provide a floor query parameter", http.StatusBadRequest)
		return
	}

	count, err := h.surveys.ImportMeasurements(r.Context(), floor, r.Body)
	if err != nil {
		log.Printf("Failed to import measurements: %v", err)
		h.writeError(w, "Failed to import measurements", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"floor": floor,
		"count": count,
	}, http.StatusCreated)
}

// AcrylicImportRequest points at an Acrylic project file on disk
type AcrylicImportRequest struct {
	Path string `json:"path"`
}

// ImportAcrylic extracts every floor from an Acrylic .prj project file
func (h *SurveyHandler) ImportAcrylic(w http.ResponseWriter, r *http.Request) {
	var req AcrylicImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		h.writeError(w, "Path required", "Provide the path to a .prj project file", http.StatusBadRequest)
		return
	}

	floors, err := h.surveys.ImportAcrylic(r.Context(), req.Path)
	if err != nil {
		log.Printf("Failed to import project: %v", err)
		h.writeError(w, "Failed to import project", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"floors": floors,
	}, http.StatusCreated)
}

// AnalyzeFloor returns the full analysis for one floor
func (h *SurveyHandler) AnalyzeFloor(w http.ResponseWriter, r *http.Request) {
	floor := r.PathValue("floor")

	analysis, err := h.analysis.AnalyzeFloor(r.Context(), floor)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to analyze floor: %v", err)
		h.writeError(w, "Failed to analyze floor", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, analysis, http.StatusOK)
}

// AnalyzeBuilding returns the building-wide roll-up report
func (h *SurveyHandler) AnalyzeBuilding(w http.ResponseWriter, r *http.Request) {
	report, err := h.analysis.AnalyzeBuilding(r.Context())
	if err != nil {
		log.Printf("Failed to analyze building: %v", err)
		h.writeError(w, "Failed to analyze building", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, report, http.StatusOK)
}

// GetAPStats returns per-AP signal statistics for a floor
func (h *SurveyHandler) GetAPStats(w http.ResponseWriter, r *http.Request) {
	floor := r.PathValue("floor")

	stats, err := h.analysis.APStats(r.Context(), floor)
	if err != nil {
		log.Printf("Failed to compute AP stats: %v", err)
		h.writeError(w, "Failed to compute AP stats", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, stats, http.StatusOK)
}

// ValidateFloor compares one floor's survey against its reference baseline
func (h *SurveyHandler) ValidateFloor(w http.ResponseWriter, r *http.Request) {
	floor := r.PathValue("floor")

	result, err := h.validation.ValidateFloor(r.Context(), floor)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to validate floor: %v", err)
		h.writeError(w, "Failed to validate floor", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, result, http.StatusOK)
}

// ValidateBuilding validates every floor that has a baseline
func (h *SurveyHandler) ValidateBuilding(w http.ResponseWriter, r *http.Request) {
	report, err := h.validation.ValidateBuilding(r.Context())
	if err != nil {
		log.Printf("Failed to validate building: %v", err)
		h.writeError(w, "Failed to validate building", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, report, http.StatusOK)
}

// ExportFloor writes one floor's analysis as a JSON or YAML download
func (h *SurveyHandler) ExportFloor(w http.ResponseWriter, r *http.Request) {
	floor := r.PathValue("floor")

	analysis, err := h.analysis.AnalyzeFloor(r.Context(), floor)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Failed to export floor: %v", err)
		h.writeError(w, "Failed to export floor", err.Error(), http.StatusInternalServerError)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	var exporter codec.Exporter
	switch format {
	case "json":
		exporter = codec.NewJSONCodec()
		w.Header().Set("Content-Type", "application/json")
	case "yaml":
		exporter = codec.NewYAMLCodec()
		w.Header().Set("Content-Type", "application/x-yaml")
	default:
		h.writeError(w, "Unsupported format", fmt.Sprintf("format %q is not supported", format), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(floor+"."+format))
	if err := exporter.Export(analysis, w); err != nil {
		log.Printf("Failed to export floor: %v", err)
		// Headers are already sent at this point.
	}
}

// Health reports service liveness
func (h *SurveyHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// Helper methods

func (h *SurveyHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *SurveyHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
