package handler

import "net/http"

// Register wires the survey API routes onto the mux
func (h *SurveyHandler) Register(mux *http.ServeMux) {
	// Survey endpoints
	mux.HandleFunc("GET /api/surveys", h.ListSurveys)
	mux.HandleFunc("GET /api/surveys/{floor}", h.GetSurvey)
	mux.HandleFunc("DELETE /api/surveys/{floor}", h.DeleteSurvey)
	mux.HandleFunc("GET /api/surveys/{floor}/measurements", h.GetMeasurements)

	// Import endpoints
	mux.HandleFunc("POST /api/import/airodump", h.ImportAirodump)
	mux.HandleFunc("POST /api/import/measurements", h.ImportMeasurements)
	mux.HandleFunc("POST /api/import/acrylic", h.ImportAcrylic)

	// Analysis endpoints
	mux.HandleFunc("GET /api/analysis", h.AnalyzeBuilding)
	mux.HandleFunc("GET /api/analysis/{floor}", h.AnalyzeFloor)
	mux.HandleFunc("GET /api/analysis/{floor}/aps", h.GetAPStats)

	// Validation endpoints
	mux.HandleFunc("GET /api/validation", h.ValidateBuilding)
	mux.HandleFunc("GET /api/validation/{floor}", h.ValidateFloor)

	// Export endpoint
	mux.HandleFunc("GET /api/export/{floor}", h.ExportFloor)

	// Health endpoint
	mux.HandleFunc("GET /healthz", h.Health)
}
