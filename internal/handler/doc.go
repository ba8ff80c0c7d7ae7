// Package handler implements HTTP request handlers for the Roamscope API.
//
// This package provides the HTTP layer for the Roamscope REST API, handling
// survey ingest, analysis, validation, and export requests.
//
// # Handlers
//
// SurveyHandler handles survey storage and retrieval, capture imports
// (airodump-ng CSVs, positioned measurement exports, Acrylic projects),
// floor and building analysis, baseline validation, and report export.
//
// Middleware provides panic recovery, request logging, CORS support, and
// request metrics.
//
// # API Design
//
// All handlers follow REST conventions:
// - GET for retrieval
// - POST for imports
// - DELETE for removal
//
// Errors are returned as JSON with {error, details} structure and
// appropriate HTTP status codes.
//
// # Server-Sent Events
//
// The /events endpoint provides real-time updates via SSE, allowing
// dashboards to react to imports and completed analyses.
package handler
