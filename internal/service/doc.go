// Package service implements business logic for the Roamscope application.
//
// This package provides service layers that coordinate between the HTTP handlers
// and the repository layer, implementing business rules, validation, and event
// publishing.
//
// # Services
//
// SurveyService handles capture ingest: airodump-ng CSV parsing, positioned
// measurement imports, and Acrylic project extraction, storing results per
// floor.
//
// AnalysisService computes floor and building reports from stored data:
// summary statistics, target-network quality, handover zones, and roaming
// efficiency scores. Completed analyses can be forwarded to an external
// sink via the Publisher interface.
//
// ValidationService compares survey results against reference baselines
// captured with the commercial tool and grades the agreement.
//
// # Event System
//
// All services publish events via EventBus for real-time updates to connected
// clients via Server-Sent Events (SSE). Event types include survey imports,
// deletions, analysis and validation completion.
//
// # Design Principles
//
// - Services own business logic and validation
// - Repository pattern for data access
// - Event-driven for real-time updates
// - Context-aware for cancellation and timeouts
package service
