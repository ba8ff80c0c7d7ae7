// Package domain defines the core domain types for the roamscope WiFi
// site-survey analysis system.
//
// This package contains the entities and value objects produced by a passive
// site survey: access-point observations, positioned signal measurements,
// per-floor surveys, and the reports derived from them.
//
// # Core Types
//
// Observation represents a single access point seen during a capture session:
// its BSSID, advertised network name, channel, band, and strongest signal.
//
// Measurement represents one positioned signal sample taken while walking the
// floor: a location, a BSSID, and a signal strength in dBm.
//
// Survey groups the observations of one capture session for one floor.
//
// # Reports
//
// QualityDistribution buckets signals into excellent/good/fair/poor bands.
//
// HandoverReport describes where a roaming client has a real choice of access
// points: locations where two or more BSSIDs are heard above the handover
// threshold.
//
// EfficiencyScore condenses coverage, handover availability, signal quality,
// and AP density into a single 0-100 score per floor.
//
// ValidationResult compares a survey against a reference baseline captured
// with a commercial tool, reporting match percentages and a verdict.
//
// # Design Principles
//
// - Immutable value objects where possible
// - No database or external dependencies
// - Pure domain logic without infrastructure concerns
// - Empty inputs produce zero-value reports, never NaN percentages
package domain
