// Package repository defines the data access interfaces for Roamscope.
//
// This package provides the repository abstraction layer for persisting
// and retrieving domain entities. The actual implementation is in the
// sqlite subpackage.
//
// # Repository Interface
//
// The Repository interface defines all data access methods for surveys,
// access point observations, and positioned measurements.
//
// # SQLite Implementation
//
// The sqlite implementation provides a complete repository using SQLite
// with WAL mode for concurrency. It handles:
//
// - Per-floor survey storage, replaced wholesale on re-import
// - Observation rows keyed by (floor, bssid)
// - Positioned measurements with per-floor bulk replacement
// - Read-only extraction of Acrylic WiFi .prj project files
//
// # Testing
//
// The sqlite repository is tested with in-memory databases to ensure
// data integrity and proper handling of edge cases.
package repository
