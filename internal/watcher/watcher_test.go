package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"roamscope/internal/observability"
	"roamscope/internal/repository/sqlite"
	"roamscope/internal/service"
)

const testCapture = `
BSSID, First time seen, Last time seen, channel, Speed, Privacy, Cipher, Authentication, Power, # beacons, # IV, LAN IP, ID-length, ESSID, Key
AA:BB:CC:00:00:01, 2025-11-13 09:15:02, 2025-11-13 09:42:11,   6,  130, WPA2, CCMP, PSK, -48,  120,    0,   0.  0.  0.  0,   9, SLU-users,

Station MAC, First time seen, Last time seen, Power, # packets, BSSID, Probed ESSIDs
11:22:33:44:55:66, 2025-11-13 09:15:10, 2025-11-13 09:40:00, -60,   45, AA:BB:CC:00:00:01,
`

func TestIsCapture(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"survey_ground-01.csv", true},
		{"/drop/survey_top-02.csv", true},
		{"survey_basement.csv", true},
		{"ground-01.csv", false},
		{"survey_ground-01.csv.tmp", false},
		{"notes.txt", false},
	}

	for _, tt := range tests {
		if got := isCapture(tt.path); got != tt.want {
			t.Errorf("isCapture(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestImportExisting(t *testing.T) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	surveys := service.NewSurveyService(repo, service.NewEventBus(), observability.NewMetricsForTesting())

	dir := t.TempDir()
	files := []string{"survey_ground-01.csv", "survey_top-01.csv", "readme.txt"}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(testCapture), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	w := New(dir, surveys)
	if err := w.ImportExisting(context.Background()); err != nil {
		t.Fatalf("ImportExisting() error: %v", err)
	}

	floors, err := repo.Floors(context.Background())
	if err != nil {
		t.Fatalf("Floors() error: %v", err)
	}
	if len(floors) != 2 {
		t.Fatalf("expected 2 floors imported, got %v", floors)
	}

	t.Run("missing directory is not an error", func(t *testing.T) {
		w := New(filepath.Join(dir, "missing"), surveys)
		if err := w.ImportExisting(context.Background()); err != nil {
			t.Errorf("expected nil for missing directory, got %v", err)
		}
	})
}
