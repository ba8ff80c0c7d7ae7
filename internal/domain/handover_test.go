package domain

import (
	"math"
	"testing"
)

func TestDetectHandoverZones(t *testing.T) {
	t.Run("empty input yields empty report", func(t *testing.T) {
		report := DetectHandoverZones(nil, 0)
		if report.TotalLocations != 0 || report.ZoneCount != 0 {
			t.Errorf("expected empty report, got %+v", report)
		}
		if report.Threshold != DefaultHandoverThreshold {
			t.Errorf("expected default threshold, got %f", report.Threshold)
		}
	})

	t.Run("location with two strong APs is a zone", func(t *testing.T) {
		measurements := []Measurement{
			{X: 1, Y: 1, BSSID: "AA:BB:CC:00:00:01", Signal: -55},
			{X: 1, Y: 1, BSSID: "AA:BB:CC:00:00:02", Signal: -65},
		}

		report := DetectHandoverZones(measurements, 0)
		if report.TotalLocations != 1 {
			t.Fatalf("expected 1 location, got %d", report.TotalLocations)
		}
		if report.ZoneCount != 1 {
			t.Fatalf("expected 1 zone, got %d", report.ZoneCount)
		}
		if report.CoveragePct != 100 {
			t.Errorf("expected 100%% coverage, got %f", report.CoveragePct)
		}

		zone := report.Zones[0]
		if zone.APCount != 2 {
			t.Errorf("expected 2 APs, got %d", zone.APCount)
		}
		if zone.AvgSignal != -60 {
			t.Errorf("expected avg -60, got %f", zone.AvgSignal)
		}
	})

	t.Run("single AP is not a zone", func(t *testing.T) {
		measurements := []Measurement{
			{X: 1, Y: 1, BSSID: "AA:BB:CC:00:00:01", Signal: -55},
		}

		report := DetectHandoverZones(measurements, 0)
		if report.ZoneCount != 0 {
			t.Errorf("expected no zones, got %d", report.ZoneCount)
		}
		if report.CoveragePct != 0 {
			t.Errorf("expected 0%% coverage, got %f", report.CoveragePct)
		}
	})

	t.Run("weak APs do not count toward the zone", func(t *testing.T) {
		measurements := []Measurement{
			{X: 1, Y: 1, BSSID: "AA:BB:CC:00:00:01", Signal: -55},
			{X: 1, Y: 1, BSSID: "AA:BB:CC:00:00:02", Signal: -72},
		}

		report := DetectHandoverZones(measurements, -70)
		if report.ZoneCount != 0 {
			t.Errorf("expected no zones with one AP below threshold, got %d", report.ZoneCount)
		}
	})

	t.Run("threshold is exclusive", func(t *testing.T) {
		measurements := []Measurement{
			{X: 1, Y: 1, BSSID: "AA:BB:CC:00:00:01", Signal: -70},
			{X: 1, Y: 1, BSSID: "AA:BB:CC:00:00:02", Signal: -60},
		}

		report := DetectHandoverZones(measurements, -70)
		if report.ZoneCount != 0 {
			t.Error("expected reading exactly at threshold to be excluded")
		}
	})

	t.Run("duplicate BSSID readings count once", func(t *testing.T) {
		measurements := []Measurement{
			{X: 1, Y: 1, BSSID: "AA:BB:CC:00:00:01", Signal: -50},
			{X: 1, Y: 1, BSSID: "AA:BB:CC:00:00:01", Signal: -52},
			{X: 1, Y: 1, BSSID: "AA:BB:CC:00:00:02", Signal: -60},
		}

		report := DetectHandoverZones(measurements, 0)
		if report.ZoneCount != 1 {
			t.Fatalf("expected 1 zone, got %d", report.ZoneCount)
		}
		if report.Zones[0].APCount != 2 {
			t.Errorf("expected 2 distinct APs, got %d", report.Zones[0].APCount)
		}
	})

	t.Run("aggregates across locations", func(t *testing.T) {
		measurements := []Measurement{
			// Zone with 2 APs.
			{X: 0, Y: 0, BSSID: "AA:BB:CC:00:00:01", Signal: -50},
			{X: 0, Y: 0, BSSID: "AA:BB:CC:00:00:02", Signal: -60},
			// Zone with 3 APs.
			{X: 5, Y: 5, BSSID: "AA:BB:CC:00:00:01", Signal: -55},
			{X: 5, Y: 5, BSSID: "AA:BB:CC:00:00:02", Signal: -58},
			{X: 5, Y: 5, BSSID: "AA:BB:CC:00:00:03", Signal: -61},
			// Not a zone.
			{X: 9, Y: 9, BSSID: "AA:BB:CC:00:00:01", Signal: -85},
		}

		report := DetectHandoverZones(measurements, 0)
		if report.TotalLocations != 3 {
			t.Fatalf("expected 3 locations, got %d", report.TotalLocations)
		}
		if report.ZoneCount != 2 {
			t.Fatalf("expected 2 zones, got %d", report.ZoneCount)
		}
		if math.Abs(report.CoveragePct-200.0/3) > 1e-9 {
			t.Errorf("expected coverage 66.7%%, got %f", report.CoveragePct)
		}
		if report.AvgAPsPerZone != 2.5 {
			t.Errorf("expected 2.5 APs per zone, got %f", report.AvgAPsPerZone)
		}
		if report.MaxAPsInZone != 3 {
			t.Errorf("expected max 3 APs, got %d", report.MaxAPsInZone)
		}
	})
}

func TestScoreEfficiency(t *testing.T) {
	t.Run("no zones scores zero handover and density", func(t *testing.T) {
		score := ScoreEfficiency(QualityDistribution{}, HandoverReport{})
		if score.Handover != 0 || score.Density != 0 {
			t.Errorf("expected zero handover and density, got %+v", score)
		}
		// avg zone signal defaults to -100 dBm.
		if score.SignalQuality != 0 {
			t.Errorf("expected zero signal quality, got %f", score.SignalQuality)
		}
		if score.Overall != 0 {
			t.Errorf("expected zero overall, got %f", score.Overall)
		}
	})

	t.Run("weighted overall score", func(t *testing.T) {
		dist := Distribute([]float64{-45, -55, -85, -85})
		handover := HandoverReport{
			TotalLocations: 10,
			ZoneCount:      8,
			CoveragePct:    80,
			AvgAPsPerZone:  10,
			AvgZoneSignal:  -60,
		}

		score := ScoreEfficiency(dist, handover)

		if score.Coverage != 50 {
			t.Errorf("expected coverage 50, got %f", score.Coverage)
		}
		if score.Handover != 80 {
			t.Errorf("expected handover 80, got %f", score.Handover)
		}
		// (-60+100)*2 = 80
		if score.SignalQuality != 80 {
			t.Errorf("expected signal quality 80, got %f", score.SignalQuality)
		}
		// 10/20*100 = 50
		if score.Density != 50 {
			t.Errorf("expected density 50, got %f", score.Density)
		}
		// 80*0.4 + 80*0.3 + 50*0.3 = 71
		if math.Abs(score.Overall-71) > 1e-9 {
			t.Errorf("expected overall 71, got %f", score.Overall)
		}
	})

	t.Run("signal quality is clamped", func(t *testing.T) {
		handover := HandoverReport{ZoneCount: 1, AvgAPsPerZone: 50, AvgZoneSignal: -20}
		score := ScoreEfficiency(QualityDistribution{}, handover)
		if score.SignalQuality != 100 {
			t.Errorf("expected clamped signal quality 100, got %f", score.SignalQuality)
		}
		if score.Density != 100 {
			t.Errorf("expected clamped density 100, got %f", score.Density)
		}
	})
}
