package domain

// Efficiency score weights. Handover availability dominates because the
// survey's purpose is roaming behavior, not raw coverage.
const (
	handoverWeight = 0.4
	signalWeight   = 0.3
	densityWeight  = 0.3

	// densityFullScale is the APs-per-zone count treated as a perfect
	// density score.
	densityFullScale = 20.0
)

// EfficiencyScore condenses a floor's roaming quality into 0-100 component
// scores and a weighted overall score.
type EfficiencyScore struct {
	Coverage      float64 `json:"coverage_score"`
	Handover      float64 `json:"handover_score"`
	SignalQuality float64 `json:"signal_quality_score"`
	Density       float64 `json:"density_score"`
	Overall       float64 `json:"overall_score"`
}

// ScoreEfficiency derives component scores from a quality distribution and a
// handover report. A floor with no handover zones scores signal quality as
// if the average zone signal were -100 dBm.
func ScoreEfficiency(dist QualityDistribution, handover HandoverReport) EfficiencyScore {
	avgZoneSignal := -100.0
	avgAPsPerZone := 0.0
	if handover.ZoneCount > 0 {
		avgZoneSignal = handover.AvgZoneSignal
		avgAPsPerZone = handover.AvgAPsPerZone
	}

	score := EfficiencyScore{
		Coverage:      dist.CoveragePct(),
		Handover:      handover.CoveragePct,
		SignalQuality: clamp((avgZoneSignal+100)*2, 0, 100),
		Density:       clamp(avgAPsPerZone/densityFullScale*100, 0, 100),
	}

	score.Overall = score.Handover*handoverWeight +
		score.SignalQuality*signalWeight +
		score.Density*densityWeight

	return score
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
