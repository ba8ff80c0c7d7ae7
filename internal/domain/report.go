package domain

import "time"

// FloorAnalysis is the complete analysis of one floor's survey data.
type FloorAnalysis struct {
	Floor       string       `json:"floor"`
	Source      SurveySource `json:"source,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`

	Summary      SurveySummary  `json:"summary"`
	TopNetworks  []NetworkCount `json:"top_networks,omitempty"`
	ChannelUsage []ChannelCount `json:"channel_usage,omitempty"`

	// Target-network analysis, present when a target SSID is configured
	// and matching data exists.
	TargetSSID    string              `json:"target_ssid,omitempty"`
	TargetSummary SurveySummary       `json:"target_summary,omitempty"`
	TargetQuality QualityDistribution `json:"target_quality,omitempty"`

	// Positioned-measurement analysis, present when measurements exist.
	Handover   *HandoverReport  `json:"handover,omitempty"`
	Efficiency *EfficiencyScore `json:"efficiency,omitempty"`
}

// BuildingReport rolls up floor analyses across the whole site.
type BuildingReport struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Floors      []FloorAnalysis `json:"floors"`

	TotalAPs            int     `json:"total_aps"`
	TotalNetworks       int     `json:"total_networks"`
	AvgEfficiency       float64 `json:"avg_efficiency,omitempty"`
	AvgHandoverCoverage float64 `json:"avg_handover_coverage,omitempty"`
}

// AnalyzeFloor builds a floor analysis from a survey and its optional
// positioned measurements. targetSSID filters the focused analysis;
// handoverThreshold of 0 uses the default.
func AnalyzeFloor(survey *Survey, measurements []Measurement, targetSSID string, handoverThreshold float64) FloorAnalysis {
	analysis := FloorAnalysis{
		Floor:        survey.Floor,
		Source:       survey.Source,
		GeneratedAt:  Now(),
		Summary:      Summarize(survey.Observations),
		TopNetworks:  TopNetworks(survey.Observations, 10),
		ChannelUsage: ChannelUsage(survey.Observations, 10),
	}

	if targetSSID != "" {
		target := survey.FilterSSID(targetSSID)
		analysis.TargetSSID = targetSSID
		analysis.TargetSummary = Summarize(target)

		signals := make([]float64, len(target))
		for i := range target {
			signals[i] = target[i].Signal
		}
		analysis.TargetQuality = Distribute(signals)
	}

	if len(measurements) > 0 {
		focused := FilterMeasurementsSSID(measurements, targetSSID)
		handover := DetectHandoverZones(focused, handoverThreshold)
		quality := Distribute(Signals(focused))
		efficiency := ScoreEfficiency(quality, handover)

		analysis.Handover = &handover
		analysis.Efficiency = &efficiency
	}

	return analysis
}

// BuildReport rolls up floor analyses into a building-wide report. Averages
// only cover floors that have positioned-measurement analysis.
func BuildReport(floors []FloorAnalysis) BuildingReport {
	report := BuildingReport{
		GeneratedAt: Now(),
		Floors:      floors,
	}

	var scored int
	for _, f := range floors {
		report.TotalAPs += f.Summary.TotalAPs
		report.TotalNetworks += f.Summary.UniqueESSIDs

		if f.Efficiency != nil {
			report.AvgEfficiency += f.Efficiency.Overall
			scored++
		}
		if f.Handover != nil {
			report.AvgHandoverCoverage += f.Handover.CoveragePct
		}
	}

	if scored > 0 {
		report.AvgEfficiency /= float64(scored)
		report.AvgHandoverCoverage /= float64(scored)
	}

	return report
}
