package domain

import "math"

// Verdict grades how well a survey agrees with its reference baseline.
type Verdict string

const (
	VerdictExcellent Verdict = "excellent"
	VerdictGood      Verdict = "good"
	VerdictPartial   Verdict = "partial"
)

// Validation thresholds. Signal agreement within 2 dBm is excellent, within
// 5 dBm good. The overall verdict also requires BSSID detection agreement.
const (
	signalDiffExcellent = 2.0
	signalDiffGoodMax   = 5.0
	overallDiffMax      = 3.0
	bssidMatchExcellent = 90.0
	bssidMatchGood      = 80.0
)

// ReferenceBaseline holds a floor's numbers from the commercial survey tool,
// used to validate the Pi rig's detections.
type ReferenceBaseline struct {
	Floor     string  `json:"floor" yaml:"floor"`
	APs       int     `json:"aps" yaml:"aps"`
	BSSIDs    int     `json:"bssids" yaml:"bssids"`
	Networks  int     `json:"networks" yaml:"networks"`
	AvgSignal float64 `json:"avg_signal" yaml:"avg_signal"`
}

// ValidationResult compares one floor's survey against its baseline.
type ValidationResult struct {
	Floor string `json:"floor"`

	SurveyAvgSignal    float64 `json:"survey_avg_signal"`
	BaselineAvgSignal  float64 `json:"baseline_avg_signal"`
	SignalDiff         float64 `json:"signal_diff"`
	SurveyBSSIDs       int     `json:"survey_bssids"`
	BaselineBSSIDs     int     `json:"baseline_bssids"`
	BSSIDMatchPct      float64 `json:"bssid_match_pct"`
	SurveyNetworks     int     `json:"survey_networks"`
	BaselineNetworks   int     `json:"baseline_networks"`
	NetworkMatchPct    float64 `json:"network_match_pct"`
	SignalVerdict      Verdict `json:"signal_verdict"`
	OverallVerdict     Verdict `json:"overall_verdict"`
}

// ValidationSummary aggregates the per-floor results.
type ValidationSummary struct {
	Floors        []ValidationResult `json:"floors"`
	AvgSignalDiff float64            `json:"avg_signal_diff"`
	AvgBSSIDMatch float64            `json:"avg_bssid_match"`
	Verdict       Verdict            `json:"verdict"`
}

// MatchPct reports how closely two detection counts agree, as
// min/max * 100. Zero on either side yields 0.
func MatchPct(a, b int) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	lo, hi := float64(a), float64(b)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo / hi * 100
}

// Validate compares a floor summary (filtered to the target network for the
// signal comparison) against its reference baseline.
func Validate(floor string, summary SurveySummary, targetSummary SurveySummary, baseline ReferenceBaseline) ValidationResult {
	result := ValidationResult{
		Floor:             floor,
		SurveyAvgSignal:   targetSummary.AvgSignal,
		BaselineAvgSignal: baseline.AvgSignal,
		SignalDiff:        math.Abs(targetSummary.AvgSignal - baseline.AvgSignal),
		SurveyBSSIDs:      summary.UniqueBSSIDs,
		BaselineBSSIDs:    baseline.BSSIDs,
		BSSIDMatchPct:     MatchPct(summary.UniqueBSSIDs, baseline.BSSIDs),
		SurveyNetworks:    summary.UniqueESSIDs,
		BaselineNetworks:  baseline.Networks,
		NetworkMatchPct:   MatchPct(summary.UniqueESSIDs, baseline.Networks),
	}

	switch {
	case result.SignalDiff < signalDiffExcellent:
		result.SignalVerdict = VerdictExcellent
	case result.SignalDiff < signalDiffGoodMax:
		result.SignalVerdict = VerdictGood
	default:
		result.SignalVerdict = VerdictPartial
	}

	switch {
	case result.SignalDiff < overallDiffMax && result.BSSIDMatchPct > bssidMatchExcellent:
		result.OverallVerdict = VerdictExcellent
	case result.SignalDiff < signalDiffGoodMax && result.BSSIDMatchPct > bssidMatchGood:
		result.OverallVerdict = VerdictGood
	default:
		result.OverallVerdict = VerdictPartial
	}

	return result
}

// SummarizeValidation rolls up per-floor validation results. An empty input
// yields a partial verdict with zero averages.
func SummarizeValidation(results []ValidationResult) ValidationSummary {
	summary := ValidationSummary{Floors: results, Verdict: VerdictPartial}
	if len(results) == 0 {
		return summary
	}

	var diffSum, matchSum float64
	for _, r := range results {
		diffSum += r.SignalDiff
		matchSum += r.BSSIDMatchPct
	}
	summary.AvgSignalDiff = diffSum / float64(len(results))
	summary.AvgBSSIDMatch = matchSum / float64(len(results))

	switch {
	case summary.AvgSignalDiff < overallDiffMax && summary.AvgBSSIDMatch > bssidMatchExcellent:
		summary.Verdict = VerdictExcellent
	case summary.AvgSignalDiff < signalDiffGoodMax && summary.AvgBSSIDMatch > bssidMatchGood:
		summary.Verdict = VerdictGood
	}

	return summary
}
