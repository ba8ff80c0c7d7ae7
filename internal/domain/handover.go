package domain

import "sort"

// DefaultHandoverThreshold is the minimum signal at which an AP counts as a
// viable roaming candidate.
const DefaultHandoverThreshold = -70.0

// HandoverZone is a surveyed location where a roaming client can choose
// between two or more access points heard above the handover threshold.
type HandoverZone struct {
	Location  Location `json:"location"`
	APCount   int      `json:"ap_count"`
	AvgSignal float64  `json:"avg_signal"`
}

// HandoverReport summarizes roaming coverage across a floor.
type HandoverReport struct {
	Threshold      float64        `json:"threshold"`
	TotalLocations int            `json:"total_locations"`
	ZoneCount      int            `json:"zone_count"`
	CoveragePct    float64        `json:"coverage_pct"`
	AvgAPsPerZone  float64        `json:"avg_aps_per_zone"`
	MaxAPsInZone   int            `json:"max_aps_in_zone"`
	AvgZoneSignal  float64        `json:"avg_zone_signal"`
	Zones          []HandoverZone `json:"zones,omitempty"`
}

// DetectHandoverZones groups measurements by floor-plan location and reports
// the locations where at least two distinct BSSIDs are heard stronger than
// the threshold. A threshold of 0 uses DefaultHandoverThreshold.
func DetectHandoverZones(measurements []Measurement, threshold float64) HandoverReport {
	if threshold == 0 {
		threshold = DefaultHandoverThreshold
	}

	report := HandoverReport{Threshold: threshold}

	groups := GroupByLocation(measurements)
	report.TotalLocations = len(groups)
	if report.TotalLocations == 0 {
		return report
	}

	var apSum int
	var signalSum float64

	for loc, group := range groups {
		bssids := make(map[string]struct{})
		var strong []float64
		for _, m := range group {
			if m.Signal > threshold {
				bssids[m.BSSID] = struct{}{}
				strong = append(strong, m.Signal)
			}
		}

		if len(bssids) < 2 {
			continue
		}

		stats := ComputeSignalStats(strong)
		zone := HandoverZone{
			Location:  loc,
			APCount:   len(bssids),
			AvgSignal: stats.Mean,
		}
		report.Zones = append(report.Zones, zone)

		apSum += zone.APCount
		signalSum += zone.AvgSignal
		if zone.APCount > report.MaxAPsInZone {
			report.MaxAPsInZone = zone.APCount
		}
	}

	sort.Slice(report.Zones, func(i, j int) bool {
		a, b := report.Zones[i].Location, report.Zones[j].Location
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	report.ZoneCount = len(report.Zones)
	report.CoveragePct = float64(report.ZoneCount) / float64(report.TotalLocations) * 100
	if report.ZoneCount > 0 {
		report.AvgAPsPerZone = float64(apSum) / float64(report.ZoneCount)
		report.AvgZoneSignal = signalSum / float64(report.ZoneCount)
	}

	return report
}
