package domain

import (
	"sort"
	"strings"
	"time"
)

// Measurement is one positioned signal sample taken while walking a floor.
// X and Y are floor-plan coordinates in the survey tool's unit system.
type Measurement struct {
	Floor     string    `json:"floor"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	X         float64   `json:"x_position"`
	Y         float64   `json:"y_position"`
	BSSID     string    `json:"bssid"`
	SSID      string    `json:"ssid,omitempty"`
	Channel   int       `json:"channel,omitempty"`
	Frequency int       `json:"frequency,omitempty"`
	Signal    float64   `json:"signal_strength"`
}

// Location is a surveyed floor-plan point.
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MatchesSSID reports whether the measurement's network name contains the
// fragment, case-insensitively. An empty fragment matches everything.
func (m *Measurement) MatchesSSID(fragment string) bool {
	if fragment == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.SSID), strings.ToLower(fragment))
}

// FilterMeasurementsSSID returns the measurements whose SSID contains the
// fragment, case-insensitively.
func FilterMeasurementsSSID(measurements []Measurement, fragment string) []Measurement {
	if fragment == "" {
		return measurements
	}
	var out []Measurement
	for i := range measurements {
		if measurements[i].MatchesSSID(fragment) {
			out = append(out, measurements[i])
		}
	}
	return out
}

// GroupByLocation indexes measurements by their floor-plan point.
func GroupByLocation(measurements []Measurement) map[Location][]Measurement {
	groups := make(map[Location][]Measurement)
	for _, m := range measurements {
		loc := Location{X: m.X, Y: m.Y}
		groups[loc] = append(groups[loc], m)
	}
	return groups
}

// Signals extracts the dBm readings from a set of measurements.
func Signals(measurements []Measurement) []float64 {
	out := make([]float64, len(measurements))
	for i := range measurements {
		out[i] = measurements[i].Signal
	}
	return out
}

// APSignalStats aggregates the readings for one access point on one network.
type APSignalStats struct {
	BSSID string      `json:"bssid"`
	SSID  string      `json:"ssid,omitempty"`
	Stats SignalStats `json:"stats"`
}

// AggregateByAP computes per-AP signal statistics, grouped by (BSSID, SSID),
// ordered by BSSID then SSID for stable output.
func AggregateByAP(measurements []Measurement) []APSignalStats {
	type key struct {
		bssid string
		ssid  string
	}
	groups := make(map[key][]float64)
	for _, m := range measurements {
		k := key{bssid: m.BSSID, ssid: m.SSID}
		groups[k] = append(groups[k], m.Signal)
	}

	out := make([]APSignalStats, 0, len(groups))
	for k, signals := range groups {
		out = append(out, APSignalStats{
			BSSID: k.bssid,
			SSID:  k.ssid,
			Stats: ComputeSignalStats(signals),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BSSID != out[j].BSSID {
			return out[i].BSSID < out[j].BSSID
		}
		return out[i].SSID < out[j].SSID
	})
	return out
}
