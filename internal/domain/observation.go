package domain

import (
	"sort"
	"strings"
	"time"
)

// SurveySource identifies which capture rig produced a survey.
type SurveySource string

const (
	SourcePi      SurveySource = "pi"      // airodump-ng on the Raspberry Pi rig
	SourceAcrylic SurveySource = "acrylic" // commercial heatmap tool export
)

// Observation is a single access point seen during a capture session.
// Signal is the strongest power reading for the BSSID in dBm (negative,
// typically -30 to -95).
type Observation struct {
	BSSID     string    `json:"bssid"`
	ESSID     string    `json:"essid,omitempty"`
	Channel   int       `json:"channel,omitempty"`
	Frequency int       `json:"frequency,omitempty"` // MHz, derived from channel
	Band      Band      `json:"band,omitempty"`
	Signal    float64   `json:"signal_dbm"`
	Beacons   int       `json:"beacons,omitempty"`
	Privacy   string    `json:"privacy,omitempty"`
	Cipher    string    `json:"cipher,omitempty"`
	Auth      string    `json:"authentication,omitempty"`
	FirstSeen time.Time `json:"first_seen,omitempty"`
	LastSeen  time.Time `json:"last_seen,omitempty"`
}

// NewObservation creates an observation with a normalized BSSID and the
// frequency and band derived from the channel.
func NewObservation(bssid, essid string, channel int, signal float64) *Observation {
	freq := ChannelFrequency(channel)
	return &Observation{
		BSSID:     NormalizeBSSID(bssid),
		ESSID:     strings.TrimSpace(essid),
		Channel:   channel,
		Frequency: freq,
		Band:      BandForFrequency(freq),
		Signal:    signal,
	}
}

// NormalizeBSSID trims and upper-cases a MAC address string.
func NormalizeBSSID(bssid string) string {
	return strings.ToUpper(strings.TrimSpace(bssid))
}

// NormalizeFloor lower-cases a floor name and replaces spaces with
// underscores, so "Ground Floor" and "ground_floor" refer to the same
// floor.
func NormalizeFloor(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

// MatchesSSID reports whether the observation's network name contains the
// given fragment, case-insensitively. An empty fragment matches everything.
func (o *Observation) MatchesSSID(fragment string) bool {
	if fragment == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.ESSID), strings.ToLower(fragment))
}

// Survey is one floor's capture session.
type Survey struct {
	Floor        string        `json:"floor"`
	Source       SurveySource  `json:"source"`
	CapturedAt   time.Time     `json:"captured_at,omitempty"`
	StationCount int           `json:"station_count,omitempty"`
	Observations []Observation `json:"observations,omitempty"`
}

// NewSurvey creates a survey with an initialized observation slice.
func NewSurvey(floor string, source SurveySource) *Survey {
	return &Survey{
		Floor:        floor,
		Source:       source,
		Observations: make([]Observation, 0),
	}
}

// AddObservation appends an observation to the survey.
func (s *Survey) AddObservation(o Observation) {
	s.Observations = append(s.Observations, o)
}

// FilterSSID returns the observations whose ESSID contains the fragment,
// case-insensitively.
func (s *Survey) FilterSSID(fragment string) []Observation {
	if fragment == "" {
		return s.Observations
	}
	var out []Observation
	for _, o := range s.Observations {
		if o.MatchesSSID(fragment) {
			out = append(out, o)
		}
	}
	return out
}

// SurveySummary holds the aggregate counts and signal statistics for a set
// of observations.
type SurveySummary struct {
	TotalAPs     int     `json:"total_aps"`
	UniqueBSSIDs int     `json:"unique_bssids"`
	UniqueESSIDs int     `json:"unique_essids"`
	AvgSignal    float64 `json:"avg_signal"`
	MedianSignal float64 `json:"median_signal"`
	MinSignal    float64 `json:"min_signal"`
	MaxSignal    float64 `json:"max_signal"`
	StdDevSignal float64 `json:"stddev_signal"`
	ChannelsUsed int     `json:"channels_used"`
	Band24Count  int     `json:"band_2_4ghz"`
	Band5Count   int     `json:"band_5ghz"`
}

// Summarize computes aggregate statistics over a set of observations.
// An empty input yields the zero summary.
func Summarize(observations []Observation) SurveySummary {
	if len(observations) == 0 {
		return SurveySummary{}
	}

	bssids := make(map[string]struct{})
	essids := make(map[string]struct{})
	channels := make(map[int]struct{})
	signals := make([]float64, 0, len(observations))

	summary := SurveySummary{TotalAPs: len(observations)}

	for _, o := range observations {
		bssids[o.BSSID] = struct{}{}
		if o.ESSID != "" {
			essids[o.ESSID] = struct{}{}
		}
		if o.Channel != 0 {
			channels[o.Channel] = struct{}{}
		}
		signals = append(signals, o.Signal)

		switch o.Band {
		case Band24GHz:
			summary.Band24Count++
		case Band5GHz:
			summary.Band5Count++
		}
	}

	stats := ComputeSignalStats(signals)

	summary.UniqueBSSIDs = len(bssids)
	summary.UniqueESSIDs = len(essids)
	summary.ChannelsUsed = len(channels)
	summary.AvgSignal = stats.Mean
	summary.MedianSignal = stats.Median
	summary.MinSignal = stats.Min
	summary.MaxSignal = stats.Max
	summary.StdDevSignal = stats.StdDev

	return summary
}

// NetworkCount pairs a network name with the number of APs broadcasting it.
type NetworkCount struct {
	ESSID string `json:"essid"`
	Count int    `json:"count"`
}

// ChannelCount pairs a channel with the number of APs using it.
type ChannelCount struct {
	Channel int `json:"channel"`
	Count   int `json:"count"`
}

// TopNetworks returns up to limit networks ordered by descending AP count.
// Unnamed (hidden) networks are excluded. Ties break by name for stable
// output.
func TopNetworks(observations []Observation, limit int) []NetworkCount {
	counts := make(map[string]int)
	for _, o := range observations {
		if o.ESSID != "" {
			counts[o.ESSID]++
		}
	}

	out := make([]NetworkCount, 0, len(counts))
	for essid, n := range counts {
		out = append(out, NetworkCount{ESSID: essid, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ESSID < out[j].ESSID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ChannelUsage returns channels ordered by descending AP count, then by
// channel number. Observations without a channel are excluded.
func ChannelUsage(observations []Observation, limit int) []ChannelCount {
	counts := make(map[int]int)
	for _, o := range observations {
		if o.Channel != 0 {
			counts[o.Channel]++
		}
	}

	out := make([]ChannelCount, 0, len(counts))
	for ch, n := range counts {
		out = append(out, ChannelCount{Channel: ch, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Channel < out[j].Channel
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
