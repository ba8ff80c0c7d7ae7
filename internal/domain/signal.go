package domain

import (
	"math"
	"sort"
)

// Band is the radio band an access point operates in.
type Band string

const (
	Band24GHz   Band = "2.4 GHz"
	Band5GHz    Band = "5 GHz"
	BandUnknown Band = ""
)

// QualityBand classifies a signal strength reading.
type QualityBand string

const (
	QualityExcellent QualityBand = "excellent" // stronger than -50 dBm
	QualityGood      QualityBand = "good"      // -50 to -65 dBm
	QualityFair      QualityBand = "fair"      // -65 to -80 dBm
	QualityPoor      QualityBand = "poor"      // -80 dBm and below
)

// Quality band boundaries in dBm. The intervals are half-open: a reading of
// exactly -50 is good, exactly -65 is fair, exactly -80 is poor.
const (
	ExcellentThreshold = -50.0
	GoodThreshold      = -65.0
	FairThreshold      = -80.0
)

// Classify maps a dBm reading to its quality band.
func Classify(dbm float64) QualityBand {
	switch {
	case dbm > ExcellentThreshold:
		return QualityExcellent
	case dbm > GoodThreshold:
		return QualityGood
	case dbm > FairThreshold:
		return QualityFair
	default:
		return QualityPoor
	}
}

// ChannelFrequency maps an 802.11 channel number to its center frequency in
// MHz. Channels 1-14 map into the 2.4 GHz band, 36-165 into 5 GHz. Unknown
// channels return 0.
func ChannelFrequency(channel int) int {
	switch {
	case channel >= 1 && channel <= 14:
		return 2407 + channel*5
	case channel >= 36 && channel <= 165:
		return 5000 + channel*5
	default:
		return 0
	}
}

// BandForFrequency classifies a frequency in MHz into a radio band.
func BandForFrequency(mhz int) Band {
	switch {
	case mhz == 0:
		return BandUnknown
	case mhz < 3000:
		return Band24GHz
	default:
		return Band5GHz
	}
}

// SignalStats holds descriptive statistics over a set of dBm readings.
type SignalStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stddev"`
}

// ComputeSignalStats computes descriptive statistics over dBm readings.
// An empty input yields the zero value. StdDev uses the sample (n-1)
// denominator and is 0 for a single reading.
func ComputeSignalStats(signals []float64) SignalStats {
	if len(signals) == 0 {
		return SignalStats{}
	}

	sorted := make([]float64, len(signals))
	copy(sorted, signals)
	sort.Float64s(sorted)

	var sum float64
	for _, s := range sorted {
		sum += s
	}
	mean := sum / float64(len(sorted))

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	var variance float64
	if len(sorted) > 1 {
		for _, s := range sorted {
			d := s - mean
			variance += d * d
		}
		variance /= float64(len(sorted) - 1)
	}

	return SignalStats{
		Count:  len(sorted),
		Mean:   mean,
		Median: median,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		StdDev: math.Sqrt(variance),
	}
}

// QualityDistribution buckets a set of readings into quality bands.
type QualityDistribution struct {
	Total        int     `json:"total"`
	Excellent    int     `json:"excellent"`
	Good         int     `json:"good"`
	Fair         int     `json:"fair"`
	Poor         int     `json:"poor"`
	ExcellentPct float64 `json:"excellent_pct"`
	GoodPct      float64 `json:"good_pct"`
	FairPct      float64 `json:"fair_pct"`
	PoorPct      float64 `json:"poor_pct"`
}

// Distribute buckets dBm readings into quality bands with percentages.
// An empty input yields the zero distribution.
func Distribute(signals []float64) QualityDistribution {
	dist := QualityDistribution{Total: len(signals)}
	if dist.Total == 0 {
		return dist
	}

	for _, s := range signals {
		switch Classify(s) {
		case QualityExcellent:
			dist.Excellent++
		case QualityGood:
			dist.Good++
		case QualityFair:
			dist.Fair++
		case QualityPoor:
			dist.Poor++
		}
	}

	total := float64(dist.Total)
	dist.ExcellentPct = float64(dist.Excellent) / total * 100
	dist.GoodPct = float64(dist.Good) / total * 100
	dist.FairPct = float64(dist.Fair) / total * 100
	dist.PoorPct = float64(dist.Poor) / total * 100

	return dist
}

// CoveragePct is the share of readings with usable signal (excellent or good).
func (d QualityDistribution) CoveragePct() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Excellent+d.Good) / float64(d.Total) * 100
}
