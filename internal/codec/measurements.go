package codec

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"roamscope/internal/domain"
)

// MeasurementsCodec parses positioned measurement exports: RFC 4180
// CSV with an id, timestamp, x_position, y_position, bssid, ssid,
// channel, frequency, signal_strength header row.
type MeasurementsCodec struct{}

// NewMeasurementsCodec creates a new positioned measurement codec.
func NewMeasurementsCodec() *MeasurementsCodec {
	return &MeasurementsCodec{}
}

// Format returns the codec format identifier.
func (c *MeasurementsCodec) Format() string {
	return "measurements"
}

// ParseMeasurements reads a measurement export. Rows with an
// unparsable position or signal are dropped.
func (c *MeasurementsCodec) ParseMeasurements(r io.Reader) ([]domain.Measurement, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read measurements: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty measurement file")
	}

	cols := columnIndex(records[0])
	required := []string{"x_position", "y_position", "bssid", "signal_strength"}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var measurements []domain.Measurement
	for _, record := range records[1:] {
		x, errX := strconv.ParseFloat(cols.field(record, "x_position"), 64)
		y, errY := strconv.ParseFloat(cols.field(record, "y_position"), 64)
		signal, errS := strconv.ParseFloat(cols.field(record, "signal_strength"), 64)
		if errX != nil || errY != nil || errS != nil {
			continue
		}

		channel, _ := strconv.Atoi(cols.field(record, "channel"))
		frequency, _ := strconv.Atoi(cols.field(record, "frequency"))
		if frequency == 0 {
			frequency = domain.ChannelFrequency(channel)
		}

		measurements = append(measurements, domain.Measurement{
			Timestamp: parseMeasurementTime(cols.field(record, "timestamp")),
			X:         x,
			Y:         y,
			BSSID:     domain.NormalizeBSSID(cols.field(record, "bssid")),
			SSID:      cols.field(record, "ssid"),
			Channel:   channel,
			Frequency: frequency,
			Signal:    signal,
		})
	}

	return measurements, nil
}

func parseMeasurementTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, airodumpTimeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
