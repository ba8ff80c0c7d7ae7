package codec

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamscope/internal/domain"
)

const sampleMeasurements = `id,timestamp,x_position,y_position,bssid,ssid,channel,frequency,signal_strength
1,2025-11-13 10:00:00,1.5,2.0,aa:bb:cc:dd:ee:01,SLU-users,6,2437,-52
2,2025-11-13 10:00:05,1.5,2.0,AA:BB:CC:DD:EE:02,SLU-users,36,,-61
3,2025-11-13 10:00:10,bad,2.0,AA:BB:CC:DD:EE:03,eduroam,11,2462,-70
4,2025-11-13 10:00:15,4.0,2.0,AA:BB:CC:DD:EE:01,SLU-users,6,2437,n/a
`

func TestParseMeasurements(t *testing.T) {
	codec := NewMeasurementsCodec()

	measurements, err := codec.ParseMeasurements(strings.NewReader(sampleMeasurements))
	require.NoError(t, err)

	// Rows 3 and 4 have unparsable fields and are dropped.
	require.Len(t, measurements, 2)

	got := measurements[0]
	got.Timestamp = time.Time{}
	want := domain.Measurement{
		X:         1.5,
		Y:         2.0,
		BSSID:     "AA:BB:CC:DD:EE:01",
		SSID:      "SLU-users",
		Channel:   6,
		Frequency: 2437,
		Signal:    -52,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("measurement mismatch (-want +got):\n%s", diff)
	}

	// A missing frequency is derived from the channel.
	assert.Equal(t, 5180, measurements[1].Frequency)
}

func TestParseMeasurementsMissingColumn(t *testing.T) {
	codec := NewMeasurementsCodec()

	_, err := codec.ParseMeasurements(strings.NewReader("id,timestamp,bssid\n1,t,x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x_position")
}

func TestParseMeasurementsEmpty(t *testing.T) {
	codec := NewMeasurementsCodec()

	_, err := codec.ParseMeasurements(strings.NewReader(""))
	require.Error(t, err)
}
