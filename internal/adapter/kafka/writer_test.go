package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamscope/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	analysis := &domain.FloorAnalysis{
		Floor:       "ground",
		Source:      domain.SourcePi,
		GeneratedAt: time.Date(2025, 11, 13, 10, 0, 0, 0, time.UTC),
		Summary:     domain.SurveySummary{TotalAPs: 12, AvgSignal: -61.5},
	}

	msg, err := serializeToMessage(analysis)
	require.NoError(t, err)

	assert.Equal(t, "ground", string(msg.Key))

	var decoded domain.FloorAnalysis
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, 12, decoded.Summary.TotalAPs)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, string(domain.SourcePi), headers["source"])
	assert.Equal(t, "2025-11-13T10:00:00Z", headers["generated_at"])
}
