package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"roamscope/internal/domain"
)

// JSONCodec exports analysis reports as indented JSON.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier.
func (c *JSONCodec) Format() string {
	return "json"
}

// Export writes a floor analysis to w.
func (c *JSONCodec) Export(analysis *domain.FloorAnalysis, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(analysis); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// ExportBuilding writes a cross-floor report to w.
func (c *JSONCodec) ExportBuilding(report *domain.BuildingReport, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
