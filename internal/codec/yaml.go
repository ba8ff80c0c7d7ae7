package codec

import (
	"fmt"
	"io"

	"roamscope/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec exports analysis reports as YAML.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier.
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Export writes a floor analysis to w.
func (c *YAMLCodec) Export(analysis *domain.FloorAnalysis, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(analysis); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// ExportBuilding writes a cross-floor report to w.
func (c *YAMLCodec) ExportBuilding(report *domain.BuildingReport, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
