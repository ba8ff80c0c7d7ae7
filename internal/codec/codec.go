package codec

import (
	"io"

	"roamscope/internal/domain"
)

// Importer parses raw capture output into a survey.
type Importer interface {
	Parse(r io.Reader) (*domain.Survey, error)
	Format() string
}

// MeasurementImporter parses positioned signal readings.
type MeasurementImporter interface {
	ParseMeasurements(r io.Reader) ([]domain.Measurement, error)
	Format() string
}

// Exporter writes a floor analysis to an output stream.
type Exporter interface {
	Export(analysis *domain.FloorAnalysis, w io.Writer) error
	Format() string
}
