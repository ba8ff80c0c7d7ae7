package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"roamscope/internal/codec"
	"roamscope/internal/domain"
	"roamscope/internal/observability"
	"roamscope/internal/repository"
	"roamscope/internal/repository/sqlite"
)

// ErrNotFound marks lookups for floors that have no stored survey.
var ErrNotFound = errors.New("not found")

// SurveyService provides business logic for survey ingest and access
type SurveyService struct {
	repo     repository.Repository
	eventBus *EventBus
	metrics  *observability.Metrics
}

// NewSurveyService creates a new survey service
func NewSurveyService(repo repository.Repository, eventBus *EventBus, metrics *observability.Metrics) *SurveyService {
	return &SurveyService{
		repo:     repo,
		eventBus: eventBus,
		metrics:  metrics,
	}
}

// ImportAirodump parses an airodump-ng capture and stores it as the
// floor's survey, replacing any previous one.
func (s *SurveyService) ImportAirodump(ctx context.Context, floor string, r io.Reader) (*domain.Survey, error) {
	if floor == "" {
		return nil, fmt.Errorf("floor required")
	}

	survey, err := codec.NewAirodumpCodec().Parse(r)
	if err != nil {
		s.metrics.ImportErrorsTotal.WithLabelValues("airodump").Inc()
		return nil, fmt.Errorf("failed to parse capture: %w", err)
	}
	survey.Floor = floor
	survey.CapturedAt = domain.Now()

	if err := s.repo.SaveSurvey(ctx, survey); err != nil {
		s.metrics.ImportErrorsTotal.WithLabelValues("airodump").Inc()
		return nil, err
	}

	s.metrics.ImportsTotal.WithLabelValues("airodump").Inc()
	s.metrics.ObservationsImported.Add(float64(len(survey.Observations)))
	log.Printf("imported airodump capture for floor %s: %d APs, %d stations",
		floor, len(survey.Observations), survey.StationCount)

	s.eventBus.Publish(Event{
		Type: EventSurveyImported,
		Payload: map[string]interface{}{
			"floor":  floor,
			"source": string(survey.Source),
			"aps":    len(survey.Observations),
		},
	})

	return survey, nil
}

// ImportMeasurements parses a positioned measurement export and stores
// it for the floor, replacing any previous measurements.
func (s *SurveyService) ImportMeasurements(ctx context.Context, floor string, r io.Reader) (int, error) {
	if floor == "" {
		return 0, fmt.Errorf("floor required")
	}

	measurements, err := codec.NewMeasurementsCodec().ParseMeasurements(r)
	if err != nil {
		s.metrics.ImportErrorsTotal.WithLabelValues("measurements").Inc()
		return 0, fmt.Errorf("failed to parse measurements: %w", err)
	}
	for i := range measurements {
		measurements[i].Floor = floor
	}

	if err := s.repo.SaveMeasurements(ctx, floor, measurements); err != nil {
		s.metrics.ImportErrorsTotal.WithLabelValues("measurements").Inc()
		return 0, err
	}

	s.metrics.ImportsTotal.WithLabelValues("measurements").Inc()
	s.metrics.MeasurementsImported.Add(float64(len(measurements)))
	log.Printf("imported %d measurements for floor %s", len(measurements), floor)

	s.eventBus.Publish(Event{
		Type: EventMeasurementsImported,
		Payload: map[string]interface{}{
			"floor": floor,
			"count": len(measurements),
		},
	})

	return len(measurements), nil
}

// ImportAcrylic extracts every floor from an Acrylic .prj project file
// and stores reference surveys plus positioned measurements. Returns
// the floors that were imported.
func (s *SurveyService) ImportAcrylic(ctx context.Context, path string) ([]string, error) {
	floors, err := sqlite.ExtractAcrylicProject(ctx, path)
	if err != nil {
		s.metrics.ImportErrorsTotal.WithLabelValues("acrylic").Inc()
		return nil, fmt.Errorf("failed to extract project: %w", err)
	}

	var imported []string
	for _, f := range floors {
		f.Survey.CapturedAt = domain.Now()
		if err := s.repo.SaveSurvey(ctx, f.Survey); err != nil {
			s.metrics.ImportErrorsTotal.WithLabelValues("acrylic").Inc()
			return imported, err
		}
		if err := s.repo.SaveMeasurements(ctx, f.Floor, f.Measurements); err != nil {
			s.metrics.ImportErrorsTotal.WithLabelValues("acrylic").Inc()
			return imported, err
		}

		s.metrics.ObservationsImported.Add(float64(len(f.Survey.Observations)))
		s.metrics.MeasurementsImported.Add(float64(len(f.Measurements)))
		log.Printf("imported acrylic floor %s: %d APs, %d measurements",
			f.Floor, len(f.Survey.Observations), len(f.Measurements))

		s.eventBus.Publish(Event{
			Type: EventSurveyImported,
			Payload: map[string]interface{}{
				"floor":  f.Floor,
				"source": string(domain.SourceAcrylic),
				"aps":    len(f.Survey.Observations),
			},
		})

		imported = append(imported, f.Floor)
	}

	s.metrics.ImportsTotal.WithLabelValues("acrylic").Inc()
	return imported, nil
}

// GetSurvey loads the survey for a floor
func (s *SurveyService) GetSurvey(ctx context.Context, floor string) (*domain.Survey, error) {
	survey, err := s.repo.GetSurvey(ctx, floor)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, fmt.Errorf("floor %s: %w", floor, ErrNotFound)
	}
	return survey, nil
}

// ListSurveys loads all stored surveys
func (s *SurveyService) ListSurveys(ctx context.Context) ([]domain.Survey, error) {
	return s.repo.ListSurveys(ctx)
}

// Floors lists the floors with a stored survey
func (s *SurveyService) Floors(ctx context.Context) ([]string, error) {
	return s.repo.Floors(ctx)
}

// GetMeasurements loads the positioned measurements for a floor
func (s *SurveyService) GetMeasurements(ctx context.Context, floor string) ([]domain.Measurement, error) {
	return s.repo.GetMeasurements(ctx, floor)
}

// DeleteSurvey removes a floor's survey and measurements
func (s *SurveyService) DeleteSurvey(ctx context.Context, floor string) error {
	survey, err := s.repo.GetSurvey(ctx, floor)
	if err != nil {
		return err
	}
	if survey == nil {
		return fmt.Errorf("floor %s: %w", floor, ErrNotFound)
	}

	if err := s.repo.DeleteSurvey(ctx, floor); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventSurveyDeleted,
		Payload: map[string]string{"floor": floor},
	})

	return nil
}
