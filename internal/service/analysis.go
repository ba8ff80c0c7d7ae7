package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"roamscope/internal/domain"
	"roamscope/internal/observability"
	"roamscope/internal/repository"
)

// Publisher forwards completed analyses to an external sink. The kafka
// adapter implements it; a nil publisher disables forwarding.
type Publisher interface {
	PublishAnalysis(ctx context.Context, analysis *domain.FloorAnalysis) error
}

// AnalysisOptions tunes the analysis pipeline
type AnalysisOptions struct {
	TargetSSID        string
	HandoverThreshold float64
	TopNetworks       int
}

// AnalysisService computes floor and building reports from stored
// surveys and measurements.
type AnalysisService struct {
	repo      repository.Repository
	eventBus  *EventBus
	metrics   *observability.Metrics
	publisher Publisher
	opts      AnalysisOptions
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(repo repository.Repository, eventBus *EventBus, metrics *observability.Metrics, opts AnalysisOptions) *AnalysisService {
	return &AnalysisService{
		repo:     repo,
		eventBus: eventBus,
		metrics:  metrics,
		opts:     opts,
	}
}

// SetPublisher attaches an external analysis sink
func (s *AnalysisService) SetPublisher(p Publisher) {
	s.publisher = p
}

// AnalyzeFloor computes the full analysis for one floor
func (s *AnalysisService) AnalyzeFloor(ctx context.Context, floor string) (*domain.FloorAnalysis, error) {
	started := time.Now()

	survey, err := s.repo.GetSurvey(ctx, floor)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, fmt.Errorf("floor %s: %w", floor, ErrNotFound)
	}

	measurements, err := s.repo.GetMeasurements(ctx, floor)
	if err != nil {
		return nil, err
	}

	analysis := domain.AnalyzeFloor(survey, measurements, s.opts.TargetSSID, s.opts.HandoverThreshold)
	if s.opts.TopNetworks > 0 {
		analysis.TopNetworks = domain.TopNetworks(survey.Observations, s.opts.TopNetworks)
		analysis.ChannelUsage = domain.ChannelUsage(survey.Observations, s.opts.TopNetworks)
	}

	s.metrics.AnalysisRunsTotal.Inc()
	s.metrics.AnalysisDuration.Observe(time.Since(started).Seconds())

	s.eventBus.Publish(Event{
		Type: EventAnalysisCompleted,
		Payload: map[string]interface{}{
			"floor":     floor,
			"total_aps": analysis.Summary.TotalAPs,
		},
	})

	if s.publisher != nil {
		if err := s.publisher.PublishAnalysis(ctx, &analysis); err != nil {
			// Forwarding is best-effort; the analysis itself succeeded.
			log.Printf("failed to publish analysis for floor %s: %v", floor, err)
		}
	}

	return &analysis, nil
}

// AnalyzeBuilding analyzes every stored floor and rolls the results up
// into a building-wide report.
func (s *AnalysisService) AnalyzeBuilding(ctx context.Context) (*domain.BuildingReport, error) {
	floors, err := s.repo.Floors(ctx)
	if err != nil {
		return nil, err
	}

	analyses := make([]domain.FloorAnalysis, 0, len(floors))
	for _, floor := range floors {
		analysis, err := s.AnalyzeFloor(ctx, floor)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *analysis)
	}

	report := domain.BuildReport(analyses)
	return &report, nil
}

// APStats aggregates per-AP signal statistics for a floor's
// measurements, filtered to the target network when one is set.
func (s *AnalysisService) APStats(ctx context.Context, floor string) ([]domain.APSignalStats, error) {
	measurements, err := s.repo.GetMeasurements(ctx, floor)
	if err != nil {
		return nil, err
	}
	measurements = domain.FilterMeasurementsSSID(measurements, s.opts.TargetSSID)
	return domain.AggregateByAP(measurements), nil
}
