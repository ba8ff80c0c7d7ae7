package service

import (
	"context"
	"fmt"

	"roamscope/internal/domain"
	"roamscope/internal/observability"
	"roamscope/internal/repository"
)

// ValidationService compares stored surveys against reference
// baselines taken with the commercial tool.
type ValidationService struct {
	repo       repository.Repository
	eventBus   *EventBus
	metrics    *observability.Metrics
	baselines  []domain.ReferenceBaseline
	targetSSID string
}

// NewValidationService creates a new validation service
func NewValidationService(repo repository.Repository, eventBus *EventBus, metrics *observability.Metrics, baselines []domain.ReferenceBaseline, targetSSID string) *ValidationService {
	return &ValidationService{
		repo:       repo,
		eventBus:   eventBus,
		metrics:    metrics,
		baselines:  baselines,
		targetSSID: targetSSID,
	}
}

// ValidateFloor compares one floor's survey against its baseline
func (s *ValidationService) ValidateFloor(ctx context.Context, floor string) (*domain.ValidationResult, error) {
	baseline, ok := s.baselineFor(floor)
	if !ok {
		return nil, fmt.Errorf("no baseline for floor %s: %w", floor, ErrNotFound)
	}

	survey, err := s.repo.GetSurvey(ctx, floor)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, fmt.Errorf("floor %s: %w", floor, ErrNotFound)
	}

	summary := domain.Summarize(survey.Observations)
	targetSummary := domain.Summarize(survey.FilterSSID(s.targetSSID))

	result := domain.Validate(floor, summary, targetSummary, baseline)

	s.metrics.ValidationRunsTotal.Inc()
	s.eventBus.Publish(Event{
		Type: EventValidationCompleted,
		Payload: map[string]interface{}{
			"floor":   floor,
			"verdict": string(result.OverallVerdict),
		},
	})

	return &result, nil
}

// ValidationReport bundles per-floor results with the overall summary
type ValidationReport struct {
	Results []domain.ValidationResult `json:"results"`
	Summary domain.ValidationSummary  `json:"summary"`
}

// ValidateBuilding validates every floor that has both a survey and a
// baseline. Floors without a baseline are skipped, not failed.
func (s *ValidationService) ValidateBuilding(ctx context.Context) (*ValidationReport, error) {
	floors, err := s.repo.Floors(ctx)
	if err != nil {
		return nil, err
	}

	var results []domain.ValidationResult
	for _, floor := range floors {
		if _, ok := s.baselineFor(floor); !ok {
			continue
		}
		result, err := s.ValidateFloor(ctx, floor)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	return &ValidationReport{
		Results: results,
		Summary: domain.SummarizeValidation(results),
	}, nil
}

func (s *ValidationService) baselineFor(floor string) (domain.ReferenceBaseline, bool) {
	for _, b := range s.baselines {
		if b.Floor == floor {
			return b, true
		}
	}
	return domain.ReferenceBaseline{}, false
}
