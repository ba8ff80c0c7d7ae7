package repository

import (
	"context"

	"roamscope/internal/domain"
)

// Repository defines the interface for survey data access
type Repository interface {
	// Survey operations (one survey per floor; re-import replaces)
	SaveSurvey(ctx context.Context, survey *domain.Survey) error
	GetSurvey(ctx context.Context, floor string) (*domain.Survey, error)
	ListSurveys(ctx context.Context) ([]domain.Survey, error)
	DeleteSurvey(ctx context.Context, floor string) error
	Floors(ctx context.Context) ([]string, error)

	// Positioned measurement operations
	SaveMeasurements(ctx context.Context, floor string, measurements []domain.Measurement) error
	GetMeasurements(ctx context.Context, floor string) ([]domain.Measurement, error)
	APStats(ctx context.Context, floor string) ([]domain.APSignalStats, error)

	// Close releases resources
	Close() error
}
