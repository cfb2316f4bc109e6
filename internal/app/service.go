/**
 * @description
 * Core business logic for the insights-service. The Service runs the
 * assessment flow (validate, detect signals, assign personas, derive
 * eligibility metrics), persists the result and hands it off to the
 * rendering collaborator via an event. Offer matching combines the
 * stored catalog with the pure matcher.
 */
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/transfa/insights-service/internal/domain"
	"github.com/transfa/insights-service/internal/eligibility"
	"github.com/transfa/insights-service/internal/persona"
	"github.com/transfa/insights-service/internal/signals"
)

// Repository defines the database operations the service needs.
type Repository interface {
	ListActiveOffers(ctx context.Context, now time.Time) ([]domain.PartnerOffer, error)
	SaveAssessment(ctx context.Context, a domain.Assessment) error
	GetLatestAssessment(ctx context.Context, userID string) (*domain.Assessment, error)
}

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
}

// AssessmentCompletedEvent is the payload published after each run.
type AssessmentCompletedEvent struct {
	AssessmentID   string             `json:"assessment_id"`
	UserID         string             `json:"user_id"`
	PrimaryPersona domain.PersonaType `json:"primary_persona"`
	CompletedAt    time.Time          `json:"completed_at"`
}

// RoutingKeyAssessmentCompleted is the topic routing key for completed runs.
const RoutingKeyAssessmentCompleted = "assessment.completed"

// Service provides the business logic for financial insights.
type Service struct {
	repo      Repository
	publisher EventPublisher
	exchange  string
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new insights service.
func NewService(repo Repository, publisher EventPublisher, exchange string, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		exchange:  exchange,
		logger:    logger,
		now:       time.Now,
	}
}

// RunAssessment executes the full pipeline over one validated snapshot.
// The core stages are pure; only persistence and event publishing touch
// the outside world, and neither failure aborts the response.
func (s *Service) RunAssessment(ctx context.Context, snapshot domain.Snapshot) (*domain.Assessment, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	asOf := snapshot.AsOf.Time
	if asOf.IsZero() {
		asOf = s.now()
	}

	detected := signals.DetectAll(snapshot, asOf)
	personas := persona.Assign(detected)
	metrics := eligibility.CalculateMetrics(detected, snapshot.Accounts)

	assessment := domain.Assessment{
		ID:        uuid.NewString(),
		UserID:    snapshot.UserID,
		AsOf:      domain.DateOf(asOf),
		Signals:   detected,
		Personas:  personas,
		Metrics:   metrics,
		CreatedAt: s.now(),
	}

	if err := s.repo.SaveAssessment(ctx, assessment); err != nil {
		// The assessment itself is still valid; persistence is best-effort.
		s.logger.Error("failed to persist assessment", "assessment_id", assessment.ID, "user_id", assessment.UserID, "error", err)
	}

	if s.publisher != nil {
		event := AssessmentCompletedEvent{
			AssessmentID:   assessment.ID,
			UserID:         assessment.UserID,
			PrimaryPersona: personas.Primary(),
			CompletedAt:    assessment.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, s.exchange, RoutingKeyAssessmentCompleted, event); err != nil {
			s.logger.Error("failed to publish assessment event", "assessment_id", assessment.ID, "error", err)
		}
	}

	s.logger.Info("assessment completed",
		"assessment_id", assessment.ID,
		"user_id", assessment.UserID,
		"primary_persona", personas.Primary(),
		"personas_matched", len(personas.Personas),
	)
	return &assessment, nil
}

// MatchOffers filters the active catalog against the given metrics and
// persona and annotates each survivor with the advisory predatory flag.
func (s *Service) MatchOffers(ctx context.Context, metrics domain.EligibilityMetrics, target domain.PersonaType) ([]domain.OfferMatch, error) {
	now := s.now()
	offers, err := s.repo.ListActiveOffers(ctx, now)
	if err != nil {
		return nil, err
	}

	matched := eligibility.MatchOffers(offers, metrics, target, now)
	results := make([]domain.OfferMatch, len(matched))
	for i, offer := range matched {
		results[i] = domain.OfferMatch{
			Offer:     offer,
			Predatory: eligibility.IsPredatoryOffer(offer),
		}
	}
	s.logger.Info("offer matching completed", "persona", target, "catalog_size", len(offers), "matched", len(results))
	return results, nil
}

// LatestAssessment returns a user's most recent persisted assessment.
func (s *Service) LatestAssessment(ctx context.Context, userID string) (*domain.Assessment, error) {
	return s.repo.GetLatestAssessment(ctx, userID)
}
