/**
 * @description
 * Data access layer for the insights-service: the partner-offer catalog
 * (read-only to this service) and persisted assessment results.
 */
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/transfa/insights-service/internal/domain"
)

var (
	ErrOfferNotFound      = errors.New("offer not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
)

// Repository handles database operations for the insights-service.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListActiveOffers returns every catalog offer whose active window
// contains now. Requirement thresholds and persona priorities are
// stored as JSONB and decoded into their domain shapes.
func (r *Repository) ListActiveOffers(ctx context.Context, now time.Time) ([]domain.PartnerOffer, error) {
	query := `
		SELECT id, name, partner, pitch, category, active_from, active_until,
		       targeted_personas, requirements, persona_priority
		FROM partner_offers
		WHERE active_from <= $1
		  AND (active_until IS NULL OR active_until >= $1)
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("listing active offers: %w", err)
	}
	defer rows.Close()

	var offers []domain.PartnerOffer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}

// GetOffer fetches a single catalog offer by id.
func (r *Repository) GetOffer(ctx context.Context, offerID string) (*domain.PartnerOffer, error) {
	query := `
		SELECT id, name, partner, pitch, category, active_from, active_until,
		       targeted_personas, requirements, persona_priority
		FROM partner_offers
		WHERE id = $1
	`
	rows, err := r.db.Query(ctx, query, offerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrOfferNotFound
	}
	offer, err := scanOffer(rows)
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func scanOffer(row pgx.Row) (domain.PartnerOffer, error) {
	var (
		offer        domain.PartnerOffer
		personas     []string
		requirements []byte
		priorities   []byte
	)
	if err := row.Scan(
		&offer.ID, &offer.Name, &offer.Partner, &offer.Pitch, &offer.Category,
		&offer.ActiveFrom, &offer.ActiveUntil,
		&personas, &requirements, &priorities,
	); err != nil {
		return domain.PartnerOffer{}, fmt.Errorf("scanning offer row: %w", err)
	}

	offer.TargetedPersonas = make([]domain.PersonaType, len(personas))
	for i, p := range personas {
		offer.TargetedPersonas[i] = domain.PersonaType(p)
	}
	if len(requirements) > 0 {
		if err := json.Unmarshal(requirements, &offer.Requirements); err != nil {
			return domain.PartnerOffer{}, fmt.Errorf("decoding offer requirements for %s: %w", offer.ID, err)
		}
	}
	offer.PersonaPriority = map[domain.PersonaType]int{}
	if len(priorities) > 0 {
		if err := json.Unmarshal(priorities, &offer.PersonaPriority); err != nil {
			return domain.PartnerOffer{}, fmt.Errorf("decoding offer priorities for %s: %w", offer.ID, err)
		}
	}
	return offer, nil
}

// SaveAssessment persists one completed assessment for audit and later
// retrieval by the rendering service.
func (r *Repository) SaveAssessment(ctx context.Context, a domain.Assessment) error {
	signals, err := json.Marshal(a.Signals)
	if err != nil {
		return fmt.Errorf("encoding signals: %w", err)
	}
	personas, err := json.Marshal(a.Personas)
	if err != nil {
		return fmt.Errorf("encoding personas: %w", err)
	}
	metrics, err := json.Marshal(a.Metrics)
	if err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}

	query := `
		INSERT INTO assessments (id, user_id, as_of, primary_persona, signals, personas, metrics, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.Exec(ctx, query,
		a.ID, a.UserID, a.AsOf.Time, string(a.Personas.Primary()),
		signals, personas, metrics, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting assessment %s: %w", a.ID, err)
	}
	return nil
}

// GetLatestAssessment returns the most recent assessment for a user.
func (r *Repository) GetLatestAssessment(ctx context.Context, userID string) (*domain.Assessment, error) {
	query := `
		SELECT id, user_id, as_of, signals, personas, metrics, created_at
		FROM assessments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var (
		a        domain.Assessment
		asOf     time.Time
		signals  []byte
		personas []byte
		metrics  []byte
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(&a.ID, &a.UserID, &asOf, &signals, &personas, &metrics, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	a.AsOf = domain.DateOf(asOf)
	if err := json.Unmarshal(signals, &a.Signals); err != nil {
		return nil, fmt.Errorf("decoding signals for assessment %s: %w", a.ID, err)
	}
	if err := json.Unmarshal(personas, &a.Personas); err != nil {
		return nil, fmt.Errorf("decoding personas for assessment %s: %w", a.ID, err)
	}
	if err := json.Unmarshal(metrics, &a.Metrics); err != nil {
		return nil, fmt.Errorf("decoding metrics for assessment %s: %w", a.ID, err)
	}
	return &a, nil
}
