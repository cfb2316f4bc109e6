/**
 * @description
 * Assessment aggregate returned by one end-to-end run: signals, persona
 * result and eligibility metrics together. Fully populated, serializable
 * data with no behavior, so downstream renderers can map persona tags to
 * prose without re-deriving evidence.
 */
package domain

import "time"

// Assessment is the outcome of one assessment run for one user.
type Assessment struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"user_id"`
	AsOf      Date                    `json:"as_of"`
	Signals   DetectedSignals         `json:"signals"`
	Personas  PersonaAssignmentResult `json:"personas"`
	Metrics   EligibilityMetrics      `json:"metrics"`
	CreatedAt time.Time               `json:"created_at"`
}
