/**
 * @description
 * Offer matcher: filters the partner catalog against eligibility
 * metrics and a target persona, then ranks survivors by the offer's
 * per-persona priority. The predatory-term check is advisory metadata
 * for a human reviewer, never an automatic exclusion.
 */
package eligibility

import (
	"sort"
	"strings"
	"time"

	"github.com/transfa/insights-service/internal/domain"
)

// MissingPrioritySentinel ranks offers without a priority entry for the
// requested persona behind everything that has one.
const MissingPrioritySentinel = 1 << 30

// predatoryTerms is the fixed denylist matched case-insensitively
// against offer name and pitch.
var predatoryTerms = []string{
	"payday",
	"cash advance",
	"title loan",
	"rent-to-own",
	"subprime",
	"guaranteed approval",
	"no credit check loan",
}

// MatchOffers returns the offers the user is eligible for, ordered by
// the offer's priority for the given persona (lower number first).
func MatchOffers(offers []domain.PartnerOffer, metrics domain.EligibilityMetrics, persona domain.PersonaType, now time.Time) []domain.PartnerOffer {
	matched := []domain.PartnerOffer{}
	for _, offer := range offers {
		if !offerActive(offer, now) {
			continue
		}
		if !targetsPersona(offer, persona) {
			continue
		}
		if !meetsRequirements(offer.Requirements, metrics) {
			continue
		}
		matched = append(matched, offer)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return priorityFor(matched[i], persona) < priorityFor(matched[j], persona)
	})
	return matched
}

// IsPredatoryOffer flags offers whose name or pitch contains a
// denylisted term.
func IsPredatoryOffer(offer domain.PartnerOffer) bool {
	haystack := strings.ToLower(offer.Name + " " + offer.Pitch)
	for _, term := range predatoryTerms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

func offerActive(offer domain.PartnerOffer, now time.Time) bool {
	if offer.ActiveFrom.After(now) {
		return false
	}
	if offer.ActiveUntil != nil && offer.ActiveUntil.Before(now) {
		return false
	}
	return true
}

func targetsPersona(offer domain.PartnerOffer, persona domain.PersonaType) bool {
	for _, p := range offer.TargetedPersonas {
		if p == persona {
			return true
		}
	}
	return false
}

// meetsRequirements checks every populated requirement field; bounds
// are inclusive. An offer with no requirements always passes.
func meetsRequirements(req domain.EligibilityRequirements, m domain.EligibilityMetrics) bool {
	if req.MinMonthlyIncome != nil && m.EstimatedMonthlyIncome < *req.MinMonthlyIncome {
		return false
	}
	if req.MaxUtilizationPercent != nil && m.MaxUtilizationPercent > *req.MaxUtilizationPercent {
		return false
	}
	if req.MinUtilizationPercent != nil && m.MaxUtilizationPercent < *req.MinUtilizationPercent {
		return false
	}
	if req.MinSavingsBalance != nil && m.TotalSavingsBalance < *req.MinSavingsBalance {
		return false
	}
	if req.MinEmergencyFundMonths != nil && m.EmergencyFundMonths < *req.MinEmergencyFundMonths {
		return false
	}
	if req.RequiredIncomeStability != nil && m.IncomeStability != *req.RequiredIncomeStability {
		return false
	}
	if req.RequiresNoSavingsAccount && m.HasSavingsAccount {
		return false
	}
	if req.RequiresNoCreditCard && m.HasCreditCard {
		return false
	}
	return true
}

func priorityFor(offer domain.PartnerOffer, persona domain.PersonaType) int {
	if p, ok := offer.PersonaPriority[persona]; ok {
		return p
	}
	return MissingPrioritySentinel
}
