package eligibility

import (
	"testing"
	"time"

	"github.com/transfa/insights-service/internal/domain"
)

var matchNow = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

func activeOffer(id string, personas ...domain.PersonaType) domain.PartnerOffer {
	return domain.PartnerOffer{
		ID:               id,
		Name:             "Offer " + id,
		Partner:          "Acme Bank",
		ActiveFrom:       matchNow.AddDate(0, -1, 0),
		TargetedPersonas: personas,
	}
}

func ptr[T any](v T) *T { return &v }

func TestMatchOffers_FiltersInactiveAndUntargeted(t *testing.T) {
	expired := activeOffer("expired", domain.PersonaSteady)
	until := matchNow.AddDate(0, 0, -1)
	expired.ActiveUntil = &until

	future := activeOffer("future", domain.PersonaSteady)
	future.ActiveFrom = matchNow.AddDate(0, 1, 0)

	wrongPersona := activeOffer("wrong", domain.PersonaLowUse)

	offers := []domain.PartnerOffer{
		expired,
		future,
		wrongPersona,
		activeOffer("keep", domain.PersonaSteady),
	}

	matched := MatchOffers(offers, domain.EligibilityMetrics{}, domain.PersonaSteady, matchNow)

	if len(matched) != 1 || matched[0].ID != "keep" {
		t.Fatalf("expected only 'keep', got %v", matched)
	}
}

func TestMatchOffers_NoRequirementsAlwaysPasses(t *testing.T) {
	offers := []domain.PartnerOffer{activeOffer("open", domain.PersonaSteady)}

	matched := MatchOffers(offers, domain.EligibilityMetrics{}, domain.PersonaSteady, matchNow)

	if len(matched) != 1 {
		t.Fatalf("an offer without requirements must match, got %d", len(matched))
	}
}

func TestMatchOffers_RequirementBounds(t *testing.T) {
	metrics := domain.EligibilityMetrics{
		EstimatedMonthlyIncome: 3000,
		MaxUtilizationPercent:  50,
		TotalSavingsBalance:    1000,
		IncomeStability:        domain.IncomeStable,
		HasSavingsAccount:      true,
	}

	cases := []struct {
		name string
		req  domain.EligibilityRequirements
		want bool
	}{
		{"income at minimum", domain.EligibilityRequirements{MinMonthlyIncome: ptr(3000.0)}, true},
		{"income below minimum", domain.EligibilityRequirements{MinMonthlyIncome: ptr(3000.01)}, false},
		{"utilization at maximum", domain.EligibilityRequirements{MaxUtilizationPercent: ptr(50.0)}, true},
		{"utilization above maximum", domain.EligibilityRequirements{MaxUtilizationPercent: ptr(49.9)}, false},
		{"utilization floor met", domain.EligibilityRequirements{MinUtilizationPercent: ptr(50.0)}, true},
		{"utilization floor missed", domain.EligibilityRequirements{MinUtilizationPercent: ptr(60.0)}, false},
		{"stability mismatch", domain.EligibilityRequirements{RequiredIncomeStability: ptr(domain.IncomeIrregular)}, false},
		{"already has savings", domain.EligibilityRequirements{RequiresNoSavingsAccount: true}, false},
		{"no credit card required and absent", domain.EligibilityRequirements{RequiresNoCreditCard: true}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offer := activeOffer("o1", domain.PersonaSteady)
			offer.Requirements = tc.req

			matched := MatchOffers([]domain.PartnerOffer{offer}, metrics, domain.PersonaSteady, matchNow)

			if got := len(matched) == 1; got != tc.want {
				t.Fatalf("matched=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchOffers_PriorityOrdering(t *testing.T) {
	noPriority := activeOffer("unranked", domain.PersonaSteady)

	second := activeOffer("second", domain.PersonaSteady)
	second.PersonaPriority = map[domain.PersonaType]int{domain.PersonaSteady: 2}

	first := activeOffer("first", domain.PersonaSteady)
	first.PersonaPriority = map[domain.PersonaType]int{domain.PersonaSteady: 1}

	matched := MatchOffers([]domain.PartnerOffer{noPriority, second, first}, domain.EligibilityMetrics{}, domain.PersonaSteady, matchNow)

	if len(matched) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matched))
	}
	got := []string{matched[0].ID, matched[1].ID, matched[2].ID}
	want := []string{"first", "second", "unranked"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", got, want)
		}
	}
}

func TestIsPredatoryOffer(t *testing.T) {
	payday := activeOffer("p1", domain.PersonaOverdraftVulnerable)
	payday.Name = "FastCash Payday Loan"

	if !IsPredatoryOffer(payday) {
		t.Fatal("payday loan should be flagged")
	}

	clean := activeOffer("c1", domain.PersonaSteady)
	clean.Name = "High-Yield Savings"
	clean.Pitch = "Grow your emergency fund"

	if IsPredatoryOffer(clean) {
		t.Fatal("clean offer must not be flagged")
	}
}

func TestMatchOffers_PredatoryOffersStillMatch(t *testing.T) {
	offer := activeOffer("p1", domain.PersonaOverdraftVulnerable)
	offer.Pitch = "Guaranteed approval in minutes"

	matched := MatchOffers([]domain.PartnerOffer{offer}, domain.EligibilityMetrics{}, domain.PersonaOverdraftVulnerable, matchNow)

	// The predatory check is advisory; it must not filter.
	if len(matched) != 1 {
		t.Fatal("predatory offers are flagged, not excluded")
	}
	if !IsPredatoryOffer(matched[0]) {
		t.Fatal("expected the predatory flag")
	}
}
