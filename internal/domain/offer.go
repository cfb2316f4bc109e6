/**
 * @description
 * Partner-offer catalog types and the flat eligibility metrics record
 * the matcher consumes. Offers are external catalog data and read-only
 * to this service.
 */
package domain

import "time"

// IncomeStability classifies how predictable a user's income is.
type IncomeStability string

const (
	IncomeStable    IncomeStability = "stable"
	IncomeIrregular IncomeStability = "irregular"
)

// EligibilityMetrics is a flat numeric/boolean projection of the
// 180-day signals, the sole financial input the offer matcher needs.
type EligibilityMetrics struct {
	MaxUtilizationPercent     float64         `json:"max_utilization_percent"`
	AverageUtilizationPercent float64         `json:"average_utilization_percent"`
	TotalCreditBalance        float64         `json:"total_credit_balance"`
	TotalCreditLimit          float64         `json:"total_credit_limit"`
	EstimatedInterestPaid     float64         `json:"estimated_interest_paid"` // flat placeholder, not a real interest calculation
	TotalSavingsBalance       float64         `json:"total_savings_balance"`
	EmergencyFundMonths       float64         `json:"emergency_fund_months"`
	EstimatedMonthlyIncome    float64         `json:"estimated_monthly_income"`
	EstimatedMonthlyExpenses  float64         `json:"estimated_monthly_expenses"`
	IncomeStability           IncomeStability `json:"income_stability"`
	HasCheckingAccount        bool            `json:"has_checking_account"`
	HasSavingsAccount         bool            `json:"has_savings_account"`
	HasCreditCard             bool            `json:"has_credit_card"`
}

// EligibilityRequirements is the sparse set of thresholds an offer may
// declare. Nil pointers mean "no requirement"; min/max bounds are
// inclusive. The boolean flags reject users who already hold that
// account type.
type EligibilityRequirements struct {
	MinMonthlyIncome         *float64         `json:"min_monthly_income,omitempty"`
	MaxUtilizationPercent    *float64         `json:"max_utilization_percent,omitempty"`
	MinUtilizationPercent    *float64         `json:"min_utilization_percent,omitempty"`
	MinSavingsBalance        *float64         `json:"min_savings_balance,omitempty"`
	MinEmergencyFundMonths   *float64         `json:"min_emergency_fund_months,omitempty"`
	RequiredIncomeStability  *IncomeStability `json:"required_income_stability,omitempty"`
	RequiresNoSavingsAccount bool             `json:"requires_no_savings_account,omitempty"`
	RequiresNoCreditCard     bool             `json:"requires_no_credit_card,omitempty"`
}

// PartnerOffer is one entry of the external offer catalog.
type PartnerOffer struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Partner          string                  `json:"partner"`
	Pitch            string                  `json:"pitch"`
	Category         string                  `json:"category"`
	ActiveFrom       time.Time               `json:"active_from"`
	ActiveUntil      *time.Time              `json:"active_until,omitempty"`
	TargetedPersonas []PersonaType           `json:"targeted_personas"`
	Requirements     EligibilityRequirements `json:"requirements"`
	PersonaPriority  map[PersonaType]int     `json:"persona_priority"` // lower = higher priority
}

// OfferMatch is one surviving offer with advisory review metadata.
type OfferMatch struct {
	Offer     PartnerOffer `json:"offer"`
	Predatory bool         `json:"predatory"` // advisory flag for a human reviewer, never an automatic exclusion
}
