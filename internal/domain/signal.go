/**
 * @description
 * Signal types produced by the six behavioral detectors. Every detector
 * has its own closed evidence struct so that each threshold comparison
 * behind a Detected flag stays reconstructable from typed fields.
 */
package domain

// TimeWindow is the trailing period a signal is computed over. Signals
// for different windows are independent and never merged.
type TimeWindow string

const (
	Window30d  TimeWindow = "30d"
	Window180d TimeWindow = "180d"
)

// Days returns the window length in days.
func (w TimeWindow) Days() int {
	if w == Window30d {
		return 30
	}
	return 180
}

// SignalKind identifies one of the six detector families.
type SignalKind string

const (
	SignalOverdraft     SignalKind = "overdraft"
	SignalCreditStress  SignalKind = "credit_stress"
	SignalIncome        SignalKind = "income_irregularity"
	SignalSubscriptions SignalKind = "subscriptions"
	SignalSavings       SignalKind = "savings_growth"
	SignalLowActivity   SignalKind = "low_activity"
)

// Signal is one detector verdict over one window.
type Signal[E any] struct {
	Detected bool       `json:"detected"`
	Window   TimeWindow `json:"window"`
	Evidence E          `json:"evidence"`
}

// WindowPair holds the 30-day and 180-day signals of one kind.
type WindowPair[E any] struct {
	Days30  Signal[E] `json:"30d"`
	Days180 Signal[E] `json:"180d"`
}

// OverdraftIncidentType distinguishes the two incident sources.
type OverdraftIncidentType string

const (
	IncidentNegativeBalance OverdraftIncidentType = "negative_balance"
	IncidentOverdraftFee    OverdraftIncidentType = "overdraft_fee"
)

// OverdraftIncident is one overdraft event: either a checking account
// currently below zero (dated "today") or a fee-pattern transaction.
type OverdraftIncident struct {
	AccountID   string                `json:"account_id"`
	Date        Date                  `json:"date"`
	Type        OverdraftIncidentType `json:"type"`
	Amount      float64               `json:"amount"`
	Description string                `json:"description,omitempty"`
}

// OverdraftEvidence backs the overdraft signal.
type OverdraftEvidence struct {
	Incidents []OverdraftIncident `json:"incidents"`
	Count30d  int                 `json:"count_30d"`
	Count180d int                 `json:"count_180d"`
	TotalFees float64             `json:"total_fees"`
}

// UtilizationBucket bands a utilization percentage at 30/50/80.
type UtilizationBucket string

const (
	UtilizationUnder30 UtilizationBucket = "under_30"
	Utilization30to50  UtilizationBucket = "30_to_50"
	Utilization50to80  UtilizationBucket = "50_to_80"
	UtilizationOver80  UtilizationBucket = "over_80"
)

// IsHigh reports whether this bucket indicates stressed utilization.
func (b UtilizationBucket) IsHigh() bool {
	return b == Utilization50to80 || b == UtilizationOver80
}

// CreditAccountStatus is the per-account view of the credit signal.
type CreditAccountStatus struct {
	AccountID          string            `json:"account_id"`
	Balance            float64           `json:"balance"`
	Limit              float64           `json:"limit"`
	UtilizationPercent float64           `json:"utilization_percent"`
	Bucket             UtilizationBucket `json:"bucket"`
	MinimumPaymentOnly bool              `json:"minimum_payment_only"`
	HasInterestCharges bool              `json:"has_interest_charges"`
	IsOverdue          bool              `json:"is_overdue"`
}

// Stressed reports whether this single account triggers the credit signal.
func (c CreditAccountStatus) Stressed() bool {
	return c.Bucket.IsHigh() || c.HasInterestCharges || c.MinimumPaymentOnly || c.IsOverdue
}

// CreditEvidence backs the credit signal.
type CreditEvidence struct {
	Accounts                  []CreditAccountStatus `json:"accounts"`
	OverallUtilizationPercent float64               `json:"overall_utilization_percent"`
	OverallBucket             UtilizationBucket     `json:"overall_bucket"`
}

// PayFrequency classifies the cadence of income deposits.
type PayFrequency string

const (
	PayWeekly    PayFrequency = "weekly"
	PayBiweekly  PayFrequency = "biweekly"
	PayMonthly   PayFrequency = "monthly"
	PayIrregular PayFrequency = "irregular"
)

// IncomeEvidence backs the income-regularity signal.
type IncomeEvidence struct {
	DepositCount     int          `json:"deposit_count"`
	MedianPayGapDays float64      `json:"median_pay_gap_days"`
	Frequency        PayFrequency `json:"frequency"`
	AverageIncome    float64      `json:"average_income"`
	CashFlowBuffer   float64      `json:"cash_flow_buffer"` // checking balance / estimated monthly expense
}

// Cadence is the recurring interval between similar charges.
type Cadence string

const (
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceMonthly  Cadence = "monthly"
)

// MonthlyFactor converts a per-cadence amount to a monthly figure.
func (c Cadence) MonthlyFactor() float64 {
	switch c {
	case CadenceWeekly:
		return 4
	case CadenceBiweekly:
		return 2
	default:
		return 1
	}
}

// ChargeSource records how a recurring charge was found.
type ChargeSource string

const (
	SourceStream   ChargeSource = "stream"   // trusted external recurring-stream record
	SourceDetected ChargeSource = "detected" // self-detected from cadence analysis
)

// RecurringCharge is one accepted subscription.
type RecurringCharge struct {
	Merchant    string       `json:"merchant"`
	Amount      float64      `json:"amount"`
	Cadence     Cadence      `json:"cadence"`
	LastCharge  Date         `json:"last_charge"`
	Occurrences int          `json:"occurrences"`
	Source      ChargeSource `json:"source"`
}

// SubscriptionEvidence backs the subscription signal.
type SubscriptionEvidence struct {
	Subscriptions           []RecurringCharge `json:"subscriptions"`
	TotalMonthlySpend       float64           `json:"total_monthly_spend"`
	MonthlySubscriptionCost float64           `json:"monthly_subscription_cost"`
	ShareOfSpendPercent     float64           `json:"share_of_spend_percent"`
}

// SavingsActivity is the per-account view of the savings signal.
type SavingsActivity struct {
	AccountID         string  `json:"account_id"`
	StartBalance      float64 `json:"start_balance"`
	EndBalance        float64 `json:"end_balance"`
	NetInflow         float64 `json:"net_inflow"`
	GrowthRatePercent float64 `json:"growth_rate_percent"`
}

// SavingsEvidence backs the savings-growth signal.
type SavingsEvidence struct {
	Accounts            []SavingsActivity `json:"accounts"`
	TotalBalance        float64           `json:"total_balance"`
	MonthlyNetInflow    float64           `json:"monthly_net_inflow"`
	EmergencyFundMonths float64           `json:"emergency_fund_months"`
}

// ActivityEvidence backs the banking-activity ("low use") signal. Both
// window counts are always carried because the detection predicate reads
// every axis at once.
type ActivityEvidence struct {
	OutboundCount30d  int `json:"outbound_count_30d"`
	OutboundCount180d int `json:"outbound_count_180d"`
	UniqueMerchants   int `json:"unique_merchants"`
}

// DetectedSignals is the full fixed-shape bundle: six kinds, two windows
// each. Built once per assessment; the sole input to persona assignment
// and eligibility calculation.
type DetectedSignals struct {
	Overdraft     WindowPair[OverdraftEvidence]    `json:"overdraft"`
	Credit        WindowPair[CreditEvidence]       `json:"credit"`
	Income        WindowPair[IncomeEvidence]       `json:"income"`
	Subscriptions WindowPair[SubscriptionEvidence] `json:"subscriptions"`
	Savings       WindowPair[SavingsEvidence]      `json:"savings"`
	Activity      WindowPair[ActivityEvidence]     `json:"activity"`
}

// KindsDetected lists every signal kind with Detected=true in at least
// one window, in a fixed order. Diagnostic, not authoritative.
func (s DetectedSignals) KindsDetected() []SignalKind {
	kinds := []SignalKind{}
	if s.Overdraft.Days30.Detected || s.Overdraft.Days180.Detected {
		kinds = append(kinds, SignalOverdraft)
	}
	if s.Credit.Days30.Detected || s.Credit.Days180.Detected {
		kinds = append(kinds, SignalCreditStress)
	}
	if s.Income.Days30.Detected || s.Income.Days180.Detected {
		kinds = append(kinds, SignalIncome)
	}
	if s.Subscriptions.Days30.Detected || s.Subscriptions.Days180.Detected {
		kinds = append(kinds, SignalSubscriptions)
	}
	if s.Savings.Days30.Detected || s.Savings.Days180.Detected {
		kinds = append(kinds, SignalSavings)
	}
	if s.Activity.Days30.Detected || s.Activity.Days180.Detected {
		kinds = append(kinds, SignalLowActivity)
	}
	return kinds
}
