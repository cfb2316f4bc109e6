/**
 * @description
 * Persona assignment engine. Seven named rules evaluated in a fixed
 * priority order against the full signal bundle. Every rule is checked
 * independently (multi-match, not first-match-wins); priority order is
 * rank order, so Personas[0] is always the highest-priority match.
 */
package persona

import (
	"fmt"

	"github.com/transfa/insights-service/internal/domain"
	"github.com/transfa/insights-service/internal/signals"
)

// Rule thresholds that are persona policy rather than detector policy.
const (
	MinCashFlowBufferMonths = 1.0  // variable-income rule: buffer below this is tight
	MinSubscriptionCount    = 3
	MinMonthlySpend         = 50.0
	MinShareOfSpendPercent  = 10.0
)

// ruleOutcome is one rule evaluation: the verdict plus the criterion
// strings and evidence that justify it either way.
type ruleOutcome struct {
	matched  bool
	criteria []string
	evidence map[string]any
}

type rule struct {
	persona  domain.PersonaType
	evaluate func(domain.DetectedSignals) ruleOutcome
}

// orderedRules is the priority order made explicit. Steady is not a rule;
// it is synthesized in Assign when nothing else matched.
var orderedRules = []rule{
	{domain.PersonaOverdraftVulnerable, evalOverdraftVulnerable},
	{domain.PersonaHighUtilization, evalHighUtilization},
	{domain.PersonaVariableIncomeBudgeter, evalVariableIncomeBudgeter},
	{domain.PersonaSubscriptionHeavy, evalSubscriptionHeavy},
	{domain.PersonaSavingsBuilder, evalSavingsBuilder},
	{domain.PersonaLowUse, evalLowUse},
}

const steadyReasoning = "No elevated risk or notable behavioral pattern detected; finances look steady."

// Assign classifies one signal bundle. Pure and deterministic: the same
// bundle always produces a structurally equal result.
func Assign(sig domain.DetectedSignals) domain.PersonaAssignmentResult {
	assignments := []domain.PersonaAssignment{}
	nodes := make([]domain.DecisionNode, 0, len(orderedRules)+1)

	for _, r := range orderedRules {
		outcome := r.evaluate(sig)
		nodes = append(nodes, domain.DecisionNode{
			Persona:  r.persona,
			Matched:  outcome.matched,
			Criteria: outcome.criteria,
			Evidence: outcome.evidence,
		})
		if outcome.matched {
			assignments = append(assignments, domain.PersonaAssignment{
				Persona:   r.persona,
				Reasoning: outcome.criteria,
				Evidence:  outcome.evidence,
			})
		}
	}

	if len(assignments) == 0 {
		assignments = append(assignments, domain.PersonaAssignment{
			Persona:   domain.PersonaSteady,
			Reasoning: []string{steadyReasoning},
			Evidence:  map[string]any{},
		})
		nodes = append(nodes, domain.DecisionNode{
			Persona:  domain.PersonaSteady,
			Matched:  true,
			Criteria: []string{steadyReasoning},
			Evidence: map[string]any{},
		})
	}

	primary := assignments[0].Persona
	detected := sig.KindsDetected()
	return domain.PersonaAssignmentResult{
		Personas: assignments,
		Tree: domain.DecisionTree{
			SignalsDetected: detected,
			Nodes:           nodes,
			PrimaryPersona:  primary,
			Reasoning: fmt.Sprintf("Assigned %s as primary persona (%d of %d rules matched, %d signal kinds detected).",
				primary, len(assignments), len(orderedRules), len(detected)),
		},
	}
}

// evalOverdraftVulnerable re-derives the overdraft condition from the
// incident counts rather than copying the signal's Detected flag.
func evalOverdraftVulnerable(sig domain.DetectedSignals) ruleOutcome {
	ev := sig.Overdraft.Days180.Evidence
	matched := ev.Count30d >= signals.OverdraftMinIncidents30d || ev.Count180d >= signals.OverdraftMinIncidents180d

	criteria := []string{fmt.Sprintf("no recent overdraft activity (%d incidents in 30 days, %d in 180 days)", ev.Count30d, ev.Count180d)}
	if matched {
		criteria = []string{fmt.Sprintf("%d overdraft incident(s) in the last 30 days and %d in the last 180 days", ev.Count30d, ev.Count180d)}
		if ev.TotalFees > 0 {
			criteria = append(criteria, fmt.Sprintf("$%.2f in overdraft/NSF fees over 180 days", ev.TotalFees))
		}
	}
	return ruleOutcome{
		matched:  matched,
		criteria: criteria,
		evidence: map[string]any{
			"incident_count_30d":  ev.Count30d,
			"incident_count_180d": ev.Count180d,
			"total_fees":          ev.TotalFees,
		},
	}
}

// evalHighUtilization re-walks the 30-day per-account list instead of
// trusting the aggregate flag.
func evalHighUtilization(sig domain.DetectedSignals) ruleOutcome {
	ev := sig.Credit.Days30.Evidence
	criteria := []string{}
	for _, acct := range ev.Accounts {
		switch {
		case acct.Bucket.IsHigh():
			criteria = append(criteria, fmt.Sprintf("card %s at %.0f%% utilization", acct.AccountID, acct.UtilizationPercent))
		case acct.IsOverdue:
			criteria = append(criteria, fmt.Sprintf("card %s has an overdue payment", acct.AccountID))
		case acct.MinimumPaymentOnly:
			criteria = append(criteria, fmt.Sprintf("card %s is only receiving minimum payments", acct.AccountID))
		case acct.HasInterestCharges:
			criteria = append(criteria, fmt.Sprintf("card %s is accruing interest", acct.AccountID))
		}
	}
	matched := len(criteria) > 0
	if !matched {
		criteria = []string{"no credit account shows high utilization, interest, minimum-payment-only behavior or overdue status"}
	}
	return ruleOutcome{
		matched:  matched,
		criteria: criteria,
		evidence: map[string]any{
			"credit_account_count": len(ev.Accounts),
			"overall_utilization":  ev.OverallUtilizationPercent,
			"overall_bucket":       string(ev.OverallBucket),
		},
	}
}

// evalVariableIncomeBudgeter is strictly tighter than the income
// signal's own detection: the pay gap must be long AND the cash-flow
// buffer thin.
func evalVariableIncomeBudgeter(sig domain.DetectedSignals) ruleOutcome {
	ev := sig.Income.Days180.Evidence
	matched := ev.MedianPayGapDays > signals.IrregularPayGapDays && ev.CashFlowBuffer < MinCashFlowBufferMonths

	criteria := []string{fmt.Sprintf("pay cadence (%s, median gap %.0f days) and cash-flow buffer (%.1f months) do not both indicate strain", ev.Frequency, ev.MedianPayGapDays, ev.CashFlowBuffer)}
	if matched {
		criteria = []string{
			fmt.Sprintf("median gap between income deposits is %.0f days", ev.MedianPayGapDays),
			fmt.Sprintf("checking balance covers only %.1f months of estimated expenses", ev.CashFlowBuffer),
		}
	}
	return ruleOutcome{
		matched:  matched,
		criteria: criteria,
		evidence: map[string]any{
			"median_pay_gap_days": ev.MedianPayGapDays,
			"frequency":           string(ev.Frequency),
			"cash_flow_buffer":    ev.CashFlowBuffer,
		},
	}
}

func evalSubscriptionHeavy(sig domain.DetectedSignals) ruleOutcome {
	ev := sig.Subscriptions.Days180.Evidence
	count := len(ev.Subscriptions)
	matched := count >= MinSubscriptionCount &&
		(ev.TotalMonthlySpend >= MinMonthlySpend || ev.ShareOfSpendPercent >= MinShareOfSpendPercent)

	criteria := []string{fmt.Sprintf("%d recurring subscription(s) found, below the load threshold", count)}
	if matched {
		criteria = []string{
			fmt.Sprintf("%d active subscriptions costing $%.2f/month", count, ev.MonthlySubscriptionCost),
			fmt.Sprintf("subscriptions account for %.1f%% of spending", ev.ShareOfSpendPercent),
		}
	}
	return ruleOutcome{
		matched:  matched,
		criteria: criteria,
		evidence: map[string]any{
			"subscription_count":        count,
			"monthly_subscription_cost": ev.MonthlySubscriptionCost,
			"total_monthly_spend":       ev.TotalMonthlySpend,
			"share_of_spend_percent":    ev.ShareOfSpendPercent,
		},
	}
}

// evalSavingsBuilder requires real savings momentum and, when credit
// accounts exist, overall utilization in the under-30 bucket. No credit
// at all satisfies the utilization condition.
func evalSavingsBuilder(sig domain.DetectedSignals) ruleOutcome {
	ev := sig.Savings.Days180.Evidence
	growing := false
	for _, acct := range ev.Accounts {
		if acct.GrowthRatePercent >= signals.GrowthRateThresholdPercent || acct.NetInflow >= signals.MonthlyInflowThreshold {
			growing = true
			break
		}
	}
	credit := sig.Credit.Days180.Evidence
	utilizationOK := len(credit.Accounts) == 0 || credit.OverallBucket == domain.UtilizationUnder30
	matched := growing && utilizationOK

	criteria := []string{"savings are not growing consistently, or credit utilization is elevated"}
	if matched {
		criteria = []string{fmt.Sprintf("savings balance of $%.2f growing at $%.2f/month", ev.TotalBalance, ev.MonthlyNetInflow)}
		if len(credit.Accounts) > 0 {
			criteria = append(criteria, fmt.Sprintf("overall credit utilization is low (%.0f%%)", credit.OverallUtilizationPercent))
		}
	}
	return ruleOutcome{
		matched:  matched,
		criteria: criteria,
		evidence: map[string]any{
			"total_savings_balance": ev.TotalBalance,
			"monthly_net_inflow":    ev.MonthlyNetInflow,
			"overall_utilization":   credit.OverallUtilizationPercent,
			"credit_account_count":  len(credit.Accounts),
		},
	}
}

// evalLowUse mirrors the banking-activity detector's own condition.
func evalLowUse(sig domain.DetectedSignals) ruleOutcome {
	ev := sig.Activity.Days180.Evidence
	matched := sig.Activity.Days180.Detected &&
		ev.OutboundCount180d < signals.LowUseMaxOutbound180d &&
		ev.OutboundCount30d < signals.LowUseMaxOutbound30d &&
		ev.UniqueMerchants < signals.LowUseMaxUniqueMerchants

	criteria := []string{fmt.Sprintf("account activity is not low on every axis (%d payments in 180 days, %d in 30 days, %d merchants)", ev.OutboundCount180d, ev.OutboundCount30d, ev.UniqueMerchants)}
	if matched {
		criteria = []string{fmt.Sprintf("only %d outbound payments in 180 days across %d merchants", ev.OutboundCount180d, ev.UniqueMerchants)}
	}
	return ruleOutcome{
		matched:  matched,
		criteria: criteria,
		evidence: map[string]any{
			"outbound_count_30d":  ev.OutboundCount30d,
			"outbound_count_180d": ev.OutboundCount180d,
			"unique_merchants":    ev.UniqueMerchants,
		},
	}
}
