/**
 * @description
 * Savings-growth detector. Reconstructs each savings-like account's
 * window-start balance from its net inflow (inflows are negative in the
 * amount convention, hence the sign flip) and derives growth rate and
 * emergency-fund coverage.
 */
package signals

import (
	"time"

	"github.com/transfa/insights-service/internal/domain"
)

// Savings policy constants.
const (
	GrowthRateThresholdPercent = 2.0
	MonthlyInflowThreshold     = 200.0
)

// DetectSavings evaluates savings growth over one window.
func DetectSavings(accounts []domain.Account, txs []domain.Transaction, window domain.TimeWindow, asOf time.Time) domain.Signal[domain.SavingsEvidence] {
	windowTxs := TransactionsInWindow(txs, window.Days(), asOf)

	activities := []domain.SavingsActivity{}
	totalBalance, totalInflow := 0.0, 0.0
	anyGrowing := false
	for _, acct := range accounts {
		if !acct.IsSavingsLike() {
			continue
		}
		netInflow := 0.0
		for _, tx := range windowTxs {
			if tx.AccountID == acct.ID {
				netInflow -= tx.Amount
			}
		}
		end := acct.CurrentBalance
		start := end - netInflow
		growth := 0.0
		if start > 0 {
			growth = (end - start) / start * 100
		}
		if growth >= GrowthRateThresholdPercent {
			anyGrowing = true
		}
		activities = append(activities, domain.SavingsActivity{
			AccountID:         acct.ID,
			StartBalance:      start,
			EndBalance:        end,
			NetInflow:         netInflow,
			GrowthRatePercent: growth,
		})
		totalBalance += end
		totalInflow += netInflow
	}

	monthlyInflow := 0.0
	if window.Days() > 0 {
		monthlyInflow = totalInflow / float64(window.Days()) * DaysPerMonthFactor
	}

	// Same estimator family as the income detector, computed locally on
	// purpose; the two paths are allowed to diverge.
	monthlyExpense := 0.0
	outflow := 0.0
	for _, tx := range windowTxs {
		if tx.Amount > 0 {
			outflow += tx.Amount
		}
	}
	if window.Days() > 0 {
		monthlyExpense = outflow / float64(window.Days()) * DaysPerMonthFactor
	}
	coverage := 0.0
	if monthlyExpense > 0 {
		coverage = totalBalance / monthlyExpense
	}

	return domain.Signal[domain.SavingsEvidence]{
		Detected: anyGrowing || monthlyInflow >= MonthlyInflowThreshold,
		Window:   window,
		Evidence: domain.SavingsEvidence{
			Accounts:            activities,
			TotalBalance:        totalBalance,
			MonthlyNetInflow:    monthlyInflow,
			EmergencyFundMonths: coverage,
		},
	}
}
