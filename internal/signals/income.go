/**
 * @description
 * Income-regularity detector. Classifies deposit cadence from median
 * day gaps and derives a cash-flow buffer from checking balances versus
 * an expense estimate for the window.
 */
package signals

import (
	"sort"
	"time"

	"github.com/transfa/insights-service/internal/domain"
)

// Income policy constants.
const (
	IncomeCategory      = "INCOME"
	IrregularPayGapDays = 45.0 // median gap beyond this is an irregularity on its own
)

// DetectIncome evaluates income regularity over one window.
func DetectIncome(accounts []domain.Account, txs []domain.Transaction, window domain.TimeWindow, asOf time.Time) domain.Signal[domain.IncomeEvidence] {
	windowTxs := TransactionsInWindow(txs, window.Days(), asOf)

	deposits := []domain.Transaction{}
	for _, tx := range windowTxs {
		if tx.PrimaryCategory == IncomeCategory {
			deposits = append(deposits, tx)
		}
	}
	if len(deposits) == 0 {
		return domain.Signal[domain.IncomeEvidence]{
			Window:   window,
			Evidence: domain.IncomeEvidence{Frequency: domain.PayIrregular},
		}
	}

	sort.SliceStable(deposits, func(i, j int) bool {
		return deposits[i].Date.Before(deposits[j].Date.Time)
	})
	dates := make([]domain.Date, len(deposits))
	amounts := make([]float64, len(deposits))
	for i, d := range deposits {
		dates[i] = d.Date
		amt := d.Amount
		if amt < 0 {
			amt = -amt
		}
		amounts[i] = amt
	}

	medianGap := Median(dayGaps(dates))
	frequency := classifyPayFrequency(medianGap)

	checkingBalance := 0.0
	for _, acct := range accounts {
		if acct.IsChecking() {
			checkingBalance += acct.CurrentBalance
		}
	}
	monthlyExpense := estimateMonthlyExpense(windowTxs, window.Days())
	buffer := 0.0
	if monthlyExpense > 0 {
		buffer = checkingBalance / monthlyExpense
	}

	return domain.Signal[domain.IncomeEvidence]{
		Detected: medianGap > IrregularPayGapDays || frequency == domain.PayIrregular,
		Window:   window,
		Evidence: domain.IncomeEvidence{
			DepositCount:     len(deposits),
			MedianPayGapDays: medianGap,
			Frequency:        frequency,
			AverageIncome:    Average(amounts),
			CashFlowBuffer:   buffer,
		},
	}
}

func classifyPayFrequency(medianGap float64) domain.PayFrequency {
	cadence, ok := classifyCadence(medianGap)
	if !ok {
		return domain.PayIrregular
	}
	switch cadence {
	case domain.CadenceWeekly:
		return domain.PayWeekly
	case domain.CadenceBiweekly:
		return domain.PayBiweekly
	default:
		return domain.PayMonthly
	}
}

// estimateMonthlyExpense projects the window's outflow to a monthly
// figure. The savings detector and the eligibility calculator carry
// their own expense estimators on purpose.
func estimateMonthlyExpense(windowTxs []domain.Transaction, windowDays int) float64 {
	if windowDays <= 0 {
		return 0
	}
	outflow := 0.0
	for _, tx := range windowTxs {
		if tx.Amount > 0 {
			outflow += tx.Amount
		}
	}
	return outflow / float64(windowDays) * DaysPerMonthFactor
}
