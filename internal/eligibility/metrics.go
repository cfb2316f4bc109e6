/**
 * @description
 * Eligibility calculator: projects the 180-day signal windows down to
 * the flat metrics record the offer matcher consumes. The interest and
 * expense figures are acknowledged approximations, not accounting.
 */
package eligibility

import (
	"github.com/transfa/insights-service/internal/domain"
)

// Approximation constants.
const (
	FlatInterestPerAccount = 50.0 // per interest-bearing account, a placeholder rather than a real interest calculation
	ExpenseIncomeShare     = 0.7  // expenses assumed to be at least 70% of income
)

// Monthly multipliers per pay frequency.
const (
	WeeklyPerMonth   = 4.33
	BiweeklyPerMonth = 2.17
)

// CalculateMetrics reduces the signal bundle to scalar eligibility
// metrics. The account list is only consulted for the has-account
// flags. Pure and total; degenerate bundles yield zero values.
func CalculateMetrics(sig domain.DetectedSignals, accounts []domain.Account) domain.EligibilityMetrics {
	credit := sig.Credit.Days180.Evidence
	savings := sig.Savings.Days180.Evidence
	income := sig.Income.Days180.Evidence
	subs := sig.Subscriptions.Days180.Evidence

	maxUtil, totalBalance, totalLimit := 0.0, 0.0, 0.0
	utilizations := make([]float64, 0, len(credit.Accounts))
	interestBearing := 0
	for _, acct := range credit.Accounts {
		utilizations = append(utilizations, acct.UtilizationPercent)
		if acct.UtilizationPercent > maxUtil {
			maxUtil = acct.UtilizationPercent
		}
		totalBalance += acct.Balance
		totalLimit += acct.Limit
		if acct.HasInterestCharges {
			interestBearing++
		}
	}
	avgUtil := 0.0
	if len(utilizations) > 0 {
		sum := 0.0
		for _, u := range utilizations {
			sum += u
		}
		avgUtil = sum / float64(len(utilizations))
	}

	monthlyIncome := estimateMonthlyIncome(income)
	stability := domain.IncomeStable
	if income.Frequency == domain.PayIrregular {
		stability = domain.IncomeIrregular
	}

	hasChecking := false
	for _, acct := range accounts {
		if acct.IsChecking() {
			hasChecking = true
			break
		}
	}

	return domain.EligibilityMetrics{
		MaxUtilizationPercent:     maxUtil,
		AverageUtilizationPercent: avgUtil,
		TotalCreditBalance:        totalBalance,
		TotalCreditLimit:          totalLimit,
		EstimatedInterestPaid:     float64(interestBearing) * FlatInterestPerAccount,
		TotalSavingsBalance:       savings.TotalBalance,
		EmergencyFundMonths:       savings.EmergencyFundMonths,
		EstimatedMonthlyIncome:    monthlyIncome,
		EstimatedMonthlyExpenses:  estimateMonthlyExpenses(subs, monthlyIncome),
		IncomeStability:           stability,
		HasCheckingAccount:        hasChecking,
		HasSavingsAccount:         len(savings.Accounts) > 0,
		HasCreditCard:             len(credit.Accounts) > 0,
	}
}

func estimateMonthlyIncome(income domain.IncomeEvidence) float64 {
	switch income.Frequency {
	case domain.PayWeekly:
		return income.AverageIncome * WeeklyPerMonth
	case domain.PayBiweekly:
		return income.AverageIncome * BiweeklyPerMonth
	default:
		return income.AverageIncome
	}
}

// estimateMonthlyExpenses takes the larger of the monthly subscription
// cost and a 70%-of-income heuristic. Computed independently of the
// estimators inside the income and savings detectors; the paths may
// diverge slightly and that is accepted.
func estimateMonthlyExpenses(subs domain.SubscriptionEvidence, monthlyIncome float64) float64 {
	byIncome := monthlyIncome * ExpenseIncomeShare
	if subs.MonthlySubscriptionCost > byIncome {
		return subs.MonthlySubscriptionCost
	}
	return byIncome
}
