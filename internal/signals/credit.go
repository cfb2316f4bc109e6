/**
 * @description
 * Credit-stress detector. Buckets per-account utilization at 30/50/80,
 * cross-references the matching liability for payment behavior and
 * aggregates an overall utilization across all credit accounts.
 */
package signals

import (
	"time"

	"github.com/transfa/insights-service/internal/domain"
)

// MinimumPaymentEpsilon is the approximate-equality band for the
// minimum-payment-only test: last payment within $1 of the minimum.
const MinimumPaymentEpsilon = 1.0

// DetectCredit evaluates credit-card stress over one window.
func DetectCredit(accounts []domain.Account, liabilities []domain.Liability, window domain.TimeWindow, asOf time.Time) domain.Signal[domain.CreditEvidence] {
	byAccount := make(map[string]domain.Liability, len(liabilities))
	for _, l := range liabilities {
		byAccount[l.AccountID] = l
	}

	statuses := []domain.CreditAccountStatus{}
	totalBalance, totalLimit := 0.0, 0.0
	for _, acct := range accounts {
		if acct.Type != domain.AccountCredit {
			continue
		}
		limit := 0.0
		if acct.CreditLimit != nil {
			limit = *acct.CreditLimit
		}
		status := domain.CreditAccountStatus{
			AccountID:          acct.ID,
			Balance:            acct.CurrentBalance,
			Limit:              limit,
			UtilizationPercent: utilizationPercent(acct.CurrentBalance, limit),
		}
		status.Bucket = bucketUtilization(status.UtilizationPercent)

		if liab, ok := byAccount[acct.ID]; ok {
			status.MinimumPaymentOnly = minimumPaymentOnly(liab)
			status.HasInterestCharges = len(liab.APRs) > 0 && liab.APRs[0].Percentage > 0
			status.IsOverdue = liab.IsOverdue
		}

		statuses = append(statuses, status)
		totalBalance += acct.CurrentBalance
		totalLimit += limit
	}

	overall := utilizationPercent(totalBalance, totalLimit)
	detected := false
	for _, s := range statuses {
		if s.Stressed() {
			detected = true
			break
		}
	}

	return domain.Signal[domain.CreditEvidence]{
		Detected: detected,
		Window:   window,
		Evidence: domain.CreditEvidence{
			Accounts:                  statuses,
			OverallUtilizationPercent: overall,
			OverallBucket:             bucketUtilization(overall),
		},
	}
}

func utilizationPercent(balance, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return balance / limit * 100
}

// Bucket boundaries are percentages.
const (
	UtilizationBound30 = 30.0
	UtilizationBound50 = 50.0
	UtilizationBound80 = 80.0
)

func bucketUtilization(percent float64) domain.UtilizationBucket {
	switch {
	case percent < UtilizationBound30:
		return domain.UtilizationUnder30
	case percent < UtilizationBound50:
		return domain.Utilization30to50
	case percent < UtilizationBound80:
		return domain.Utilization50to80
	default:
		return domain.UtilizationOver80
	}
}

// minimumPaymentOnly requires a known, positive minimum payment; a
// missing or zero minimum means "unknown" and never triggers.
func minimumPaymentOnly(l domain.Liability) bool {
	if l.MinimumPayment <= 0 {
		return false
	}
	diff := l.LastPaymentAmount - l.MinimumPayment
	if diff < 0 {
		diff = -diff
	}
	return diff <= MinimumPaymentEpsilon
}
