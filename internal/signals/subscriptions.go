/**
 * @description
 * Subscription detector. Two passes merged by normalized merchant name:
 * trusted external recurring-stream records first, then self-detected
 * cadence analysis over grouped outflow transactions. A merchant is
 * never counted twice.
 */
package signals

import (
	"sort"
	"strings"
	"time"

	"github.com/transfa/insights-service/internal/domain"
)

// Subscription policy constants.
const (
	MinSubscriptionOccurrences = 3
	AmountConsistencyTolerance = 0.15 // relative deviation from the median charge
	MinConsistentAmounts       = 3
)

// DetectSubscriptions evaluates recurring-charge load over one window.
func DetectSubscriptions(txs []domain.Transaction, streams []domain.RecurringStream, window domain.TimeWindow, asOf time.Time) domain.Signal[domain.SubscriptionEvidence] {
	windowTxs := TransactionsInWindow(txs, window.Days(), asOf)

	found := []domain.RecurringCharge{}
	seen := map[string]bool{}

	// Pass 1: trust active external streams with a usable cadence and at
	// least one transaction in the window.
	for _, stream := range streams {
		merchant := strings.ToLower(strings.TrimSpace(stream.MerchantName))
		if merchant == "" || seen[merchant] {
			continue
		}
		if !strings.EqualFold(stream.Status, "active") {
			continue
		}
		cadence, ok := mapStreamFrequency(stream.Frequency)
		if !ok {
			continue
		}
		occurrences, lastCharge := merchantActivity(windowTxs, merchant)
		if occurrences == 0 {
			continue
		}
		seen[merchant] = true
		found = append(found, domain.RecurringCharge{
			Merchant:    merchant,
			Amount:      stream.LastAmount,
			Cadence:     cadence,
			LastCharge:  lastCharge,
			Occurrences: occurrences,
			Source:      domain.SourceStream,
		})
	}

	// Pass 2: self-detect from grouped outflow cadence.
	groups := map[string][]domain.Transaction{}
	order := []string{}
	for _, tx := range windowTxs {
		if tx.Amount <= 0 {
			continue
		}
		merchant := normalizeMerchant(tx)
		if merchant == "" {
			continue
		}
		if _, ok := groups[merchant]; !ok {
			order = append(order, merchant)
		}
		groups[merchant] = append(groups[merchant], tx)
	}
	sort.Strings(order)
	for _, merchant := range order {
		if seen[merchant] {
			continue
		}
		if charge, ok := detectRecurringCharge(merchant, groups[merchant]); ok {
			seen[merchant] = true
			found = append(found, charge)
		}
	}

	totalSpend := 0.0
	for _, tx := range windowTxs {
		if tx.Amount > 0 {
			totalSpend += tx.Amount
		}
	}
	monthlyCost := 0.0
	for _, charge := range found {
		monthlyCost += charge.Amount * charge.Cadence.MonthlyFactor()
	}
	share := 0.0
	if totalSpend > 0 {
		share = monthlyCost / totalSpend * 100
	}

	return domain.Signal[domain.SubscriptionEvidence]{
		Detected: len(found) > 0,
		Window:   window,
		Evidence: domain.SubscriptionEvidence{
			Subscriptions:           found,
			TotalMonthlySpend:       totalSpend,
			MonthlySubscriptionCost: monthlyCost,
			ShareOfSpendPercent:     share,
		},
	}
}

// mapStreamFrequency maps an external stream frequency onto a cadence.
// Annual and unknown streams are excluded.
func mapStreamFrequency(frequency string) (domain.Cadence, bool) {
	switch strings.ToUpper(strings.TrimSpace(frequency)) {
	case "WEEKLY":
		return domain.CadenceWeekly, true
	case "BIWEEKLY":
		return domain.CadenceBiweekly, true
	case "MONTHLY":
		return domain.CadenceMonthly, true
	}
	return "", false
}

func merchantActivity(windowTxs []domain.Transaction, merchant string) (int, domain.Date) {
	count := 0
	var last domain.Date
	for _, tx := range windowTxs {
		if normalizeMerchant(tx) != merchant {
			continue
		}
		count++
		if tx.Date.After(last.Time) {
			last = tx.Date
		}
	}
	return count, last
}

// detectRecurringCharge decides whether one merchant's charges form a
// subscription: at least three occurrences, a median gap matching a
// cadence band and at least three amounts consistent with the median.
func detectRecurringCharge(merchant string, txs []domain.Transaction) (domain.RecurringCharge, bool) {
	if len(txs) < MinSubscriptionOccurrences {
		return domain.RecurringCharge{}, false
	}

	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})

	dates := make([]domain.Date, len(sorted))
	amounts := make([]float64, len(sorted))
	for i, tx := range sorted {
		dates[i] = tx.Date
		amounts[i] = tx.Amount
	}

	cadence, ok := classifyCadence(Median(dayGaps(dates)))
	if !ok {
		return domain.RecurringCharge{}, false
	}

	medianAmount := Median(amounts)
	if medianAmount <= 0 {
		return domain.RecurringCharge{}, false
	}
	consistent := 0
	for _, amt := range amounts {
		deviation := (amt - medianAmount) / medianAmount
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation <= AmountConsistencyTolerance {
			consistent++
		}
	}
	if consistent < MinConsistentAmounts {
		return domain.RecurringCharge{}, false
	}

	return domain.RecurringCharge{
		Merchant:    merchant,
		Amount:      medianAmount,
		Cadence:     cadence,
		LastCharge:  dates[len(dates)-1],
		Occurrences: len(sorted),
		Source:      domain.SourceDetected,
	}, true
}
