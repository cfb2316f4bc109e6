/**
 * @description
 * Overdraft detector. Incidents come from two sources: checking accounts
 * currently below zero (dated as of the evaluation instant, because the
 * balance is a snapshot, not history) and fee transactions whose
 * description matches an overdraft/NSF pattern inside the 180-day
 * horizon.
 */
package signals

import (
	"sort"
	"strings"
	"time"

	"github.com/transfa/insights-service/internal/domain"
)

// Overdraft detection thresholds.
const (
	OverdraftMinIncidents30d  = 1
	OverdraftMinIncidents180d = 2
)

// feePatterns are matched case-insensitively as substrings of the
// transaction description.
var feePatterns = []string{"OVERDRAFT", "NSF", "INSUFFICIENT FUNDS"}

// DetectOverdraft evaluates overdraft risk over one window.
func DetectOverdraft(accounts []domain.Account, txs []domain.Transaction, window domain.TimeWindow, asOf time.Time) domain.Signal[domain.OverdraftEvidence] {
	today := domain.DateOf(asOf)
	incidents := []domain.OverdraftIncident{}

	for _, acct := range accounts {
		if !acct.IsChecking() {
			continue
		}
		if acct.CurrentBalance < 0 || acct.AvailableBalance < 0 {
			incidents = append(incidents, domain.OverdraftIncident{
				AccountID: acct.ID,
				Date:      today,
				Type:      domain.IncidentNegativeBalance,
				Amount:    acct.CurrentBalance,
			})
		}
	}

	totalFees := 0.0
	for _, tx := range TransactionsInWindow(txs, domain.Window180d.Days(), asOf) {
		if !matchesFeePattern(tx.Description) {
			continue
		}
		incidents = append(incidents, domain.OverdraftIncident{
			AccountID:   tx.AccountID,
			Date:        tx.Date,
			Type:        domain.IncidentOverdraftFee,
			Amount:      tx.Amount,
			Description: tx.Description,
		})
		totalFees += tx.Amount
	}

	sort.SliceStable(incidents, func(i, j int) bool {
		return incidents[i].Date.Before(incidents[j].Date.Time)
	})

	count30 := countIncidentsWithin(incidents, domain.Window30d.Days(), asOf)
	count180 := countIncidentsWithin(incidents, domain.Window180d.Days(), asOf)

	return domain.Signal[domain.OverdraftEvidence]{
		Detected: count30 >= OverdraftMinIncidents30d || count180 >= OverdraftMinIncidents180d,
		Window:   window,
		Evidence: domain.OverdraftEvidence{
			Incidents: incidents,
			Count30d:  count30,
			Count180d: count180,
			TotalFees: totalFees,
		},
	}
}

func matchesFeePattern(description string) bool {
	upper := strings.ToUpper(description)
	for _, p := range feePatterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

func countIncidentsWithin(incidents []domain.OverdraftIncident, days int, asOf time.Time) int {
	start := domain.DateOf(asOf).AddDate(0, 0, -days)
	count := 0
	for _, inc := range incidents {
		if !inc.Date.Before(start) && !inc.Date.After(domain.DateOf(asOf).Time) {
			count++
		}
	}
	return count
}
