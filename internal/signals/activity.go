/**
 * @description
 * Banking-activity detector. "Low use" only fires when every axis is
 * low at once: recent volume, long-horizon volume and merchant
 * diversity. High activity on any single axis disqualifies the signal.
 */
package signals

import (
	"time"

	"github.com/transfa/insights-service/internal/domain"
)

// Low-use bounds (all strict "under" comparisons).
const (
	LowUseMaxOutbound180d   = 10
	LowUseMaxOutbound30d    = 5
	LowUseMaxUniqueMerchants = 5
)

// DetectActivity evaluates account-usage intensity over one window. Both
// window counts are always computed because the predicate needs them
// together; merchant diversity is scoped to the evaluated window.
func DetectActivity(txs []domain.Transaction, window domain.TimeWindow, asOf time.Time) domain.Signal[domain.ActivityEvidence] {
	// No history at all is "no data", not "low use".
	if len(txs) == 0 {
		return domain.Signal[domain.ActivityEvidence]{Window: window}
	}

	count30 := countOutbound(TransactionsInWindow(txs, domain.Window30d.Days(), asOf))
	count180 := countOutbound(TransactionsInWindow(txs, domain.Window180d.Days(), asOf))

	merchants := map[string]struct{}{}
	for _, tx := range TransactionsInWindow(txs, window.Days(), asOf) {
		if tx.Amount <= 0 {
			continue
		}
		if merchant := normalizeMerchant(tx); merchant != "" {
			merchants[merchant] = struct{}{}
		}
	}

	evidence := domain.ActivityEvidence{
		OutboundCount30d:  count30,
		OutboundCount180d: count180,
		UniqueMerchants:   len(merchants),
	}
	detected := count180 < LowUseMaxOutbound180d &&
		count30 < LowUseMaxOutbound30d &&
		evidence.UniqueMerchants < LowUseMaxUniqueMerchants

	return domain.Signal[domain.ActivityEvidence]{
		Detected: detected,
		Window:   window,
		Evidence: evidence,
	}
}

func countOutbound(txs []domain.Transaction) int {
	count := 0
	for _, tx := range txs {
		if tx.Amount > 0 {
			count++
		}
	}
	return count
}
