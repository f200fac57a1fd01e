package salary

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement/normalize"
)

// ClosestPayer returns the payer string most similar to the employer hint,
// for the "why did the employer factor not fire" diagnostic in audit output.
// Returns "" when no payer ranks as a fuzzy match at all.
func ClosestPayer(employer string, payers []string) string {
	target := normalize.Fold(employer)
	if target == "" || len(payers) == 0 {
		return ""
	}

	best := ""
	bestDistance := -1
	for _, payer := range payers {
		folded := normalize.Fold(payer)
		if folded == "" {
			continue
		}
		rank := fuzzy.RankMatchNormalizedFold(target, folded)
		if rank < 0 {
			// Try the other containment direction; payers are often longer
			// or shorter renderings of the same company name.
			rank = fuzzy.RankMatchNormalizedFold(folded, target)
		}
		if rank < 0 {
			continue
		}
		if bestDistance == -1 || rank < bestDistance {
			bestDistance = rank
			best = payer
		}
	}
	return best
}
