package salary

import (
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

// Cluster is a group of credit transactions whose amounts track a common
// recurring value. Mean is a streaming mean, updated on every insertion.
type Cluster struct {
	ID    int
	Mean  decimal.Decimal
	Total decimal.Decimal
	Size  int
}

// ClusterCredits groups the credit transactions by amount similarity.
//
// The algorithm is greedy, single-pass and order-sensitive on purpose: each
// amount is assigned to the FIRST existing cluster (in creation order) whose
// current running mean it deviates from by at most the relative tolerance,
// not to the closest one, and the cluster's mean is updated immediately.
// Downstream scoring depends on this exact first-fit behavior; a best-fit or
// centroid-stable variant produces different cluster IDs for real documents.
//
// The returned slice maps each input transaction to its cluster ID.
func ClusterCredits(credits []statement.Transaction, tolerance decimal.Decimal) ([]Cluster, []int) {
	clusters := make([]Cluster, 0)
	assignments := make([]int, len(credits))

	for i, tx := range credits {
		assigned := -1
		for c := range clusters {
			mean := clusters[c].Mean
			if mean.IsZero() {
				continue
			}
			deviation := tx.Amount.Sub(mean).Abs().Div(mean)
			if deviation.LessThanOrEqual(tolerance) {
				assigned = c
				break
			}
		}

		if assigned == -1 {
			clusters = append(clusters, Cluster{
				ID:    len(clusters),
				Mean:  tx.Amount,
				Total: tx.Amount,
				Size:  1,
			})
			assignments[i] = len(clusters) - 1
			continue
		}

		clusters[assigned].Total = clusters[assigned].Total.Add(tx.Amount)
		clusters[assigned].Size++
		clusters[assigned].Mean = clusters[assigned].Total.DivRound(decimal.NewFromInt(int64(clusters[assigned].Size)), 8)
		assignments[i] = assigned
	}

	return clusters, assignments
}
