package handlers

import (
	"net/http"

	"github.com/alarmbridge/alarmbridge/internal/domain"
	"github.com/alarmbridge/alarmbridge/internal/httpserver/deps"
)

type ucrSummary struct {
	Account     string      `json:"account"`
	UCR         string      `json:"ucr,omitempty"`
	Cluster     string      `json:"cluster"`
	ClusterID   int64       `json:"cluster_id"`
	Tier        domain.Tier `json:"tier"`
	User        string      `json:"user"`
	Authorized  bool        `json:"authorized"`
	UCRCount    int         `json:"ucr_count"`
	AllClusters []string    `json:"all_clusters"`
}

// UCRs lists every configured account-context with its cluster identity and
// product tier.
func UCRs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries := make([]ucrSummary, 0, len(d.Order))
		for _, key := range d.Order {
			coord := d.Coordinators[key]
			acc := coord.Accessor()
			if acc == nil {
				continue
			}
			active := acc.ActiveUCR()
			activeKey := formatID(active)
			summaries = append(summaries, ucrSummary{
				Account:     coord.Name(),
				UCR:         coord.UCRID(),
				Cluster:     acc.ClusterNameFromUCR(activeKey),
				ClusterID:   acc.ClusterIDFromUCR(activeKey),
				Tier:        acc.ClusterVersion(),
				User:        acc.FullName(),
				Authorized:  acc.UsergroupAllowed(),
				UCRCount:    acc.UCRCount(),
				AllClusters: acc.AllClusterNames(),
			})
		}
		writeJSON(w, http.StatusOK, summaries)
	}
}
