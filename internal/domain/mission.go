package domain

// Mission is a background compute job offered to this node. The
// catalog is static; workers pick missions by priority.
type Mission struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	BountyDIG  float64 `json:"bounty_dig"`
	DatasetGB  float64 `json:"dataset_gb"`
	ETAMinutes int     `json:"eta_minutes"`
	Priority   int     `json:"priority"`
	Domain     string  `json:"domain"`
}
