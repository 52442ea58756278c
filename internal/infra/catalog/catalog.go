// Package catalog is the built-in registry of compute missions this
// node can work on. The catalog is static for now; a networked
// mission feed would replace it without changing the consumers.
package catalog

import "github.com/dig-network/digd/internal/domain"

// Missions is the built-in mission list, highest bounty first.
var Missions = []domain.Mission{
	{
		ID:         "med-pancreas-001",
		Title:      "Pancreatic Cancer Detection",
		BountyDIG:  500.0,
		DatasetGB:  4.2,
		ETAMinutes: 12,
		Priority:   100,
		Domain:     "medical",
	},
	{
		ID:         "space-exoplanet-004",
		Title:      "Exoplanet Atmosphere Analysis",
		BountyDIG:  120.0,
		DatasetGB:  2.1,
		ETAMinutes: 7,
		Priority:   55,
		Domain:     "space",
	},
	{
		ID:         "render-cyberpunk-2099",
		Title:      "Render Cyberpunk 2099 Frame",
		BountyDIG:  50.0,
		DatasetGB:  1.4,
		ETAMinutes: 4,
		Priority:   20,
		Domain:     "render",
	},
}

// ByID looks a mission up by its identifier.
func ByID(id string) (domain.Mission, bool) {
	for _, m := range Missions {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Mission{}, false
}

// Default returns the highest-priority mission. The daemon boots with
// it as the active mission.
func Default() domain.Mission {
	best := Missions[0]
	for _, m := range Missions[1:] {
		if m.Priority > best.Priority {
			best = m
		}
	}
	return best
}
