package catalog

import (
	"sort"

	"reelbase/models"
)

// GroupProviders partitions a movie's streaming links into flatrate, rent
// and buy buckets, each sorted by display priority ascending. A provider
// matched by two link rows of the same type collapses to one entry.
func GroupProviders(links []models.MovieProvider) models.GroupedProviders {
	grouped := models.GroupedProviders{
		Flatrate: []models.StreamingProvider{},
		Rent:     []models.StreamingProvider{},
		Buy:      []models.StreamingProvider{},
	}

	seen := make(map[string]map[int64]struct{}, 3)
	for _, link := range links {
		if seen[link.Type] == nil {
			seen[link.Type] = make(map[int64]struct{})
		}
		if _, dup := seen[link.Type][link.Provider.ID]; dup {
			continue
		}
		seen[link.Type][link.Provider.ID] = struct{}{}

		switch link.Type {
		case models.LinkTypeFlatrate:
			grouped.Flatrate = append(grouped.Flatrate, link.Provider)
		case models.LinkTypeRent:
			grouped.Rent = append(grouped.Rent, link.Provider)
		case models.LinkTypeBuy:
			grouped.Buy = append(grouped.Buy, link.Provider)
		}
	}

	byPriority(grouped.Flatrate)
	byPriority(grouped.Rent)
	byPriority(grouped.Buy)
	return grouped
}

// byPriority sorts providers by display priority ascending, keeping
// insertion order for equal priorities.
func byPriority(providers []models.StreamingProvider) {
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].DisplayPriority < providers[j].DisplayPriority
	})
}
