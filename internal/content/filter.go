package content

import "mythworld/internal/models"

// FilterByAgeGroup returns the stories tagged with group, keeping their order.
// An unmatched group yields an empty, non-nil slice.
func FilterByAgeGroup(catalog []models.Story, group models.AgeGroup) []models.Story {
	out := make([]models.Story, 0, len(catalog))
	for _, s := range catalog {
		if s.AgeGroup == group {
			out = append(out, s)
		}
	}
	return out
}

// StoriesForAgeGroup filters the built-in catalog
func StoriesForAgeGroup(group models.AgeGroup) []models.Story {
	return FilterByAgeGroup(Stories(), group)
}
