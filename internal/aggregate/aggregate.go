// Package aggregate groups per-mention match results by resolved
// identity, keeping a per-occurrence audit trail and a deduplicated set
// of sentence positions.
package aggregate

import (
	"sort"

	"sentimizer/internal/models"
)

// Group folds match results into per-player aggregates keyed by canonical
// name. Occurrences keep input order; sentence indices deduplicate.
// No-match results form their own groups keyed by their original text.
// The resulting index sets are order-invariant over permutations of the
// input; only the occurrence lists are order-sensitive.
func Group(results []models.MatchResult) map[string]*models.PlayerAggregate {
	groups := make(map[string]*models.PlayerAggregate)

	for _, result := range results {
		group, ok := groups[result.CanonicalName]
		if !ok {
			group = &models.PlayerAggregate{CanonicalName: result.CanonicalName}
			groups[result.CanonicalName] = group
		}
		group.Occurrences = append(group.Occurrences, result)
		group.SentenceIndices.Add(result.SentenceIndex)
	}

	return groups
}

// SortedNames returns the group keys in lexicographic order, for
// deterministic iteration and display.
func SortedNames(groups map[string]*models.PlayerAggregate) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
