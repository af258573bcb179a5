// Package match resolves normalized name mentions against the canonical
// roster with token-set fuzzy scoring.
package match

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"sentimizer/internal/models"
	"sentimizer/internal/roster"
)

const (
	// perfectScore qualifies a candidate outright.
	perfectScore = 100

	// strongScore is the strict lower bound for fallback qualification.
	strongScore = 80

	// maxCandidates bounds how many top-scoring roster names are considered.
	maxCandidates = 5
)

// candidate pairs a roster name with its token-set score.
type candidate struct {
	name  string
	score int
}

// Matcher scores mentions against a fixed roster. Immutable after
// construction and safe for concurrent use.
type Matcher struct {
	roster *roster.Roster
}

// New creates a Matcher over the given roster.
func New(r *roster.Roster) *Matcher {
	return &Matcher{roster: r}
}

// Match resolves one normalized mention. Candidates rank by score
// descending with ties broken lexicographically on canonical name, so the
// best-of-multiple winner is deterministic. The result carries a derived
// sentence in which every literal occurrence of the mention text is
// replaced by the matched canonical name; the input is never mutated.
func (m *Matcher) Match(mention models.NormalizedMention) models.MatchResult {
	candidates := m.topCandidates(mention.Name)

	qualifying := filter(candidates, func(c candidate) bool { return c.score == perfectScore })
	if len(qualifying) == 0 {
		qualifying = filter(candidates, func(c candidate) bool { return c.score > strongScore })
	}

	result := models.MatchResult{
		TranscriptName:   mention.Name,
		SentenceIndex:    mention.SentenceIndex,
		SentenceText:     mention.SentenceText,
		OriginalSentence: mention.SentenceText,
	}

	if len(qualifying) == 0 {
		// The mention keeps its own text as its identity key.
		result.CanonicalName = mention.Name
		result.Score = 0
		result.Status = models.StatusNoMatch
		return result
	}

	winner := qualifying[0]
	result.CanonicalName = winner.name
	result.Score = winner.score
	if len(qualifying) == 1 {
		result.Status = models.StatusExactMatch
	} else {
		result.Status = models.StatusBestOfMultiple
	}

	if entry, ok := m.roster.Get(winner.name); ok {
		result.PlayerID = entry.ID
	}
	result.SentenceText = strings.ReplaceAll(mention.SentenceText, mention.Name, winner.name)

	return result
}

// topCandidates scores every roster name and returns the best
// maxCandidates in deterministic order (score desc, name asc).
func (m *Matcher) topCandidates(name string) []candidate {
	names := m.roster.Names()
	scored := make([]candidate, 0, len(names))
	for _, canonical := range names {
		scored = append(scored, candidate{
			name:  canonical,
			score: fuzzy.TokenSetRatio(name, canonical),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].name < scored[j].name
	})

	if len(scored) > maxCandidates {
		scored = scored[:maxCandidates]
	}
	return scored
}

func filter(candidates []candidate, keep func(candidate) bool) []candidate {
	var out []candidate
	for _, c := range candidates {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
