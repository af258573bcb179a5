package models

// MatchStatus describes how a mention was resolved against the roster.
type MatchStatus string

const (
	// StatusExactMatch means exactly one roster candidate qualified.
	StatusExactMatch MatchStatus = "exact match"

	// StatusBestOfMultiple means several candidates qualified and the
	// highest-scoring one (ties broken lexicographically) was chosen.
	StatusBestOfMultiple MatchStatus = "best of multiple matches"

	// StatusNoMatch means no candidate met the score policy; the mention
	// keeps its own text as its identity.
	StatusNoMatch MatchStatus = "no match"
)

// MatchResult is the outcome of matching one normalized mention against
// the roster. It doubles as the per-occurrence audit record kept by the
// aggregator, which is why it carries both the rewritten and the original
// sentence text.
type MatchResult struct {
	TranscriptName   string      `json:"transcript_name"`
	PlayerID         string      `json:"player_id,omitempty"`
	CanonicalName    string      `json:"matched_name"`
	Score            int         `json:"score"`
	Status           MatchStatus `json:"status"`
	SentenceIndex    int         `json:"sentence_index"`
	SentenceText     string      `json:"sentence"`
	OriginalSentence string      `json:"original_sentence"`
}
