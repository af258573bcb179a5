package models

// PlayerAggregate groups every occurrence of one resolved identity. The
// occurrence list preserves discovery order (duplicates allowed); the
// index set deduplicates sentence positions. Groups are never removed
// once created.
type PlayerAggregate struct {
	CanonicalName   string        `json:"matched_name"`
	Occurrences     []MatchResult `json:"occurrence_array"`
	SentenceIndices IndexSet      `json:"mentioned_sentence_indexes"`
}

// WindowScore holds the classifier's per-label entailment probabilities
// for a single context window, plus the argmax label.
type WindowScore struct {
	Text      string             `json:"text"`
	Scores    map[string]float64 `json:"scores"`
	BestLabel string             `json:"best_label"`
}

// ConsensusVerdict is the final per-player sentiment result: the
// element-wise mean of window-level entailment vectors, its argmax label,
// the per-window detail, and the representative status/original name
// taken from the group's first occurrence.
type ConsensusVerdict struct {
	CanonicalName  string             `json:"matched_name"`
	Consensus      map[string]float64 `json:"sentiment_consensus"`
	FinalLabel     string             `json:"final_label"`
	Windows        []WindowScore      `json:"detailed_sentiment"`
	Status         MatchStatus        `json:"status"`
	TranscriptName string             `json:"transcript_name"`
}
