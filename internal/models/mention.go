// Package models defines the data structures shared across the analysis pipeline.
package models

// Mention is a single person-entity span detected in the transcript,
// exactly as the tagger produced it.
type Mention struct {
	RawName       string `json:"raw_name"`
	SentenceIndex int    `json:"sentence_index"`
	SentenceText  string `json:"sentence"`
}

// NormalizedMention is a Mention after article stripping, blocklist
// filtering, and alias substitution in both the name and the sentence.
type NormalizedMention struct {
	Name          string `json:"name"`
	SentenceIndex int    `json:"sentence_index"`
	SentenceText  string `json:"sentence"`
}

// RosterEntry is one athlete in the canonical roster. The roster is
// immutable after load; Name is unique.
type RosterEntry struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Team string `json:"team"`
}
