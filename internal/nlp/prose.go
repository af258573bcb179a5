package nlp

import (
	"context"
	"strings"

	"github.com/jdkato/prose/v2"

	"sentimizer/internal/apperr"
)

// ProseTagger implements Tagger with the prose NLP library: one
// segmentation pass over the document, then per-sentence entity
// extraction. Documents are created per call, so the tagger itself holds
// no mutable state and is safe for concurrent use.
type ProseTagger struct{}

// Compile-time check that ProseTagger implements Tagger.
var _ Tagger = (*ProseTagger)(nil)

// NewProseTagger creates the prose-backed tagger.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag segments text into sentences and extracts PERSON entities from each.
func (t *ProseTagger) Tag(ctx context.Context, text string) ([]Sentence, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, apperr.Upstream(err, "segment transcript")
	}

	rawSentences := doc.Sentences()
	sentences := make([]Sentence, 0, len(rawSentences))
	for _, sent := range rawSentences {
		if err := ctx.Err(); err != nil {
			return nil, apperr.Upstream(err, "tag transcript")
		}

		trimmed := strings.TrimSpace(sent.Text)
		people, err := extractPeople(trimmed)
		if err != nil {
			return nil, apperr.Upstream(err, "tag entities")
		}
		sentences = append(sentences, Sentence{Text: trimmed, People: people})
	}

	return sentences, nil
}

// extractPeople runs entity extraction on one sentence and returns the
// PERSON-labeled spans in order of appearance.
func extractPeople(sentence string) ([]string, error) {
	if sentence == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(sentence, prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}

	var people []string
	for _, ent := range doc.Entities() {
		if ent.Label == "PERSON" {
			people = append(people, strings.TrimSpace(ent.Text))
		}
	}
	return people, nil
}
