// Package nlp provides the sentence segmentation and entity tagging
// collaborator used to turn raw transcript text into person mentions.
package nlp

import "context"

// Sentence is one segmented transcript sentence with the person-entity
// spans detected inside it, in document order.
type Sentence struct {
	Text   string
	People []string
}

// Tagger segments transcript text into sentences and tags person
// entities. Implementations must be safe for concurrent use; the
// pipeline holds one process-wide instance.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]Sentence, error)
}
