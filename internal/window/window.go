// Package window builds bounded, alias-normalized spans of transcript
// sentences around a mention, giving the classifier local evidence beyond
// a single sentence.
package window

import (
	"strings"

	"sentimizer/internal/normalize"
)

// DefaultRadius is the number of sentences taken on each side of the
// center.
const DefaultRadius = 2

// Builder constructs context windows. Pure and safe for concurrent use.
type Builder struct {
	norm   *normalize.Normalizer
	radius int
}

// NewBuilder creates a Builder. A radius < 1 falls back to DefaultRadius.
func NewBuilder(norm *normalize.Normalizer, radius int) *Builder {
	if radius < 1 {
		radius = DefaultRadius
	}
	return &Builder{norm: norm, radius: radius}
}

// Build returns the alias-normalized concatenation of the sentences
// around center: the preceding span [center-radius, center) and the
// following span [center, center+radius], each clamped independently at
// the document boundaries. Sentences are trimmed and joined by single
// spaces.
func (b *Builder) Build(center int, sentences []string) string {
	n := len(sentences)
	if n == 0 || center < 0 || center >= n {
		return ""
	}

	start := center - b.radius
	if start < 0 {
		start = 0
	}
	end := center + b.radius + 1
	if end > n {
		end = n
	}

	parts := make([]string, 0, end-start)
	for _, sentence := range sentences[start:end] {
		cleaned := strings.TrimSpace(b.norm.Sentence(strings.TrimSpace(sentence)))
		if cleaned != "" {
			parts = append(parts, cleaned)
		}
	}

	return strings.Join(parts, " ")
}
