// Package normalize cleans raw name mentions before roster matching:
// leading-article stripping, blocklist filtering, and alias substitution
// for recurring nicknames and mis-transcriptions.
package normalize

import (
	"regexp"
	"sort"
	"strings"

	"sentimizer/internal/models"
)

// Tables holds the alias and blocklist resources. Both are loaded once at
// process start and are read-only afterwards.
type Tables struct {
	// Aliases maps a lower-cased nickname or mis-transcription to the
	// canonical person name. No canonical value may itself be a key, so
	// substitution is idempotent.
	Aliases map[string]string `yaml:"aliases"`

	// Blocklist lists whole names to drop entirely, e.g. the show's hosts.
	Blocklist []string `yaml:"blocklist"`
}

var articles = []string{"a ", "an ", "the "}

// Normalizer applies the alias and blocklist tables. Safe for concurrent
// use once constructed.
type Normalizer struct {
	aliases      map[string]string
	blocklist    map[string]struct{}
	aliasPattern *regexp.Regexp
}

// New builds a Normalizer from the given tables. Alias keys are matched
// case-insensitively as whole words; longer keys take precedence so that
// "tj hawinson" wins over "hawinson".
func New(tables Tables) *Normalizer {
	aliases := make(map[string]string, len(tables.Aliases))
	keys := make([]string, 0, len(tables.Aliases))
	for k, v := range tables.Aliases {
		lower := strings.ToLower(k)
		aliases[lower] = v
		keys = append(keys, lower)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	var pattern *regexp.Regexp
	if len(keys) > 0 {
		quoted := make([]string, len(keys))
		for i, k := range keys {
			quoted[i] = regexp.QuoteMeta(k)
		}
		pattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	}

	blocklist := make(map[string]struct{}, len(tables.Blocklist))
	for _, name := range tables.Blocklist {
		blocklist[strings.ToLower(name)] = struct{}{}
	}

	return &Normalizer{
		aliases:      aliases,
		blocklist:    blocklist,
		aliasPattern: pattern,
	}
}

// Mention normalizes a raw mention. The returned bool is false when the
// mention is blocklisted and should be dropped.
func (n *Normalizer) Mention(m models.Mention) (models.NormalizedMention, bool) {
	name, ok := n.Name(m.RawName)
	if !ok {
		return models.NormalizedMention{}, false
	}
	return models.NormalizedMention{
		Name:          name,
		SentenceIndex: m.SentenceIndex,
		SentenceText:  n.Sentence(strings.TrimSpace(m.SentenceText)),
	}, true
}

// Name strips a single leading article, rejects blocklisted names, and
// resolves an exact alias. The bool is false for blocklisted names.
func (n *Normalizer) Name(raw string) (string, bool) {
	name := stripArticle(strings.TrimSpace(raw))
	lower := strings.ToLower(name)
	if _, blocked := n.blocklist[lower]; blocked {
		return "", false
	}
	if canonical, ok := n.aliases[lower]; ok {
		return canonical, true
	}
	return name, true
}

// Sentence replaces every whole-word, case-insensitive alias occurrence
// in the sentence with its canonical value. Pure transform; the input
// string is never mutated.
func (n *Normalizer) Sentence(sentence string) string {
	if n.aliasPattern == nil {
		return sentence
	}
	return n.aliasPattern.ReplaceAllStringFunc(sentence, func(match string) string {
		if canonical, ok := n.aliases[strings.ToLower(match)]; ok {
			return canonical
		}
		return match
	})
}

// stripArticle removes one leading indefinite/definite article token,
// e.g. "a Jackson Dart" -> "Jackson Dart".
func stripArticle(name string) string {
	lower := strings.ToLower(name)
	for _, article := range articles {
		if strings.HasPrefix(lower, article) {
			return name[len(article):]
		}
	}
	return name
}
