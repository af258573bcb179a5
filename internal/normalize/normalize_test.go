package normalize

import (
	"testing"

	"sentimizer/internal/models"
)

func testNormalizer() *Normalizer {
	return New(Tables{
		Aliases: map[string]string{
			"kd":        "George Kittle",
			"george kd": "George Kittle",
			"flaco":     "Joe Flacco",
			"cmc":       "Christian McCaffrey",
		},
		Blocklist: []string{"rich dodson", "nerd herd"},
	})
}

func TestName(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name    string
		raw     string
		want    string
		dropped bool
	}{
		{"passes through unchanged", "Brock Bowers", "Brock Bowers", false},
		{"strips leading article a", "a Jackson Dart", "Jackson Dart", false},
		{"strips leading article the", "the Travis Kelce", "Travis Kelce", false},
		{"strips article case-insensitively", "The Travis Kelce", "Travis Kelce", false},
		{"only one article stripped", "the a Jackson Dart", "a Jackson Dart", false},
		{"alias resolved", "KD", "George Kittle", false},
		{"alias resolved after article strip", "the KD", "George Kittle", false},
		{"multi-word alias", "george kd", "George Kittle", false},
		{"blocklisted name dropped", "Rich Dodson", "", true},
		{"blocklist is whole-string", "Rich Dodson Jr", "Rich Dodson Jr", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Name(tt.raw)
			if ok == tt.dropped {
				t.Fatalf("Name(%q) ok = %v, want dropped = %v", tt.raw, ok, tt.dropped)
			}
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSentence(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"single alias replaced",
			"I think KD had a great game.",
			"I think George Kittle had a great game.",
		},
		{
			"multiple distinct aliases replaced",
			"KD and Flaco connected twice, and CMC scored.",
			"George Kittle and Joe Flacco connected twice, and Christian McCaffrey scored.",
		},
		{
			"case-insensitive whole-word match",
			"flaco threw it to kd.",
			"Joe Flacco threw it to George Kittle.",
		},
		{
			"no partial-word replacement",
			"The workday was long.",
			"The workday was long.",
		},
		{
			"longest alias wins",
			"george kd looked sharp.",
			"George Kittle looked sharp.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Sentence(tt.in); got != tt.want {
				t.Errorf("Sentence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSentenceIdempotent(t *testing.T) {
	n := New(DefaultTables())

	inputs := []string{
		"KD and Flaco connected twice.",
		"George Kittle had a quiet day.",
		"Craft and Judy both scored.",
	}
	for _, in := range inputs {
		once := n.Sentence(in)
		twice := n.Sentence(once)
		if once != twice {
			t.Errorf("substitution not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestDefaultTablesCanonicalNotAliased(t *testing.T) {
	tables := DefaultTables()
	n := New(tables)
	for _, canonical := range tables.Aliases {
		if got := n.Sentence(canonical); got != canonical {
			t.Errorf("canonical name %q rewritten to %q", canonical, got)
		}
	}
}

func TestMention(t *testing.T) {
	n := testNormalizer()

	m, ok := n.Mention(models.Mention{
		RawName:       "KD",
		SentenceIndex: 3,
		SentenceText:  "  KD both had good games.  ",
	})
	if !ok {
		t.Fatal("mention unexpectedly dropped")
	}
	if m.Name != "George Kittle" {
		t.Errorf("Name = %q, want George Kittle", m.Name)
	}
	if m.SentenceIndex != 3 {
		t.Errorf("SentenceIndex = %d, want 3", m.SentenceIndex)
	}
	if m.SentenceText != "George Kittle both had good games." {
		t.Errorf("SentenceText = %q", m.SentenceText)
	}

	if _, ok := n.Mention(models.Mention{RawName: "Nerd Herd", SentenceIndex: 0}); ok {
		t.Error("blocklisted mention not dropped")
	}
}
