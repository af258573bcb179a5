package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sentimizer/internal/apperr"
	"sentimizer/internal/match"
	"sentimizer/internal/models"
	"sentimizer/internal/nlp"
	"sentimizer/internal/normalize"
	"sentimizer/internal/roster"
	"sentimizer/internal/sentiment"
	"sentimizer/internal/window"
)

type fakeTagger struct {
	sentences []nlp.Sentence
	err       error
}

func (f *fakeTagger) Tag(_ context.Context, _ string) ([]nlp.Sentence, error) {
	return f.sentences, f.err
}

// fakeClassifier leans positive: the positive hypothesis entails strongly,
// the others weakly.
type fakeClassifier struct{}

func (fakeClassifier) Name() string { return "fake" }

func (fakeClassifier) ScoreBatch(_ context.Context, pairs []sentiment.Pair) ([]sentiment.Scores, error) {
	scores := make([]sentiment.Scores, len(pairs))
	for i, pair := range pairs {
		entailment := 0.2
		if strings.Contains(pair.Hypothesis, "high level") {
			entailment = 0.8
		}
		scores[i] = sentiment.Scores{Entailment: entailment, Neutral: 1 - entailment}
	}
	return scores, nil
}

func testAnalyzer(tagger nlp.Tagger, artifacts *ArtifactWriter) *Analyzer {
	norm := normalize.New(normalize.DefaultTables())
	r := roster.New(map[string]models.RosterEntry{
		"Brock Bowers":  {ID: "4432665", Team: "LV"},
		"George Kittle": {ID: "3040151", Team: "SF"},
		"Travis Kelce":  {ID: "15847", Team: "KC"},
	})
	engine := sentiment.NewEngine(fakeClassifier{}, window.NewBuilder(norm, 2), 2, nil)
	return NewAnalyzer(tagger, norm, match.New(r), engine, nil, artifacts)
}

func TestAnalyze(t *testing.T) {
	tagger := &fakeTagger{sentences: []nlp.Sentence{
		{
			Text:   "Brock Bowers and KD both had good games.",
			People: []string{"Brock Bowers", "KD"},
		},
	}}
	analyzer := testAnalyzer(tagger, nil)

	verdicts, err := analyzer.Analyze(context.Background(), "Brock Bowers and KD both had good games.")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(verdicts) != 2 {
		t.Fatalf("verdicts = %d, want 2: %v", len(verdicts), verdicts)
	}
	for _, name := range []string{"Brock Bowers", "George Kittle"} {
		verdict, ok := verdicts[name]
		if !ok {
			t.Fatalf("missing verdict for %s", name)
		}
		if verdict.Status != models.StatusExactMatch {
			t.Errorf("%s status = %q, want exact match", name, verdict.Status)
		}
		if verdict.FinalLabel != sentiment.LabelPositive {
			t.Errorf("%s final label = %q, want positive", name, verdict.FinalLabel)
		}
		if len(verdict.Windows) != 1 {
			t.Errorf("%s windows = %d, want 1", name, len(verdict.Windows))
		}
	}
	// The alias resolves before matching, so the transcript name is the
	// canonical form, not the raw "KD".
	if got := verdicts["George Kittle"].TranscriptName; got != "George Kittle" {
		t.Errorf("transcript name = %q, want George Kittle", got)
	}
}

func TestAnalyzeEmptyTranscript(t *testing.T) {
	analyzer := testAnalyzer(&fakeTagger{}, nil)

	for _, text := range []string{"", "   \n\t "} {
		if _, err := analyzer.Analyze(context.Background(), text); !errors.Is(err, apperr.ErrInput) {
			t.Errorf("Analyze(%q) err = %v, want ErrInput", text, err)
		}
		if _, err := analyzer.Setup(context.Background(), text); !errors.Is(err, apperr.ErrInput) {
			t.Errorf("Setup(%q) err = %v, want ErrInput", text, err)
		}
	}
}

func TestAnalyzeNoMentions(t *testing.T) {
	// Every detected person is on the blocklist.
	tagger := &fakeTagger{sentences: []nlp.Sentence{
		{Text: "Rich Dodson opened the show.", People: []string{"Rich Dodson"}},
		{Text: "Nothing else happened.", People: nil},
	}}
	analyzer := testAnalyzer(tagger, nil)

	verdicts, err := analyzer.Analyze(context.Background(), "Rich Dodson opened the show. Nothing else happened.")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(verdicts) != 0 {
		t.Errorf("verdicts = %v, want empty", verdicts)
	}
}

func TestAnalyzeTaggerFailure(t *testing.T) {
	wantErr := errors.New("model not loaded")
	analyzer := testAnalyzer(&fakeTagger{err: wantErr}, nil)

	if _, err := analyzer.Analyze(context.Background(), "some text"); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestSetup(t *testing.T) {
	tagger := &fakeTagger{sentences: []nlp.Sentence{
		{Text: "Brock Bowers had a big day.", People: []string{"Brock Bowers"}},
		{Text: "Brock Bowers scored twice.", People: []string{"Brock Bowers"}},
	}}
	analyzer := testAnalyzer(tagger, nil)

	result, err := analyzer.Setup(context.Background(), "Brock Bowers had a big day. Brock Bowers scored twice.")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	if len(result.Sentences) != 2 {
		t.Errorf("sentences = %d, want 2", len(result.Sentences))
	}
	group, ok := result.Players["Brock Bowers"]
	if !ok {
		t.Fatalf("missing Brock Bowers group: %v", result.Players)
	}
	if len(group.Occurrences) != 2 {
		t.Errorf("occurrences = %d, want 2", len(group.Occurrences))
	}
	if got := group.SentenceIndices.Values(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("sentence indices = %v, want [0 1]", got)
	}
}

func TestArtifactWriter(t *testing.T) {
	dir := t.TempDir()
	writer := NewArtifactWriter(dir)

	writer.Write("run-1", "results.json", map[string]int{"mentions": 3})

	data, err := os.ReadFile(filepath.Join(dir, "run-1", "results.json"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !strings.Contains(string(data), `"mentions": 3`) {
		t.Errorf("artifact content = %s", data)
	}

	// Disabled and nil writers are no-ops.
	NewArtifactWriter("").Write("run-2", "x.json", 1)
	var nilWriter *ArtifactWriter
	nilWriter.Write("run-3", "x.json", 1)
}

func TestAnalyzeWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	tagger := &fakeTagger{sentences: []nlp.Sentence{
		{Text: "Travis Kelce was great.", People: []string{"Travis Kelce"}},
	}}
	analyzer := testAnalyzer(tagger, NewArtifactWriter(dir))

	if _, err := analyzer.Analyze(context.Background(), "Travis Kelce was great."); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	runs, err := os.ReadDir(dir)
	if err != nil || len(runs) != 1 {
		t.Fatalf("run dirs = %v, err = %v", runs, err)
	}
	for _, name := range []string{"identified_mentions.json", "player_sentiments.json"} {
		if _, err := os.Stat(filepath.Join(dir, runs[0].Name(), name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
}
