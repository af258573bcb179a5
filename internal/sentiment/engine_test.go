package sentiment

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"sentimizer/internal/models"
	"sentimizer/internal/normalize"
	"sentimizer/internal/window"
)

// fakeClassifier scores pairs from the hypothesis label: positive
// hypotheses entail strongly when the premise mentions "great", negative
// ones when it mentions "terrible", neutral otherwise.
type fakeClassifier struct {
	mu      sync.Mutex
	batches [][]Pair
	err     error
}

func (f *fakeClassifier) Name() string { return "fake" }

func (f *fakeClassifier) ScoreBatch(_ context.Context, pairs []Pair) ([]Scores, error) {
	f.mu.Lock()
	f.batches = append(f.batches, pairs)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	scores := make([]Scores, len(pairs))
	for i, pair := range pairs {
		var entailment float64
		switch {
		case strings.Contains(pair.Hypothesis, "high level") && strings.Contains(pair.Premise, "great"):
			entailment = 0.9
		case strings.Contains(pair.Hypothesis, "underperform") && strings.Contains(pair.Premise, "terrible"):
			entailment = 0.9
		case strings.Contains(pair.Hypothesis, "average"):
			entailment = 0.5
		default:
			entailment = 0.1
		}
		scores[i] = Scores{Contradiction: 0.05, Entailment: entailment, Neutral: 1 - entailment}
	}
	return scores, nil
}

func testEngine(classifier Classifier) *Engine {
	builder := window.NewBuilder(normalize.New(normalize.Tables{}), 2)
	return NewEngine(classifier, builder, 2, nil)
}

func group(name string, indices ...int) *models.PlayerAggregate {
	g := &models.PlayerAggregate{CanonicalName: name}
	for _, i := range indices {
		g.Occurrences = append(g.Occurrences, models.MatchResult{
			TranscriptName: name,
			CanonicalName:  name,
			Status:         models.StatusExactMatch,
			SentenceIndex:  i,
		})
		g.SentenceIndices.Add(i)
	}
	return g
}

func TestConsensusSingleWindow(t *testing.T) {
	fake := &fakeClassifier{}
	engine := testEngine(fake)

	sentences := []string{"George Kittle had a great game."}
	verdict, err := engine.Consensus(context.Background(), group("George Kittle", 0), sentences)
	if err != nil {
		t.Fatalf("Consensus: %v", err)
	}

	if verdict.FinalLabel != LabelPositive {
		t.Errorf("final label = %q, want positive", verdict.FinalLabel)
	}
	if len(verdict.Windows) != 1 {
		t.Fatalf("windows = %d, want 1", len(verdict.Windows))
	}
	if verdict.Windows[0].BestLabel != LabelPositive {
		t.Errorf("window best label = %q", verdict.Windows[0].BestLabel)
	}
	if got := verdict.Consensus[LabelPositive]; math.Abs(got-0.9) > 1e-9 {
		t.Errorf("positive consensus = %v, want 0.9", got)
	}
	if verdict.Status != models.StatusExactMatch || verdict.TranscriptName != "George Kittle" {
		t.Errorf("representative fields = %q/%q", verdict.Status, verdict.TranscriptName)
	}

	// One batched call: windows x labels pairs.
	if len(fake.batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(fake.batches))
	}
	if len(fake.batches[0]) != 3 {
		t.Errorf("pairs in batch = %d, want 3", len(fake.batches[0]))
	}
}

func TestConsensusAveragesAcrossWindows(t *testing.T) {
	fake := &fakeClassifier{}
	engine := testEngine(fake)

	// Index 0 reads positive, index 5 reads negative; windows don't overlap.
	sentences := []string{
		"Travis Kelce looked great out there.", "Filler.", "Filler.",
		"Filler.", "Filler.", "Travis Kelce was terrible in coverage.",
	}
	verdict, err := engine.Consensus(context.Background(), group("Travis Kelce", 0, 5), sentences)
	if err != nil {
		t.Fatalf("Consensus: %v", err)
	}

	if len(verdict.Windows) != 2 {
		t.Fatalf("windows = %d, want 2", len(verdict.Windows))
	}
	// positive: (0.9 + 0.1) / 2, negative: (0.1 + 0.9) / 2, neutral: 0.5.
	if got := verdict.Consensus[LabelPositive]; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("positive = %v, want 0.5", got)
	}
	if got := verdict.Consensus[LabelNegative]; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("negative = %v, want 0.5", got)
	}
	// Exact three-way tie 0.5/0.5/0.5 resolves to the first label.
	if verdict.FinalLabel != LabelPositive {
		t.Errorf("final label = %q, want positive (tie-break)", verdict.FinalLabel)
	}
	if len(fake.batches) != 1 || len(fake.batches[0]) != 6 {
		t.Errorf("expected one batch of 6 pairs, got %d batches", len(fake.batches))
	}
}

func TestConsensusDuplicateIndicesScoredOnce(t *testing.T) {
	fake := &fakeClassifier{}
	engine := testEngine(fake)

	g := group("Travis Kelce", 0, 0, 0)
	verdict, err := engine.Consensus(context.Background(), g, []string{"Travis Kelce was great."})
	if err != nil {
		t.Fatalf("Consensus: %v", err)
	}
	if len(verdict.Windows) != 1 {
		t.Errorf("windows = %d, want 1 (duplicates not re-scored)", len(verdict.Windows))
	}
}

func TestConsensusOrderInvariant(t *testing.T) {
	sentences := []string{
		"Travis Kelce looked great.", "Filler.", "Filler.",
		"Filler.", "Filler.", "Travis Kelce was terrible.",
	}

	want, err := testEngine(&fakeClassifier{}).Consensus(context.Background(), group("Travis Kelce", 0, 5), sentences)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		indices := []int{0, 5, 0, 5, 5}
		rand.Shuffle(len(indices), func(a, b int) { indices[a], indices[b] = indices[b], indices[a] })
		got, err := testEngine(&fakeClassifier{}).Consensus(context.Background(), group("Travis Kelce", indices...), sentences)
		if err != nil {
			t.Fatal(err)
		}
		for _, label := range Labels {
			if math.Abs(got.Consensus[label]-want.Consensus[label]) > 1e-9 {
				t.Fatalf("consensus for %s differs across permutations: %v vs %v",
					label, got.Consensus[label], want.Consensus[label])
			}
		}
	}
}

func TestConsensusAll(t *testing.T) {
	fake := &fakeClassifier{}
	engine := testEngine(fake)

	groups := map[string]*models.PlayerAggregate{
		"George Kittle": group("George Kittle", 0),
		"Travis Kelce":  group("Travis Kelce", 0),
	}
	verdicts, err := engine.ConsensusAll(context.Background(), groups, []string{"Both were great."})
	if err != nil {
		t.Fatalf("ConsensusAll: %v", err)
	}
	if len(verdicts) != 2 {
		t.Fatalf("verdicts = %d, want 2", len(verdicts))
	}
	for name, verdict := range verdicts {
		if verdict.CanonicalName != name {
			t.Errorf("verdict key %q has canonical %q", name, verdict.CanonicalName)
		}
	}
}

func TestConsensusAllFailureAbortsRun(t *testing.T) {
	wantErr := errors.New("model unavailable")
	engine := testEngine(&fakeClassifier{err: wantErr})

	groups := map[string]*models.PlayerAggregate{
		"George Kittle": group("George Kittle", 0),
		"Travis Kelce":  group("Travis Kelce", 0),
	}
	verdicts, err := engine.ConsensusAll(context.Background(), groups, []string{"A sentence."})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
	if verdicts != nil {
		t.Errorf("partial verdicts returned on failure: %v", verdicts)
	}
}

func TestParseScores(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{
			"plain array",
			`[{"contradiction":0.1,"entailment":0.8,"neutral":0.1}]`,
			1, false,
		},
		{
			"fenced with prose",
			"Here are the scores:\n```json\n[{\"contradiction\":0.2,\"entailment\":0.5,\"neutral\":0.3},{\"contradiction\":0.1,\"entailment\":0.1,\"neutral\":0.8}]\n```",
			2, false,
		},
		{"no array", "I cannot help with that.", 1, true},
		{"wrong count", `[{"entailment":0.5}]`, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := parseScores(tt.content, tt.want)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseScores: %v", err)
			}
			if len(scores) != tt.want {
				t.Errorf("len = %d, want %d", len(scores), tt.want)
			}
		})
	}
}

func TestParseScoresClamps(t *testing.T) {
	scores, err := parseScores(`[{"contradiction":-0.5,"entailment":1.7,"neutral":0.4}]`, 1)
	if err != nil {
		t.Fatal(err)
	}
	if scores[0].Contradiction != 0 || scores[0].Entailment != 1 {
		t.Errorf("scores not clamped: %+v", scores[0])
	}
}
