package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sentimizer/internal/apperr"
)

// NLIClient scores pairs against a cross-encoder NLI inference server
// (e.g. a sidecar serving nli-deberta-v3-base). The server takes a batch
// of pairs and returns a {contradiction, entailment, neutral}
// distribution per pair.
type NLIClient struct {
	endpoint string
	client   *http.Client
}

// Compile-time check that NLIClient implements Classifier.
var _ Classifier = (*NLIClient)(nil)

// NewNLIClient creates a client for the given score endpoint.
func NewNLIClient(endpoint string) *NLIClient {
	return &NLIClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

// Name identifies the backing model endpoint.
func (c *NLIClient) Name() string {
	return "nli:" + c.endpoint
}

// nliRequest is the request format for the NLI server.
type nliRequest struct {
	Pairs []Pair `json:"pairs"`
}

// nliResponse is the response format from the NLI server.
type nliResponse struct {
	Scores []Scores `json:"scores"`
}

// ScoreBatch sends all pairs in a single request.
func (c *NLIClient) ScoreBatch(ctx context.Context, pairs []Pair) ([]Scores, error) {
	if len(pairs) == 0 {
		return []Scores{}, nil
	}

	jsonBody, err := json.Marshal(nliRequest{Pairs: pairs})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.Upstream(err, "nli request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, apperr.Upstream(
			fmt.Errorf("status %d: %s", resp.StatusCode, body), "nli request")
	}

	var parsed nliResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperr.Upstream(err, "decode nli response")
	}

	if len(parsed.Scores) != len(pairs) {
		return nil, apperr.Upstream(
			fmt.Errorf("score count mismatch: got %d, want %d", len(parsed.Scores), len(pairs)),
			"nli response")
	}

	return parsed.Scores, nil
}
