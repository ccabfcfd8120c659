package qa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteEngine talks to the retrieval service over HTTP. The service owns the
// vector store, prompt templates and model invocation; this client only
// carries the contract.
type RemoteEngine struct {
	BaseURL string
	Client  *http.Client
}

var _ Engine = &RemoteEngine{}

func NewRemoteEngine(baseURL string) *RemoteEngine {
	return &RemoteEngine{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type answerRequest struct {
	Question string `json:"question"`
	Identity string `json:"identity"`
	Scope    string `json:"scope"`
}

type answerResponse struct {
	Answer   string `json:"answer"`
	Resolved *bool  `json:"resolved,omitempty"`
}

func (e *RemoteEngine) AnswerQuery(ctx context.Context, question, identity, scope string) (*Result, error) {
	payloadBytes, err := json.Marshal(answerRequest{
		Question: question,
		Identity: identity,
		Scope:    scope,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := e.BaseURL + "/api/qa/v1/answer"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qa request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qa error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var qaResp answerResponse
	if err := json.Unmarshal(bodyBytes, &qaResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &Result{Answer: qaResp.Answer, Resolved: qaResp.Resolved}, nil
}
