package qa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRemoteEngineAnswerQuery(t *testing.T) {
	var gotReq answerRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/qa/v1/answer" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		resolved := true
		json.NewEncoder(w).Encode(answerResponse{Answer: "Restart the agent.", Resolved: &resolved})
	}))
	defer srv.Close()

	e := NewRemoteEngine(srv.URL)
	res, err := e.AnswerQuery(context.Background(), "how do I restart", "user1", "proj1")
	if err != nil {
		t.Fatalf("AnswerQuery() error = %v", err)
	}

	if res.Answer != "Restart the agent." {
		t.Errorf("Answer = %q", res.Answer)
	}
	if res.Resolved == nil || !*res.Resolved {
		t.Errorf("Resolved = %v, want true", res.Resolved)
	}
	if gotReq.Question != "how do I restart" || gotReq.Identity != "user1" || gotReq.Scope != "proj1" {
		t.Errorf("request = %+v", gotReq)
	}
}

func TestRemoteEngineErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewRemoteEngine(srv.URL)
	if _, err := e.AnswerQuery(context.Background(), "q", "u", "s"); err == nil {
		t.Fatal("AnswerQuery() = nil error, want failure on 500")
	}
}

func TestRemoteEngineHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewRemoteEngine(srv.URL)
	if _, err := e.AnswerQuery(ctx, "q", "u", "s"); err == nil {
		t.Fatal("AnswerQuery() = nil error, want context error")
	}
}
