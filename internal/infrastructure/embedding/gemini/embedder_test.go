package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmbedDocumentsSendsBatchWithDocumentRole(t *testing.T) {
	var captured batchEmbedRequest
	var apiKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/embedding-001:batchEmbedContents" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		apiKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"embeddings":[{"values":[0.1,0.2]},{"values":[0.3,0.4]}]}`))
	}))
	defer server.Close()

	embedder := New(server.URL, "embed-key", "embedding-001")
	vectors, err := embedder.EmbedDocuments(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 2 || len(vectors[0]) != 2 {
		t.Fatalf("unexpected vectors: %v", vectors)
	}
	if apiKey != "embed-key" {
		t.Fatalf("unexpected api key header: %q", apiKey)
	}
	if len(captured.Requests) != 2 {
		t.Fatalf("expected 2 batch entries, got %d", len(captured.Requests))
	}
	for i, req := range captured.Requests {
		if req.TaskType != taskRoleDocument {
			t.Fatalf("entry %d: unexpected task type %q", i, req.TaskType)
		}
		if req.Model != "models/embedding-001" {
			t.Fatalf("entry %d: unexpected model %q", i, req.Model)
		}
	}
}

func TestEmbedDocumentsEmptyInput(t *testing.T) {
	embedder := New("http://localhost:0", "key", "embedding-001")
	vectors, err := embedder.EmbedDocuments(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vectors != nil {
		t.Fatalf("expected nil vectors, got %v", vectors)
	}
}

func TestEmbedQuerySendsQueryRole(t *testing.T) {
	var captured embedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/embedding-001:embedContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"embedding":{"values":[0.5,0.6,0.7]}}`))
	}))
	defer server.Close()

	embedder := New(server.URL, "key", "embedding-001")
	vector, err := embedder.EmbedQuery(context.Background(), "what is this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vector) != 3 {
		t.Fatalf("unexpected vector: %v", vector)
	}
	if captured.TaskType != taskRoleQuery {
		t.Fatalf("unexpected task type: %q", captured.TaskType)
	}
	if len(captured.Content.Parts) != 1 || captured.Content.Parts[0].Text != "what is this" {
		t.Fatalf("unexpected content: %+v", captured.Content)
	}
}

func TestEmbedQueryEmptyResultIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"embedding":{"values":[]}}`))
	}))
	defer server.Close()

	embedder := New(server.URL, "key", "embedding-001")
	if _, err := embedder.EmbedQuery(context.Background(), "query"); err == nil {
		t.Fatal("expected error for empty embedding")
	}
}

func TestEmbedQueryStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer server.Close()

	embedder := New(server.URL, "bad-key", "embedding-001")
	_, err := embedder.EmbedQuery(context.Background(), "query")
	if err == nil {
		t.Fatal("expected error")
	}
}
