package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/config"
)

func newTestClient(ts *httptest.Server, genTO, chatTO time.Duration) *Client {
	return NewClient(config.BackendConfig{
		BaseURL:         ts.URL,
		GenerateTimeout: genTO,
		ChatTimeout:     chatTO,
	})
}

func TestClient_GenerateCode_OK(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "public class Foo {}"})
	}))
	defer ts.Close()

	c := newTestClient(ts, 0, 0)
	out, err := c.GenerateCode(context.Background(), "Jira Number: JIRA-101")
	if err != nil {
		t.Fatalf("GenerateCode() error = %v", err)
	}
	if out != "public class Foo {}" {
		t.Fatalf("out = %q", out)
	}
	if gotPath != "/generate-springboot" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody["prompt"] != "Jira Number: JIRA-101" {
		t.Fatalf("prompt = %v", gotBody["prompt"])
	}
	if dl, ok := gotBody["download"].(bool); !ok || dl {
		t.Fatalf("download must be false, got %v", gotBody["download"])
	}
}

func TestClient_Chat_OK(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"response": "sure, here is how"})
	}))
	defer ts.Close()

	c := newTestClient(ts, 0, 0)
	out, err := c.Chat(context.Background(), "how do I mock this?")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if out != "sure, here is how" {
		t.Fatalf("out = %q", out)
	}
	if gotPath != "/prompt" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody["prompt"] != "how do I mock this?" {
		t.Fatalf("prompt = %v", gotBody["prompt"])
	}
	if _, present := gotBody["download"]; present {
		t.Fatal("chat payload must not carry a download field")
	}
}

func TestClient_Non2xx_BecomesError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := newTestClient(ts, 0, 0)
	_, err := c.Chat(context.Background(), "hi")
	var be *Error
	if !errors.As(err, &be) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if be.Status != http.StatusServiceUnavailable {
		t.Fatalf("Status = %d", be.Status)
	}
	if !strings.Contains(be.Body, "model overloaded") {
		t.Fatalf("Body = %q", be.Body)
	}
}

func TestClient_ErrorBodyTruncated(t *testing.T) {
	big := strings.Repeat("x", maxErrorBodyBytes*2)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(big))
	}))
	defer ts.Close()

	c := newTestClient(ts, 0, 0)
	_, err := c.GenerateCode(context.Background(), "p")
	var be *Error
	if !errors.As(err, &be) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if len(be.Body) != maxErrorBodyBytes {
		t.Fatalf("Body length = %d, want %d", len(be.Body), maxErrorBodyBytes)
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	c := newTestClient(ts, 20*time.Millisecond, 20*time.Millisecond)

	if _, err := c.GenerateCode(context.Background(), "p"); !errors.Is(err, ErrTimeout) {
		t.Fatalf("GenerateCode() error = %v, want ErrTimeout", err)
	}
	if _, err := c.Chat(context.Background(), "m"); !errors.Is(err, ErrTimeout) {
		t.Fatalf("Chat() error = %v, want ErrTimeout", err)
	}
}

func TestClient_CallerContextCancellation(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	// timeout 0 leaves only the caller's context in charge
	c := newTestClient(ts, 0, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := c.Chat(ctx, "m"); !errors.Is(err, ErrTimeout) {
		t.Fatalf("Chat() error = %v, want ErrTimeout", err)
	}
}

func TestClient_MalformedResponseBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	c := newTestClient(ts, 0, 0)
	_, err := c.Chat(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}
