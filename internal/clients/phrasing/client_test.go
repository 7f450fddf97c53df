package phrasing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clintwin/clintwin-backend/internal/akinator"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

func testClient(url string) *Client {
	return &Client{
		log:        logger.NewNop(),
		baseURL:    url,
		model:      "test-model",
		temp:       0.3,
		httpClient: &http.Client{Timeout: 2 * time.Second},
	}
}

func testRequest() akinator.PhraseRequest {
	return akinator.PhraseRequest{
		Attribute:    "box_primary_color",
		TemplateText: "What color is the box?",
		Options:      []string{"Red", "Blue", "Not sure / Other"},
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"a":1}`, want: `{"a":1}`},
		{name: "fenced", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "fenced_json", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "leading_whitespace", in: "  ```json\n{\"a\":1}\n```  ", want: `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripFences(tc.in); got != tc.want {
				t.Fatalf("StripFences(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPhrase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"` +
			"```json\\n{\\\"question_text\\\": \\\"Which color stands out on the packaging?\\\"}\\n```" +
			`"}}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	got, err := c.Phrase(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Phrase: %v", err)
	}
	if got != "Which color stands out on the packaging?" {
		t.Fatalf("got %q", got)
	}
}

func TestPhraseUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Phrase(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error for non-200 upstream")
	}
}

func TestPhraseUnparseableContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"sorry, I cannot help with that"}}]}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Phrase(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error for non-JSON content")
	}
}

func TestPhraseEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Phrase(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
