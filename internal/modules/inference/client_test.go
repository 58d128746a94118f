package inference

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	appcfg "github.com/inkwell-app/inkwell/internal/config"
)

func testConfig(baseURL string) appcfg.InferenceConfig {
	return appcfg.InferenceConfig{
		BaseURL:        baseURL,
		APIKey:         "hf_test",
		TimeoutSeconds: 5,
		Models: appcfg.InferenceModels{
			Generation:    "org/generator",
			Sentiment:     "org/classifier",
			Summarization: "org/summarizer",
		},
	}
}

type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func TestQuerySendsAuthorizedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/org/classifier" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer hf_test" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		var payload ClassificationRequest
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.Inputs != "hello" {
			t.Errorf("unexpected inputs %q", payload.Inputs)
		}
		_, _ = w.Write([]byte(`[[{"label":"POSITIVE","score":0.9}]]`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()))
	raw, err := client.Query(context.Background(), EndpointSentiment, ClassificationRequest{Inputs: "hello"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	label, err := Sentiment(raw)
	if err != nil {
		t.Fatalf("Sentiment returned error: %v", err)
	}
	if label != LabelPositive {
		t.Fatalf("expected Positive, got %s", label)
	}
}

func TestQueryRetriesUnavailableThreeTimes(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading","estimated_time":20}`))
	}))
	defer server.Close()

	sleeper := &recordingSleeper{}
	client := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()), WithSleeper(sleeper.sleep))
	_, err := client.Query(context.Background(), EndpointGeneration, GenerationRequest{Inputs: "x"})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !IsTransient(err) {
		t.Fatalf("expected transient-unavailable error, got %v", err)
	}
	var ie *Error
	if !errors.As(err, &ie) || ie.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected *Error with status 503, got %#v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(sleeper.delays) != len(want) {
		t.Fatalf("expected sleeps %v, got %v", want, sleeper.delays)
	}
	for i := range want {
		if sleeper.delays[i] != want[i] {
			t.Fatalf("expected sleeps %v, got %v", want, sleeper.delays)
		}
	}
}

func TestQueryHonorsRetryOverride(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	sleeper := &recordingSleeper{}
	client := NewClient(testConfig(server.URL),
		WithHTTPClient(server.Client()),
		WithRetry(2, 500*time.Millisecond),
		WithSleeper(sleeper.sleep),
	)
	if _, err := client.Query(context.Background(), EndpointSentiment, ClassificationRequest{Inputs: "x"}); !IsTransient(err) {
		t.Fatalf("expected transient-unavailable error, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
	if len(sleeper.delays) != 1 || sleeper.delays[0] != 500*time.Millisecond {
		t.Fatalf("expected one 500ms sleep, got %v", sleeper.delays)
	}
}

func TestQueryRecoversAfterWarmup(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"generated_text":"  An article.  "}]`))
	}))
	defer server.Close()

	sleeper := &recordingSleeper{}
	client := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()), WithSleeper(sleeper.sleep))
	raw, err := client.Query(context.Background(), EndpointGeneration, GenerationRequest{Inputs: "x"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	text, err := GeneratedText(raw)
	if err != nil || text != "An article." {
		t.Fatalf("unexpected text %q err=%v", text, err)
	}
	if len(sleeper.delays) != 1 || sleeper.delays[0] != 2*time.Second {
		t.Fatalf("expected one 2s sleep, got %v", sleeper.delays)
	}
}

func TestQueryClassifiesFailures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		want    ErrorKind
		attempt int32
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, want: KindTransportFailure, attempt: 3},
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"bad"}`, want: KindTransportFailure, attempt: 3},
		{name: "malformed", status: http.StatusOK, body: `<html>oops</html>`, want: KindMalformedResponse, attempt: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()), WithSleeper((&recordingSleeper{}).sleep))
			_, err := client.Query(context.Background(), EndpointSentiment, ClassificationRequest{Inputs: "x"})
			if got := KindOf(err); got != tc.want {
				t.Fatalf("expected kind %s, got %s (%v)", tc.want, got, err)
			}
			if got := calls.Load(); got != tc.attempt {
				t.Fatalf("expected %d attempts, got %d", tc.attempt, got)
			}
		})
	}
}

func TestQueryTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	sleeper := &recordingSleeper{}
	client := NewClient(testConfig(url), WithSleeper(sleeper.sleep))
	_, err := client.Query(context.Background(), EndpointSentiment, ClassificationRequest{Inputs: "x"})
	if KindOf(err) != KindTransportFailure {
		t.Fatalf("expected transport failure, got %v", err)
	}
	if len(sleeper.delays) != 2 {
		t.Fatalf("expected 2 backoff sleeps, got %v", sleeper.delays)
	}
}

func TestQueryUnknownEndpoint(t *testing.T) {
	client := NewClient(appcfg.InferenceConfig{BaseURL: "http://localhost"})
	if _, err := client.Query(context.Background(), EndpointGeneration, nil); err == nil {
		t.Fatal("expected error for unconfigured model")
	}
}

func TestURLJoinsBaseAndModel(t *testing.T) {
	client := NewClient(testConfig("https://example.test/models/"))
	got, err := client.URL(EndpointSummarization)
	if err != nil {
		t.Fatalf("URL returned error: %v", err)
	}
	if got != "https://example.test/models/org/summarizer" {
		t.Fatalf("unexpected url %q", got)
	}
}
