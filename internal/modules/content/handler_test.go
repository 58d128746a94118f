package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-app/inkwell/internal/modules/inference"
	"github.com/inkwell-app/inkwell/web"
)

func newTestRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	r.SetHTMLTemplate(tmpl)
	NewHandler(svc, 5, nil).RegisterRoutes(r, nil)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerGenerate(t *testing.T) {
	svc, _ := newTestService(t, &fakeQuerier{respond: okResponses})
	r := newTestRouter(t, svc)

	w := postJSON(r, "/generate/", `{"topic":"golang"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.GeneratedText == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHandlerGenerateFailureIsOK(t *testing.T) {
	svc, _ := newTestService(t, &fakeQuerier{respond: func(inference.Endpoint, any) (json.RawMessage, error) {
		return nil, &inference.Error{Kind: inference.KindTransientUnavailable, StatusCode: 503}
	}})
	r := newTestRouter(t, svc)

	w := postJSON(r, "/generate/", `{"topic":"golang"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.GeneratedText != msgModelLoading {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHandlerRejectsInvalidBody(t *testing.T) {
	svc, _ := newTestService(t, &fakeQuerier{respond: okResponses})
	r := newTestRouter(t, svc)

	for _, tc := range []struct{ path, body string }{
		{"/generate/", `{}`},
		{"/generate/", `{"topic": 5}`},
		{"/generate/", `not json`},
		{"/analyze/", `{"text":"x"}`},
	} {
		if w := postJSON(r, tc.path, tc.body); w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s %s: expected 422, got %d", tc.path, tc.body, w.Code)
		}
	}
}

func TestHandlerAnalyze(t *testing.T) {
	svc, _ := newTestService(t, &fakeQuerier{respond: func(e inference.Endpoint, p any) (json.RawMessage, error) {
		return nil, errors.New("connection refused")
	}})
	r := newTestRouter(t, svc)

	w := postJSON(r, "/analyze/", `{"content":"The cat sat."}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := AnalyzeResponse{Readability: "Easy to read", Sentiment: "Unable to analyze sentiment", Success: true}
	if resp != want {
		t.Fatalf("expected %+v, got %+v", want, resp)
	}
}

func TestHandlerAnalyzeFailure(t *testing.T) {
	svc, db := newTestService(t, &fakeQuerier{respond: okResponses})
	r := newTestRouter(t, svc)
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	w := postJSON(r, "/analyze/", `{"content":"text"}`)
	var resp AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := AnalyzeResponse{Readability: "Error analyzing content", Sentiment: "Error analyzing content", Success: false}
	if w.Code != http.StatusOK || resp != want {
		t.Fatalf("expected 200 %+v, got %d %+v", want, w.Code, resp)
	}
}

func TestHandlerIndexListsRecentArticles(t *testing.T) {
	svc, _ := newTestService(t, &fakeQuerier{respond: okResponses})
	if _, err := svc.Generate(context.Background(), "golang"); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	r := newTestRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Recent articles") || !strings.Contains(body, "<strong>golang</strong>") {
		t.Fatalf("expected recent article in page, got %s", body)
	}
}
