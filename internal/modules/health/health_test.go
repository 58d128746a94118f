package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("down") }

func serve(t *testing.T, deps Deps) (int, Status) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, deps)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	var st Status
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	return w.Code, st
}

func TestHealthOK(t *testing.T) {
	code, st := serve(t, Deps{Database: ok, PermitsInUse: func() int { return 2 }})
	if code != http.StatusOK || st.Status != "ok" || !st.Database {
		t.Fatalf("unexpected health %d %+v", code, st)
	}
	if st.Redis != "disabled" || st.PermitsInUse != 2 {
		t.Fatalf("unexpected health %+v", st)
	}
}

func TestHealthDegraded(t *testing.T) {
	code, st := serve(t, Deps{Database: ok, Redis: down})
	if code != http.StatusServiceUnavailable || st.Status != "degraded" || st.Redis != "down" {
		t.Fatalf("unexpected health %d %+v", code, st)
	}

	code, st = serve(t, Deps{Database: down, Redis: ok})
	if code != http.StatusServiceUnavailable || st.Database || st.Redis != "ok" {
		t.Fatalf("unexpected health %d %+v", code, st)
	}
}
