package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const checkTimeout = 2 * time.Second

// Check probes one dependency.
type Check func(ctx context.Context) error

// Deps are the probes reported by GET /health. A nil Redis check is reported
// as disabled.
type Deps struct {
	Database     Check
	Redis        Check
	PermitsInUse func() int
}

type Status struct {
	Status       string `json:"status"`
	Database     bool   `json:"database"`
	Redis        string `json:"redis"`
	PermitsInUse int    `json:"permits_in_use"`
}

func RegisterRoutes(r gin.IRoutes, deps Deps) {
	r.GET("/health", func(c *gin.Context) {
		st := Probe(c.Request.Context(), deps)
		code := http.StatusOK
		if st.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, st)
	})
}

// Probe runs every check and summarizes the result.
func Probe(ctx context.Context, deps Deps) Status {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	st := Status{Status: "ok", Redis: "disabled"}
	st.Database = deps.Database != nil && deps.Database(ctx) == nil
	if !st.Database {
		st.Status = "degraded"
	}
	if deps.Redis != nil {
		if err := deps.Redis(ctx); err != nil {
			st.Redis = "down"
			st.Status = "degraded"
		} else {
			st.Redis = "ok"
		}
	}
	if deps.PermitsInUse != nil {
		st.PermitsInUse = deps.PermitsInUse()
	}
	return st
}
