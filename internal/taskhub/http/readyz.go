package http

import (
	"net/http"
	"time"

	"github.com/nightowllabs/taskhub/internal/taskhub/store"
	"github.com/nightowllabs/taskhub/pkg/httpx"
	"github.com/nightowllabs/taskhub/pkg/slogx"
	"github.com/nightowllabs/taskhub/pkg/taskhubapi"
)

// Readyz godoc
//
//	@Summary	Readiness probe including a database ping
//	@Tags		health
//	@Success	200	{object}	taskhubapi.HealthResponse
//	@Failure	503	{object}	taskhubapi.HealthResponse
//	@Router		/readyz [get]
func Readyz(st store.Store, version string, startedAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := taskhubapi.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startedAt).Round(time.Second).String(),
			Version: version,
			Checks:  &taskhubapi.HealthChecks{Database: "ok"},
		}

		status := http.StatusOK
		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Error("readiness database ping failed", "err", err)
			resp.Status = "degraded"
			resp.Checks.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, status, resp)
	}
}
