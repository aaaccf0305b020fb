package http

import (
	"net/http"
	"time"

	"github.com/nightowllabs/taskhub/pkg/httpx"
	"github.com/nightowllabs/taskhub/pkg/taskhubapi"
)

// Livez godoc
//
//	@Summary	Liveness probe
//	@Tags		health
//	@Success	200	{object}	taskhubapi.HealthResponse
//	@Router		/livez [get]
func Livez(version string, startedAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, taskhubapi.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startedAt).Round(time.Second).String(),
			Version: version,
		})
	}
}
