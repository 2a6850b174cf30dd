package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/quizbank/internal/registration/service"
	"github.com/aussiebroadwan/quizbank/internal/registration/store"
	"github.com/aussiebroadwan/quizbank/pkg/httpx"
	"github.com/aussiebroadwan/quizbank/pkg/quizbanksdk"
	"github.com/aussiebroadwan/quizbank/pkg/slogx"
)

// readyCheckTimeout bounds each readiness probe.
const readyCheckTimeout = 2 * time.Second

// RootHandler godoc
//
//	@Summary		Service Banner
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	quizbanksdk.MessageResponse
//	@Router			/ [get]
func RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, quizbanksdk.MessageResponse{Message: "QuizBank API is running!"})
	}
}

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning uptime and version. Always 200 while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	quizbanksdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get]
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, quizbanksdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the account database and the pending registration ledger.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	quizbanksdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	quizbanksdk.HealthResponse	"service not ready"
//	@Router			/readyz [get]
func ReadyzHandler(startTime time.Time, version string, st store.Store, ledger service.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		log := slogx.FromContext(ctx)
		check := func(name string, err error) string {
			if err == nil {
				return "ok"
			}
			log.Error("readiness check failed", slog.String("check", name), slog.Any("error", err))
			return "unavailable"
		}

		_, ledgerErr := ledger.Len(ctx)
		checks := &quizbanksdk.HealthChecks{
			Database: check("database", st.Ping(ctx)),
			Ledger:   check("ledger", ledgerErr),
		}

		status, code := "ok", http.StatusOK
		if checks.Database != "ok" || checks.Ledger != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, quizbanksdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
