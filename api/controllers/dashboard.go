package controllers

import (
	"net/http"

	"github.com/Areandra/Kelvin/api/responses"
	dashboardsvc "github.com/Areandra/Kelvin/internal/dashboard"
	pkgerrors "github.com/Areandra/Kelvin/pkg/errors"
	"github.com/Areandra/Kelvin/pkg/logger"
)

// DashboardSummary returns the landing-page aggregate.
func DashboardSummary(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		summary, err := svc.Summary(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
