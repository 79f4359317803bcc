package stats

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mbogdanovic/fittrack/internal/auth"
	"github.com/mbogdanovic/fittrack/internal/telemetry/tracing"
	"github.com/mbogdanovic/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type DayNutritionResponse struct {
	Day    string          `json:"day"`
	Totals NutritionTotals `json:"totals"`
}

type Handler struct {
	dashboard *Dashboard
	foodRepo  foodRepo
}

func NewHandler(dashboard *Dashboard, foodRepo foodRepo) *Handler {
	return &Handler{
		dashboard: dashboard,
		foodRepo:  foodRepo,
	}
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.dashboard")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	dashboardData, err := handler.dashboard.Get(ctx, userID)
	if err != nil {
		log.Errorf("failed to get dashboard for user %d: %s", userID, err)
		http.Error(w, "failed to get dashboard", http.StatusInternalServerError)
		return
	}

	dashboardJson, err := json.Marshal(dashboardData)
	if err != nil {
		log.Errorf("failed to marshal dashboard: %s", err)
		http.Error(w, "failed to marshal dashboard", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, dashboardJson, http.StatusOK)
}

// HandleDayNutrition sums one day's calories and macros, date given in the
// path as YYYY-MM-DD.
func (handler *Handler) HandleDayNutrition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.day-nutrition")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	dayStr := mux.Vars(r)["date"]
	day, err := time.Parse(time.DateOnly, dayStr)
	if err != nil {
		http.Error(w, "error, invalid date, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	entries, err := handler.foodRepo.ListForDay(ctx, userID, day)
	if err != nil {
		log.Errorf("failed to list food entries for %s: %s", dayStr, err)
		http.Error(w, "failed to get nutrition totals", http.StatusInternalServerError)
		return
	}

	nutritionJson, err := json.Marshal(DayNutritionResponse{
		Day:    day.Format(time.DateOnly),
		Totals: AggregateNutrition(entries),
	})
	if err != nil {
		log.Errorf("failed to marshal nutrition totals: %s", err)
		http.Error(w, "failed to marshal nutrition totals", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, nutritionJson, http.StatusOK)
}
