package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mbogdanovic/fittrack/internal/food"
	"github.com/mbogdanovic/fittrack/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=stats_mocks_test.go -package=stats_test

const (
	dashboardCacheExpireSeconds = 5 * 60
	dashboardRecentWindowDays   = 7
)

type workoutsRepo interface {
	ListCompletions(ctx context.Context, userID int) ([]time.Time, error)
}

type foodRepo interface {
	ListForDay(ctx context.Context, userID int, day time.Time) ([]food.Entry, error)
}

type DashboardData struct {
	StreakDays        int             `json:"streakDays"`
	WorkoutsTotal     int             `json:"workoutsTotal"`
	WorkoutsLast7Days int             `json:"workoutsLast7Days"`
	NutritionToday    NutritionTotals `json:"nutritionToday"`
	GeneratedAt       time.Time       `json:"generatedAt"`
}

// Dashboard assembles the per-user overview: current streak, finished
// workout counts and today's nutrition totals. Results are cached for a
// few minutes per user.
type Dashboard struct {
	workoutsRepo workoutsRepo
	foodRepo     foodRepo
	cache        *freecache.Cache

	now func() time.Time
}

func NewDashboard(workoutsRepo workoutsRepo, foodRepo foodRepo) *Dashboard {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &Dashboard{
		workoutsRepo: workoutsRepo,
		foodRepo:     foodRepo,
		cache:        freecache.NewCache(cacheSize),
		now:          time.Now,
	}
}

func (d *Dashboard) Get(ctx context.Context, userID int) (_ *DashboardData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.dashboard.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	cacheKey := fmt.Sprintf("dashboard::%d", userID)
	if dashboardBytes, cacheErr := d.cache.Get([]byte(cacheKey)); cacheErr == nil {
		dashboardData := &DashboardData{}
		if err := json.Unmarshal(dashboardBytes, dashboardData); err == nil {
			log.Tracef("found dashboard for user %d in cache", userID)
			return dashboardData, nil
		}
		log.Errorf("failed to unmarshal dashboard from cache for user %d: %s", userID, err)
	}

	now := d.now()
	completions, err := d.workoutsRepo.ListCompletions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list workout completions: %w", err)
	}

	todayEntries, err := d.foodRepo.ListForDay(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("list food entries for today: %w", err)
	}

	dashboardData := &DashboardData{
		StreakDays:        ComputeStreak(completions, now),
		WorkoutsTotal:     len(completions),
		WorkoutsLast7Days: CountRecent(completions, now, dashboardRecentWindowDays),
		NutritionToday:    AggregateNutrition(todayEntries),
		GeneratedAt:       now,
	}

	dashboardBytes, err := json.Marshal(dashboardData)
	if err != nil {
		return nil, fmt.Errorf("marshal dashboard data: %w", err)
	}
	if err := d.cache.Set([]byte(cacheKey), dashboardBytes, dashboardCacheExpireSeconds); err != nil {
		log.Errorf("failed to write dashboard cache for user %d: %s", userID, err)
	}

	return dashboardData, nil
}

// Invalidate drops the cached dashboard of one user, called after writes
// that change what the dashboard shows.
func (d *Dashboard) Invalidate(userID int) {
	d.cache.Del([]byte(fmt.Sprintf("dashboard::%d", userID)))
}
