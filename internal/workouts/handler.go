package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mbogdanovic/fittrack/internal/auth"
	"github.com/mbogdanovic/fittrack/internal/telemetry/metrics"
	"github.com/mbogdanovic/fittrack/internal/telemetry/tracing"
	"github.com/mbogdanovic/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Create(ctx context.Context, workout Workout) (*Workout, error)
	Get(ctx context.Context, userID, id int) (*Workout, error)
	List(ctx context.Context, params ListParams) (_ []Workout, total int, err error)
	Update(ctx context.Context, workout *Workout) error
	Delete(ctx context.Context, userID, id int) error
	Finish(ctx context.Context, userID, id int, completedAt time.Time, durationSeconds int) error
	StartFromRoutine(ctx context.Context, userID, routineID int, startedAt time.Time) (*Workout, error)
}

type ListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}

type DeleteWorkoutResponse struct {
	DeletedID int `json:"deletedId"`
}

type UpdateWorkoutResponse struct {
	UpdatedID int `json:"updatedId"`
}

type FinishWorkoutResponse struct {
	ID              int       `json:"id"`
	CompletedAt     time.Time `json:"completedAt"`
	DurationSeconds int       `json:"durationSeconds"`
}

type SessionResponse struct {
	WorkoutID      int          `json:"workoutId"`
	State          SessionState `json:"state"`
	ElapsedSeconds int          `json:"elapsedSeconds"`
}

type Handler struct {
	repo      workoutsRepo
	tracker   *SessionTracker
	suggester *Suggester
	metrics   *metrics.Manager

	now func() time.Time
}

func NewHandler(repo workoutsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:      repo,
		tracker:   NewSessionTracker(),
		suggester: NewSuggester(),
		metrics:   metricsManager,
		now:       time.Now,
	}
}

func (handler *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.new")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	if err := workout.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout.UserID = userID
	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = handler.now()
	}
	// completion is set via the finish endpoint only
	workout.CompletedAt = nil
	workout.DurationSeconds = nil

	addedWorkout, err := handler.repo.Create(ctx, workout)
	if err != nil {
		log.Errorf("failed to add new workout [%s]: %s", workout.Title, err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	addedWorkoutJson, err := json.Marshal(addedWorkout)
	if err != nil {
		log.Errorf("failed to marshal new workout: %s", err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout added: %d [%s]", addedWorkout.ID, addedWorkout.Title)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedWorkoutJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := workoutIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.Get(ctx, userID, id)
	if errors.Is(err, ErrWorkoutNotFound) {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get workout %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "failed to marshal workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Tracef("handle get workouts page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Tracef("handle get workouts page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	routines := false
	if routinesStr := r.URL.Query().Get("routines"); routinesStr != "" {
		routines, err = strconv.ParseBool(routinesStr)
		if err != nil {
			http.Error(w, "failed to parse routines param", http.StatusBadRequest)
			return
		}
	}

	var from, to *time.Time
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		fromTime, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			http.Error(w, "failed to parse from param", http.StatusBadRequest)
			return
		}
		from = &fromTime
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		toTime, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			http.Error(w, "failed to parse to param", http.StatusBadRequest)
			return
		}
		to = &toTime
	}

	workouts, total, err := handler.repo.List(ctx, ListParams{
		WorkoutParams: WorkoutParams{
			UserID:    userID,
			IsRoutine: routines,
			From:      from,
			To:        to,
		},
		Page: page,
		Size: size,
	})
	if err != nil {
		log.Errorf("list workouts error: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Workouts: workouts,
		Total:    total,
	})
	if err != nil {
		log.Errorf("marshal workouts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id, err := workoutIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Errorf("update workout, unmarshal json params: %s", err)
		http.Error(w, "update workout failed", http.StatusBadRequest)
		return
	}

	if err := workout.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout.ID = id
	workout.UserID = userID
	if err := handler.repo.Update(ctx, &workout); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update workout %d: %s", workout.ID, err)
		http.Error(w, "error, failed to update workout", http.StatusInternalServerError)
		return
	}

	updateRespJson, err := json.Marshal(UpdateWorkoutResponse{
		UpdatedID: workout.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout updated: %d [%s]", workout.ID, workout.Title)
	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := workoutIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			log.Debugf("workout %d not found", id)
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete workout %d: %s", id, err)
		http.Error(w, "workout not deleted", http.StatusInternalServerError)
		return
	}

	// an abandoned session for the deleted workout must not linger
	handler.tracker.Remove(id)
	handler.metrics.GaugeActiveSessions.Set(float64(handler.tracker.ActiveCount()))

	deleteRespJson, err := json.Marshal(DeleteWorkoutResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

// HandleStartFromRoutine clones the routine into a fresh workout and starts
// a tracking session for it right away.
func (handler *Handler) HandleStartFromRoutine(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.start-from-routine")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	routineID, err := workoutIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := handler.now()
	workout, err := handler.repo.StartFromRoutine(ctx, userID, routineID, now)
	if err != nil {
		switch {
		case errors.Is(err, ErrWorkoutNotFound):
			http.Error(w, "routine not found", http.StatusNotFound)
		case errors.Is(err, ErrNotARoutine):
			http.Error(w, "workout is not a routine", http.StatusBadRequest)
		default:
			log.Errorf("failed to start workout from routine %d: %s", routineID, err)
			http.Error(w, "failed to start workout", http.StatusInternalServerError)
		}
		return
	}

	if _, err := handler.tracker.Start(workout.ID, now); err != nil {
		log.Errorf("failed to start session for workout %d: %s", workout.ID, err)
	}
	handler.metrics.GaugeActiveSessions.Set(float64(handler.tracker.ActiveCount()))

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal started workout: %s", err)
		http.Error(w, "failed to start workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout %d started from routine %d", workout.ID, routineID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutJson, http.StatusCreated)
}

func (handler *Handler) HandleSessionStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.session-start")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := workoutIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.Get(ctx, userID, id)
	if errors.Is(err, ErrWorkoutNotFound) {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get workout %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if workout.Completed() {
		http.Error(w, "workout already finished", http.StatusConflict)
		return
	}
	if workout.IsRoutine {
		http.Error(w, "cannot track a routine template", http.StatusBadRequest)
		return
	}

	now := handler.now()
	session, err := handler.tracker.Start(id, now)
	if errors.Is(err, ErrSessionExists) {
		http.Error(w, "session already running", http.StatusConflict)
		return
	}
	if err != nil {
		log.Errorf("failed to start session for workout %d: %s", id, err)
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}
	handler.metrics.GaugeActiveSessions.Set(float64(handler.tracker.ActiveCount()))

	handler.writeSessionResponse(w, session, now)
}

func (handler *Handler) HandleSessionPause(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.session-pause")
	defer span.End()

	id, ok := handler.authorizeSessionRequest(ctx, w, r)
	if !ok {
		return
	}

	session, err := handler.tracker.Get(id)
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	now := handler.now()
	if err := session.Pause(now); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	handler.writeSessionResponse(w, session, now)
}

func (handler *Handler) HandleSessionResume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.session-resume")
	defer span.End()

	id, ok := handler.authorizeSessionRequest(ctx, w, r)
	if !ok {
		return
	}

	session, err := handler.tracker.Get(id)
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	now := handler.now()
	if err := session.Resume(now); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	handler.writeSessionResponse(w, session, now)
}

func (handler *Handler) HandleSessionStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.session-status")
	defer span.End()

	id, ok := handler.authorizeSessionRequest(ctx, w, r)
	if !ok {
		return
	}

	session, err := handler.tracker.Get(id)
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	handler.writeSessionResponse(w, session, handler.now())
}

// authorizeSessionRequest checks that the workout of a session request
// exists and belongs to the requesting user, writing the error response
// itself. Sessions are keyed by workout ID only, so without this check
// any logged in user could poke another user's running session.
func (handler *Handler) authorizeSessionRequest(ctx context.Context, w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return 0, false
	}

	id, err := workoutIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}

	if _, err := handler.repo.Get(ctx, userID, id); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return 0, false
		}
		log.Errorf("failed to get workout %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return 0, false
	}

	return id, true
}

type finishRequest struct {
	DurationSeconds *int `json:"durationSeconds,omitempty"`
}

// HandleFinish stamps the workout completion. The duration comes from the
// tracked session when one exists, otherwise from the request body.
func (handler *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.finish")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := workoutIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := handler.now()
	var durationSeconds int
	session, sessionErr := handler.tracker.Get(id)
	if sessionErr == nil {
		durationSeconds = int(session.Elapsed(now).Seconds())
	} else {
		var req finishRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DurationSeconds == nil {
			http.Error(w, "duration missing and no session tracked", http.StatusBadRequest)
			return
		}
		if *req.DurationSeconds < 0 {
			http.Error(w, "duration must not be negative", http.StatusBadRequest)
			return
		}
		durationSeconds = *req.DurationSeconds
	}

	err = handler.repo.Finish(ctx, userID, id, now, durationSeconds)
	if err != nil {
		// the tracked session keeps ticking, the owner can retry the finish
		switch {
		case errors.Is(err, ErrWorkoutNotFound):
			http.Error(w, "workout not found", http.StatusNotFound)
		case errors.Is(err, ErrAlreadyFinished):
			http.Error(w, "workout already finished", http.StatusConflict)
		default:
			log.Errorf("failed to finish workout %d: %s", id, err)
			http.Error(w, "failed to finish workout", http.StatusInternalServerError)
		}
		return
	}

	// completion is persisted, now the session can reach its terminal state
	if sessionErr == nil {
		if _, err := session.Finish(now); err != nil {
			log.Tracef("finish tracked session for workout %d: %s", id, err)
		}
	}
	handler.tracker.Remove(id)
	handler.metrics.GaugeActiveSessions.Set(float64(handler.tracker.ActiveCount()))
	handler.metrics.CounterWorkoutsFinished.Inc()

	finishRespJson, err := json.Marshal(FinishWorkoutResponse{
		ID:              id,
		CompletedAt:     now,
		DurationSeconds: durationSeconds,
	})
	if err != nil {
		log.Errorf("failed to marshal finish response: %s", err)
		http.Error(w, "failed to marshal finish response", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout %d finished, duration %ds", id, durationSeconds)
	pkg.WriteJSONResponseOK(w, string(finishRespJson))
}

func (handler *Handler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.suggest")
	defer span.End()

	suggestion := handler.suggester.Suggest(r.URL.Query().Get("goal"))
	suggestionJson, err := json.Marshal(suggestion)
	if err != nil {
		log.Errorf("failed to marshal suggestion: %s", err)
		http.Error(w, "failed to marshal suggestion", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, suggestionJson, http.StatusOK)
}

func (handler *Handler) writeSessionResponse(w http.ResponseWriter, session *Session, now time.Time) {
	sessionJson, err := json.Marshal(SessionResponse{
		WorkoutID:      session.WorkoutID,
		State:          session.State(),
		ElapsedSeconds: int(session.Elapsed(now).Seconds()),
	})
	if err != nil {
		log.Errorf("failed to marshal session response: %s", err)
		http.Error(w, "failed to marshal session response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusOK)
}

func workoutIDFromRequest(r *http.Request) (int, error) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		return 0, errors.New("error, id empty")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, errors.New("error, id NaN")
	}
	return id, nil
}
