package food

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

//go:generate mockgen -source=$GOFILE -destination=food_mocks_test.go -package=food_test

type foodRepo interface {
	Add(ctx context.Context, entry Entry) (*Entry, error)
	Get(ctx context.Context, userID, id int) (*Entry, error)
	ListForDay(ctx context.Context, userID int, day time.Time) ([]Entry, error)
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, userID, id int) error
}

type DeleteEntryResponse struct {
	DeletedID int `json:"deletedId"`
}

type UpdateEntryResponse struct {
	UpdatedID int `json:"updatedId"`
}

type DayEntriesResponse struct {
	Day     string  `json:"day"`
	Entries []Entry `json:"entries"`
}

type CatalogSearchResponse struct {
	Items []CatalogItem `json:"items"`
}

type Handler struct {
	repo    foodRepo
	catalog *Catalog
	metrics *metrics.Manager

	now func() time.Time
}

func NewHandler(repo foodRepo, catalog *Catalog, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		catalog: catalog,
		metrics: metricsManager,
		now:     time.Now,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.food.add")
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

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("new food entry, unmarshal json params: %s", err)
		http.Error(w, "add food entry failed", http.StatusBadRequest)
		return
	}

	if err := entry.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry.UserID = userID
	if entry.ConsumedAt.IsZero() {
		entry.ConsumedAt = handler.now()
	}

	addedEntry, err := handler.repo.Add(ctx, entry)
	if err != nil {
		log.Errorf("failed to add food entry [%s]: %s", entry.Name, err)
		http.Error(w, "error, failed to add food entry", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterFoodEntries.Inc()

	addedEntryJson, err := json.Marshal(addedEntry)
	if err != nil {
		log.Errorf("failed to marshal food entry: %s", err)
		http.Error(w, "error, failed to add food entry", http.StatusInternalServerError)
		return
	}

	log.Debugf("new food entry added: %d [%s]", addedEntry.ID, addedEntry.Name)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedEntryJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.food.get")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := entryIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := handler.repo.Get(ctx, userID, id)
	if errors.Is(err, ErrEntryNotFound) {
		http.Error(w, "food entry not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get food entry %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("failed to marshal food entry: %s", err)
		http.Error(w, "failed to marshal food entry", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusOK)
}

// HandleListForDay returns the entries of one calendar day, given in the
// path as YYYY-MM-DD.
func (handler *Handler) HandleListForDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.food.list-for-day")
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

	entries, err := handler.repo.ListForDay(ctx, userID, day)
	if err != nil {
		log.Errorf("failed to list food entries for %s: %s", dayStr, err)
		http.Error(w, "failed to get food entries", http.StatusInternalServerError)
		return
	}

	dayEntriesJson, err := json.Marshal(DayEntriesResponse{
		Day:     day.Format(time.DateOnly),
		Entries: entries,
	})
	if err != nil {
		log.Errorf("failed to marshal food entries: %s", err)
		http.Error(w, "failed to marshal food entries", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, dayEntriesJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.food.update")
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

	id, err := entryIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Errorf("update food entry, unmarshal json params: %s", err)
		http.Error(w, "update food entry failed", http.StatusBadRequest)
		return
	}

	if err := entry.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry.ID = id
	entry.UserID = userID
	if err := handler.repo.Update(ctx, &entry); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "food entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update food entry %d: %s", entry.ID, err)
		http.Error(w, "error, failed to update food entry", http.StatusInternalServerError)
		return
	}

	updateRespJson, err := json.Marshal(UpdateEntryResponse{
		UpdatedID: entry.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}

	log.Debugf("food entry updated: %d [%s]", entry.ID, entry.Name)
	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.food.delete")
	defer span.End()

	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := entryIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			log.Debugf("food entry %d not found", id)
			http.Error(w, "food entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete food entry %d: %s", id, err)
		http.Error(w, "food entry not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteEntryResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleCatalogSearch(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.food.catalog-search")
	defer span.End()

	keyword := r.URL.Query().Get("q")
	if keyword == "" {
		http.Error(w, "error, query parameter <q> empty", http.StatusBadRequest)
		return
	}

	searchRespJson, err := json.Marshal(CatalogSearchResponse{
		Items: handler.catalog.Search(keyword),
	})
	if err != nil {
		log.Errorf("failed to marshal catalog search response: %s", err)
		http.Error(w, "failed to marshal catalog search response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, searchRespJson, http.StatusOK)
}

func entryIDFromRequest(r *http.Request) (int, error) {
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
