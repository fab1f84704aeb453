package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/fightgraphs/pipeline/internal/api/respond"
	"github.com/fightgraphs/pipeline/internal/cache"
)

// GetFighter returns a fighter profile with record.
// @Summary Get fighter profile
// @Description Returns a fighter's profile and record from the mv_fighter_profile view.
// @Tags fighters
// @Produce json
// @Param id path int true "Fighter ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /fighters/{id} [get]
func (h *Handler) GetFighter(w http.ResponseWriter, r *http.Request) {
	h.serveByID(w, r, "fighter", "api_fighter_profile", cache.TTLProfile)
}

// GetFighterFights returns every fight a fighter appeared in, newest first.
// @Summary Get fighter fights
// @Description Returns the fights a fighter took part in, ordered by event date.
// @Tags fighters
// @Produce json
// @Param id path int true "Fighter ID"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /fighters/{id}/fights [get]
func (h *Handler) GetFighterFights(w http.ResponseWriter, r *http.Request) {
	h.serveByID(w, r, "fighter fights", "api_fighter_fights", cache.TTLProfile)
}

// GetEvent returns an event with its card in order.
// @Summary Get event
// @Description Returns an event and its card in source order.
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /events/{id} [get]
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	h.serveByID(w, r, "event", "api_event", cache.TTLEvent)
}

// GetFight returns a fight with round stats, scorecards and bonuses.
// @Summary Get fight
// @Description Returns a fight with per-round stats, scorecards and bonuses.
// @Tags fights
// @Produce json
// @Param id path int true "Fight ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /fights/{id} [get]
func (h *Handler) GetFight(w http.ResponseWriter, r *http.Request) {
	h.serveByID(w, r, "fight", "api_fight", cache.TTLFight)
}

// serveByID runs a JSON-returning prepared statement for the {id} path
// parameter, through the cache.
func (h *Handler) serveByID(w http.ResponseWriter, r *http.Request, what, stmt string, ttl time.Duration) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "ID must be a positive integer")
		return
	}

	cacheKey := fmt.Sprintf("%s:%d", stmt, id)
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	var raw []byte
	err = h.db.QueryRow(r.Context(), stmt, id).Scan(&raw)
	switch {
	case errors.Is(err, pgx.ErrNoRows) || (err == nil && raw == nil):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", what+" not found")
		return
	case err != nil:
		h.logger.Error("Query failed", zap.String("statement", stmt), zap.Int64("id", id), zap.Error(err))
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Could not load "+what)
		return
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, raw, etag, ttl, false)
}
