package handler

import (
	"net/http"
	"strconv"

	"github.com/fightgraphs/pipeline/internal/api/respond"
	"github.com/fightgraphs/pipeline/internal/identity"
)

// IDResponse is the surrogate id of a natural key.
type IDResponse struct {
	Key    string `json:"key"`
	Digits int    `json:"digits"`
	ID     int64  `json:"id"`
}

// GetID derives the surrogate id for a natural key.
// @Summary Derive surrogate id
// @Description Returns the deterministic id a natural key (profile url, event name, fight url) maps to.
// @Tags ids
// @Produce json
// @Param key query string true "Natural key"
// @Param digits query int false "Id width in digits (1-18)" default(9)
// @Success 200 {object} IDResponse
// @Failure 400 {object} respond.ErrorResponse
// @Router /ids [get]
func (h *Handler) GetID(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_KEY", "key query parameter is required")
		return
	}

	digits := identity.DefaultDigits
	if s := r.URL.Query().Get("digits"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_DIGITS", "digits must be an integer")
			return
		}
		digits = n
	}

	id, err := identity.GenerateID(key, digits)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_KEY", "Could not derive id", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, IDResponse{Key: key, Digits: digits, ID: id})
}
