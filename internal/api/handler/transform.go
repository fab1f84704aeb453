package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fightgraphs/pipeline/internal/api/respond"
	"github.com/fightgraphs/pipeline/internal/document"
	"github.com/fightgraphs/pipeline/internal/transform"
)

const maxDocumentBytes = 1 << 20

// TransformDocument maps a posted document without writing anything.
// @Summary Preview a document mapping
// @Description Maps one raw fighter, event or fight document to the rows a load would write. Nothing is stored.
// @Tags transform
// @Accept json
// @Produce json
// @Param kind path string true "Document kind" Enums(fighter, event, fight)
// @Param image_url query string false "Fighter image url (fighter only)"
// @Param event_id query int false "Event id to place the fight on (fight only)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /transform/{kind} [post]
func (h *Handler) TransformDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	dec := json.NewDecoder(r.Body)

	var (
		out interface{}
		err error
	)
	switch kind := chi.URLParam(r, "kind"); kind {
	case transform.EntityFighter:
		var doc document.FighterDocument
		if !decode(w, dec, &doc) {
			return
		}
		var image *document.FighterImageDocument
		if u := r.URL.Query().Get("image_url"); u != "" {
			image = &document.FighterImageDocument{FighterURL: doc.FighterURL, ImageURL: u}
		}
		var m transform.MappedFighter
		m.Fighter, m.Record, err = transform.MapFighter(doc, image)
		out = m

	case transform.EntityEvent:
		var doc document.EventDocument
		if !decode(w, dec, &doc) {
			return
		}
		var m transform.MappedEvent
		m.Event, m.Fights, err = transform.MapEvent(doc)
		out = m

	case transform.EntityFight:
		var eventID *int64
		if s := r.URL.Query().Get("event_id"); s != "" {
			id, perr := strconv.ParseInt(s, 10, 64)
			if perr != nil {
				respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "event_id must be an integer")
				return
			}
			eventID = &id
		}
		var doc document.FightDocument
		if !decode(w, dec, &doc) {
			return
		}
		out, err = transform.MapFight(doc, eventID)

	default:
		respond.WriteError(w, http.StatusBadRequest, "INVALID_KIND", "Kind must be 'fighter', 'event' or 'fight'")
		return
	}

	if err != nil {
		respond.WriteMappingError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, out)
}

func decode(w http.ResponseWriter, dec *json.Decoder, v interface{}) bool {
	if err := dec.Decode(v); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be a JSON document", err.Error())
		return false
	}
	return true
}
