package transform

import (
	"github.com/fightgraphs/pipeline/internal/document"
	"github.com/fightgraphs/pipeline/internal/entity"
	"github.com/fightgraphs/pipeline/internal/normalize"
)

// MappedEvent is an event row with its card, in source order.
type MappedEvent struct {
	Event  entity.Event        `json:"event"`
	Fights []entity.EventFight `json:"fights"`
}

// MapEvent maps an event document and its fight refs. Name, date and
// location are required; a date that is present but unparseable is stored
// as null.
func MapEvent(doc document.EventDocument) (entity.Event, []entity.EventFight, error) {
	for _, f := range []struct{ name, value string }{
		{"event_name", doc.Name},
		{"event_date", doc.Date},
		{"event_location", doc.Location},
	} {
		if err := requireField(EntityEvent, doc.Name, f.name, f.value); err != nil {
			return entity.Event{}, nil, err
		}
	}

	id, err := deriveID(EntityEvent, "event_name", doc.Name)
	if err != nil {
		return entity.Event{}, nil, err
	}

	ev := entity.Event{
		ID:          id,
		Name:        normalize.Text(doc.Name),
		Date:        normalize.Date(doc.Date),
		Location:    normalize.Text(doc.Location),
		Status:      normalize.OptionalText(doc.Status),
		UFCStatsURL: optional(doc.EventURL),
		PromotionID: entity.PromotionID,
	}
	return ev, mapFightRefs(id, doc.FightRefs), nil
}

func mapFightRefs(eventID int64, refs []document.FightRef) []entity.EventFight {
	out := make([]entity.EventFight, 0, len(refs))
	for _, ref := range refs {
		ef := entity.EventFight{
			EventID: eventID,
			FightID: optionalID(ref.FightURL),
		}
		if ref.CardPosition != "" {
			pos := ref.CardPosition
			ef.CardPosition = &pos
		}
		out = append(out, ef)
	}
	return out
}

// EventIndex resolves the event a fight belongs to. Fight documents only
// carry the event url, while event ids derive from the event name, so the
// index is built from the events' fight refs and urls. Read-only once built.
type EventIndex struct {
	byFight    map[int64]int64
	byEventURL map[string]int64
}

// NewEventIndex indexes every event that maps cleanly. Events MapEvent
// rejects are never written, so their fights must not point at them.
func NewEventIndex(events []document.EventDocument) *EventIndex {
	idx := &EventIndex{
		byFight:    make(map[int64]int64),
		byEventURL: make(map[string]int64),
	}
	for _, ev := range events {
		mapped, _, err := MapEvent(ev)
		if err != nil {
			continue
		}
		eventID := mapped.ID
		if ev.EventURL != "" {
			idx.byEventURL[ev.EventURL] = eventID
		}
		for _, ref := range ev.FightRefs {
			if fightID := optionalID(ref.FightURL); fightID != nil {
				idx.byFight[*fightID] = eventID
			}
		}
	}
	return idx
}

// EventFor returns the event id of a fight, looked up by the fight's id
// first and its event url second. A nil index resolves nothing.
func (idx *EventIndex) EventFor(doc document.FightDocument) *int64 {
	if idx == nil {
		return nil
	}
	if fightID := optionalID(doc.FightURL); fightID != nil {
		if eventID, ok := idx.byFight[*fightID]; ok {
			return &eventID
		}
	}
	if doc.Details != nil && doc.Details.EventURL != "" {
		if eventID, ok := idx.byEventURL[doc.Details.EventURL]; ok {
			return &eventID
		}
	}
	return nil
}

// Len returns the number of fights the index can place.
func (idx *EventIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byFight)
}
