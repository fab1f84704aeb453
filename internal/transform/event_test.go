package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fightgraphs/pipeline/internal/document"
	"github.com/fightgraphs/pipeline/internal/entity"
	"github.com/fightgraphs/pipeline/internal/identity"
)

const (
	eventName = "UFC 300: Pereira vs. Hill"
	eventURL  = "http://ufcstats.com/event-details/e300"
	fightURL  = "http://ufcstats.com/fight-details/f1"
)

func sampleEvent() document.EventDocument {
	return document.EventDocument{
		Name:     eventName,
		Date:     "Apr 13, 2024",
		Location: "Las Vegas, Nevada, USA",
		Status:   "completed",
		EventURL: eventURL,
		FightRefs: []document.FightRef{
			{FightURL: fightURL, CardPosition: "main"},
			{FightURL: "", CardPosition: "prelim"},
			{FightURL: "http://ufcstats.com/fight-details/f3"},
		},
	}
}

func TestMapEvent(t *testing.T) {
	ev, refs, err := MapEvent(sampleEvent())
	require.NoError(t, err)

	assert.Equal(t, int64(725255606), ev.ID)
	assert.Equal(t, eventName, ev.Name)
	require.NotNil(t, ev.Date)
	assert.Equal(t, time.Date(2024, time.April, 13, 0, 0, 0, 0, time.UTC), *ev.Date)
	assert.Equal(t, "Las Vegas, Nevada, USA", ev.Location)
	assert.Equal(t, entity.PromotionID, ev.PromotionID)
	require.NotNil(t, ev.UFCStatsURL)
	assert.Equal(t, eventURL, *ev.UFCStatsURL)

	require.Len(t, refs, 3)
	for _, r := range refs {
		assert.Equal(t, ev.ID, r.EventID)
	}

	f1, _ := identity.ID(fightURL)
	require.NotNil(t, refs[0].FightID)
	assert.Equal(t, f1, *refs[0].FightID)
	require.NotNil(t, refs[0].CardPosition)
	assert.Equal(t, "main", *refs[0].CardPosition)

	assert.Nil(t, refs[1].FightID)
	require.NotNil(t, refs[1].CardPosition)
	assert.Equal(t, "prelim", *refs[1].CardPosition)

	assert.NotNil(t, refs[2].FightID)
	assert.Nil(t, refs[2].CardPosition)
}

func TestMapEventRequiredFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*document.EventDocument)
	}{
		{"event_name", func(d *document.EventDocument) { d.Name = "" }},
		{"event_date", func(d *document.EventDocument) { d.Date = "" }},
		{"event_location", func(d *document.EventDocument) { d.Location = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			doc := sampleEvent()
			tt.mutate(&doc)

			ev, refs, err := MapEvent(doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingRequiredField)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, EntityEvent, ve.Entity)
			assert.Zero(t, ev)
			assert.Nil(t, refs)
		})
	}
}

func TestMapEventUnparseableDate(t *testing.T) {
	doc := sampleEvent()
	doc.Date = "sometime in April"

	ev, _, err := MapEvent(doc)
	require.NoError(t, err)
	assert.Nil(t, ev.Date)
}

func TestEventIndex(t *testing.T) {
	idx := NewEventIndex([]document.EventDocument{sampleEvent(), {Name: "", EventURL: "x"}})
	eventID, _ := identity.ID(eventName)

	got := idx.EventFor(document.FightDocument{FightURL: fightURL})
	require.NotNil(t, got)
	assert.Equal(t, eventID, *got)

	// Not on any card, but the details point at the event.
	got = idx.EventFor(document.FightDocument{
		FightURL: "http://ufcstats.com/fight-details/unlisted",
		Details:  &document.FightDetails{EventURL: eventURL},
	})
	require.NotNil(t, got)
	assert.Equal(t, eventID, *got)

	assert.Nil(t, idx.EventFor(document.FightDocument{FightURL: "http://ufcstats.com/fight-details/other"}))
	assert.Equal(t, 2, idx.Len())

	var empty *EventIndex
	assert.Nil(t, empty.EventFor(document.FightDocument{FightURL: fightURL}))
}

func TestEventIndexSkipsRejectedEvents(t *testing.T) {
	rejected := sampleEvent()
	rejected.Location = ""

	idx := NewEventIndex([]document.EventDocument{rejected})
	assert.Zero(t, idx.Len())

	m, err := MapFight(sampleFight(), idx.EventFor(sampleFight()))
	require.NoError(t, err)
	assert.Nil(t, m.Fight.EventID)
}
