package transform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fightgraphs/pipeline/internal/document"
	"github.com/fightgraphs/pipeline/internal/identity"
)

const (
	fighterAURL = "http://ufcstats.com/fighter-details/abc123"
	fighterBURL = "http://ufcstats.com/fighter-details/def456"
)

func sampleFighter() document.FighterDocument {
	return document.FighterDocument{
		FighterURL:    fighterAURL,
		FirstName:     "Alex",
		LastName:      "Pereira",
		Nickname:      "Poatan",
		Height:        `6' 4"`,
		Weight:        "205 lbs.",
		Reach:         `79"`,
		Stance:        "Orthodox",
		FighterRecord: "Record: 12-2-0",
		DateOfBirth:   "Jul 07, 1987",
	}
}

func TestMapFighter(t *testing.T) {
	image := &document.FighterImageDocument{FighterURL: fighterAURL, ImageURL: "https://img.example/pereira.png"}

	f, rec, err := MapFighter(sampleFighter(), image)
	require.NoError(t, err)

	assert.Equal(t, int64(565404779), f.ID)
	assert.Equal(t, "Alex", f.FirstName)
	assert.Equal(t, "Pereira", f.LastName)
	require.NotNil(t, f.Nickname)
	assert.Equal(t, "Poatan", *f.Nickname)
	require.NotNil(t, f.HeightCm)
	assert.InDelta(t, 193.04, *f.HeightCm, 0.001)
	require.NotNil(t, f.WeightKg)
	assert.InDelta(t, 92.99, *f.WeightKg, 0.001)
	require.NotNil(t, f.ReachCm)
	assert.InDelta(t, 200.66, *f.ReachCm, 0.001)
	require.NotNil(t, f.DateOfBirth)
	assert.Equal(t, time.Date(1987, time.July, 7, 0, 0, 0, 0, time.UTC), *f.DateOfBirth)
	require.NotNil(t, f.ImageURL)
	assert.Equal(t, "https://img.example/pereira.png", *f.ImageURL)
	assert.Equal(t, fighterAURL, f.UFCStatsURL)

	assert.Equal(t, f.ID, rec.FighterID)
	assert.Equal(t, 12, rec.Wins)
	assert.Equal(t, 2, rec.Losses)
	assert.Zero(t, rec.Draws)
	assert.Zero(t, rec.NoContests)
}

func TestMapFighterWithoutImageOrRecord(t *testing.T) {
	doc := document.FighterDocument{FighterURL: fighterBURL, Height: "--", Stance: "--"}

	f, rec, err := MapFighter(doc, nil)
	require.NoError(t, err)

	assert.Nil(t, f.ImageURL)
	assert.Nil(t, f.HeightCm)
	assert.Nil(t, f.Stance)
	assert.Nil(t, f.DateOfBirth)
	assert.Equal(t, f.ID, rec.FighterID)
	assert.Zero(t, rec.Wins)
	assert.Zero(t, rec.Losses)
	assert.Zero(t, rec.Draws)
	assert.Zero(t, rec.NoContests)
}

func TestMapFighterMissingKey(t *testing.T) {
	doc := sampleFighter()
	doc.FighterURL = ""

	_, _, err := MapFighter(doc, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.ErrorIs(t, err, identity.ErrInvalidKey)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, EntityFighter, ve.Entity)
	assert.Equal(t, "fighter_ufcstats_url", ve.Field)
}

func TestMapFightersBatch(t *testing.T) {
	docs := []document.FighterDocument{
		sampleFighter(),
		{FighterURL: fighterBURL, FirstName: "Jamahal", LastName: "Hill"},
		{FirstName: "No", LastName: "Key"},
	}
	images := []document.FighterImageDocument{
		{FighterURL: fighterAURL, ImageURL: "https://img.example/a.png"},
		{FighterURL: "", ImageURL: "https://img.example/orphan.png"},
		{FighterURL: "http://ufcstats.com/fighter-details/zzz", ImageURL: "https://img.example/z.png"},
	}

	mapped, err := MapFightersBatch(docs, images)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingKey)
	require.Len(t, mapped, 2)

	require.NotNil(t, mapped[0].Fighter.ImageURL)
	assert.Equal(t, "https://img.example/a.png", *mapped[0].Fighter.ImageURL)
	assert.Nil(t, mapped[1].Fighter.ImageURL)
	assert.Equal(t, mapped[1].Fighter.ID, mapped[1].Record.FighterID)
}

func TestImageIndexSkipsKeylessImages(t *testing.T) {
	idx := NewImageIndex([]document.FighterImageDocument{
		{FighterURL: "", ImageURL: "x"},
		{FighterURL: fighterAURL, ImageURL: "first"},
		{FighterURL: fighterAURL, ImageURL: "second"},
	})
	assert.Len(t, idx, 1)
	require.NotNil(t, idx.ForFighter(fighterAURL))
	assert.Equal(t, "second", idx.ForFighter(fighterAURL).ImageURL)
	assert.Nil(t, idx.ForFighter(""))
}
