// Package transform maps raw source documents to normalized relational
// entities. Mappers are pure: no I/O, no shared mutable state, and the same
// document always produces the same rows.
package transform

import (
	"errors"

	"github.com/fightgraphs/pipeline/internal/document"
	"github.com/fightgraphs/pipeline/internal/entity"
	"github.com/fightgraphs/pipeline/internal/identity"
	"github.com/fightgraphs/pipeline/internal/normalize"
)

// MappedFighter is a fighter row with its record row.
type MappedFighter struct {
	Fighter entity.Fighter       `json:"fighter"`
	Record  entity.FighterRecord `json:"record"`
}

// MapFighter maps a fighter document, attaching the image url when an image
// document is supplied. The record is always returned, zero-filled when the
// source record is missing or unparseable.
func MapFighter(doc document.FighterDocument, image *document.FighterImageDocument) (entity.Fighter, entity.FighterRecord, error) {
	id, err := deriveID(EntityFighter, "fighter_ufcstats_url", doc.FighterURL)
	if err != nil {
		return entity.Fighter{}, entity.FighterRecord{}, err
	}

	f := entity.Fighter{
		ID:          id,
		FirstName:   normalize.Text(doc.FirstName),
		LastName:    normalize.Text(doc.LastName),
		Nickname:    normalize.OptionalText(doc.Nickname),
		DateOfBirth: normalize.Date(doc.DateOfBirth),
		HeightCm:    normalize.Height(doc.Height),
		WeightKg:    normalize.Weight(doc.Weight),
		ReachCm:     normalize.Reach(doc.Reach),
		Stance:      normalize.OptionalText(doc.Stance),
		UFCStatsURL: doc.FighterURL,
	}
	if image != nil {
		f.ImageURL = optional(image.ImageURL)
	}

	rec := normalize.ParseRecord(doc.FighterRecord)
	return f, entity.FighterRecord{
		FighterID:  id,
		Wins:       rec.Wins,
		Losses:     rec.Losses,
		Draws:      rec.Draws,
		NoContests: rec.NoContests,
	}, nil
}

// ImageIndex finds a fighter's image document by the fighter's surrogate
// id. Build it once per batch; it is read-only afterwards.
type ImageIndex map[int64]*document.FighterImageDocument

// NewImageIndex indexes images by the id derived from their fighter url.
// Images without a url are skipped; on duplicates the last one wins.
func NewImageIndex(images []document.FighterImageDocument) ImageIndex {
	idx := make(ImageIndex, len(images))
	for i := range images {
		id, err := identity.ID(images[i].FighterURL)
		if err != nil {
			continue
		}
		idx[id] = &images[i]
	}
	return idx
}

// ForFighter returns the image for a fighter url, or nil.
func (idx ImageIndex) ForFighter(fighterURL string) *document.FighterImageDocument {
	id, err := identity.ID(fighterURL)
	if err != nil {
		return nil
	}
	return idx[id]
}

// MapFightersBatch maps every fighter, attaching images by derived id.
// Documents that fail validation are left out of the result and reported
// together in the returned error; the caller decides whether to abort.
func MapFightersBatch(docs []document.FighterDocument, images []document.FighterImageDocument) ([]MappedFighter, error) {
	idx := NewImageIndex(images)
	out := make([]MappedFighter, 0, len(docs))
	var errs []error
	for _, doc := range docs {
		f, rec, err := MapFighter(doc, idx.ForFighter(doc.FighterURL))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, MappedFighter{Fighter: f, Record: rec})
	}
	return out, errors.Join(errs...)
}
