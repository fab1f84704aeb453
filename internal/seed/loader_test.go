package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fightgraphs/pipeline/internal/document"
	"github.com/fightgraphs/pipeline/internal/identity"
	"github.com/fightgraphs/pipeline/internal/transform"
)

type stubSource struct {
	fighters []document.FighterDocument
	images   []document.FighterImageDocument
	events   []document.EventDocument
	fights   []document.FightDocument
	err      error
}

func (s *stubSource) EachFighter(ctx context.Context, fn func(document.FighterDocument) error) error {
	return fromSlice(s.fighters)(ctx, fn)
}

func (s *stubSource) FighterImages(context.Context) ([]document.FighterImageDocument, error) {
	return s.images, s.err
}

func (s *stubSource) Events(context.Context) ([]document.EventDocument, error) {
	return s.events, s.err
}

func (s *stubSource) EachFight(ctx context.Context, fn func(document.FightDocument) error) error {
	return fromSlice(s.fights)(ctx, fn)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func expectFighter(mock pgxmock.PgxPoolIface) {
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO fighter \(`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO fighterrecord`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
}

func TestSeedFighters(t *testing.T) {
	mock := newMock(t)
	src := &stubSource{
		fighters: []document.FighterDocument{
			{FighterURL: "http://ufcstats.com/fighter-details/a", FighterRecord: "10-1-0"},
			{FirstName: "No key"},
			{FighterURL: "http://ufcstats.com/fighter-details/b"},
		},
		images: []document.FighterImageDocument{
			{FighterURL: "http://ufcstats.com/fighter-details/a", ImageURL: "https://img.example/a.png"},
		},
	}
	expectFighter(mock)
	expectFighter(mock)

	l := NewLoader(mock, src, 1, zap.NewNop())
	result := l.SeedFighters(context.Background())

	assert.Equal(t, 2, result.FightersUpserted)
	assert.Equal(t, 4, result.RowsUpserted)
	assert.Equal(t, 1, result.Rejected)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "validation")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedFightersRecordArgs(t *testing.T) {
	mock := newMock(t)
	url := "http://ufcstats.com/fighter-details/a"
	id, err := identity.ID(url)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO fighter \(`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO fighterrecord`).
		WithArgs(id, 20, 3, 1, 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	src := &stubSource{fighters: []document.FighterDocument{{FighterURL: url, FighterRecord: "20-3-1 (1 NC)"}}}
	result := NewLoader(mock, src, 1, zap.NewNop()).SeedFighters(context.Background())

	assert.Equal(t, 1, result.FightersUpserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedFightersRollsBackFailedWrite(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO fighter \(`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO fighterrecord`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()
	expectFighter(mock)

	src := &stubSource{fighters: []document.FighterDocument{
		{FighterURL: "http://ufcstats.com/fighter-details/a"},
		{FighterURL: "http://ufcstats.com/fighter-details/b"},
	}}
	result := NewLoader(mock, src, 1, zap.NewNop()).SeedFighters(context.Background())

	assert.Equal(t, 1, result.FightersUpserted)
	assert.Equal(t, 1, result.Rejected)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedFightersRejectsCollisions(t *testing.T) {
	mock := newMock(t)
	expectFighter(mock)

	// "k0" and "k2" share their last digit.
	src := &stubSource{fighters: []document.FighterDocument{{FighterURL: "k0"}, {FighterURL: "k2"}}}
	l := NewLoader(mock, src, 1, zap.NewNop())
	l.registries[transform.EntityFighter] = identity.NewRegistry(1)

	result := l.SeedFighters(context.Background())
	assert.Equal(t, 1, result.FightersUpserted)
	assert.Equal(t, 1, result.Rejected)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "collision")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedFightersSourceError(t *testing.T) {
	mock := newMock(t)
	src := &stubSource{err: errors.New("mongo down")}

	result := NewLoader(mock, src, 1, zap.NewNop()).SeedFighters(context.Background())
	assert.Zero(t, result.FightersUpserted)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "mongo down")
}

func TestSeedEvents(t *testing.T) {
	mock := newMock(t)
	src := &stubSource{events: []document.EventDocument{
		{
			Name:     "UFC 300",
			Date:     "Apr 13, 2024",
			Location: "Las Vegas",
			FightRefs: []document.FightRef{
				{FightURL: "http://ufcstats.com/fight-details/f1", CardPosition: "main"},
				{CardPosition: "prelim"},
			},
		},
		{Name: "UFC 301", Location: "Rio"},
	}}

	eventID, err := identity.ID("UFC 300")
	require.NoError(t, err)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO event \(`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`DELETE FROM eventfight`).WithArgs(eventID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO eventfight`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO eventfight`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	result, idx := NewLoader(mock, src, 1, zap.NewNop()).SeedEvents(context.Background())

	assert.Equal(t, 1, result.EventsUpserted)
	assert.Equal(t, 3, result.RowsUpserted)
	assert.Equal(t, 1, result.Rejected)
	require.NotNil(t, idx)
	assert.Equal(t, 1, idx.Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedFights(t *testing.T) {
	mock := newMock(t)
	fight := document.FightDocument{
		FightURL: "http://ufcstats.com/fight-details/f1",
		Fighter1: &document.FighterRef{FighterURL: "http://ufcstats.com/fighter-details/a", Status: "W"},
		Fighter2: &document.FighterRef{FighterURL: "http://ufcstats.com/fighter-details/b", Status: "L"},
	}
	src := &stubSource{
		events: []document.EventDocument{{
			Name:      "UFC 300",
			Date:      "Apr 13, 2024",
			Location:  "Las Vegas",
			FightRefs: []document.FightRef{{FightURL: fight.FightURL}},
		}},
		fights: []document.FightDocument{fight, {FightURL: "http://ufcstats.com/fight-details/f2"}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO fight \(`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for _, table := range []string{"fightstat", "scorecard", "fightbonus", "titlefight"} {
		mock.ExpectExec(`DELETE FROM ` + table).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	}
	mock.ExpectCommit()

	// Nil index: rebuilt from the source's events.
	result := NewLoader(mock, src, 1, zap.NewNop()).SeedFights(context.Background(), nil)

	assert.Equal(t, 1, result.FightsUpserted)
	assert.Equal(t, 1, result.RowsUpserted)
	assert.Equal(t, 1, result.Rejected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// nullEventID matches a fight written without an event.
type nullEventID struct{}

func (nullEventID) Match(v interface{}) bool {
	p, ok := v.(*int64)
	return ok && p == nil
}

func TestFightOnRejectedEventLoadsWithNullEventID(t *testing.T) {
	mock := newMock(t)
	fight := document.FightDocument{
		FightURL: "http://ufcstats.com/fight-details/f1",
		Fighter1: &document.FighterRef{FighterURL: "http://ufcstats.com/fighter-details/a", Status: "W"},
		Fighter2: &document.FighterRef{FighterURL: "http://ufcstats.com/fighter-details/b", Status: "L"},
	}
	src := &stubSource{
		// No date: the event is rejected and never written.
		events: []document.EventDocument{{
			Name:      "UFC 301",
			Location:  "Rio",
			FightRefs: []document.FightRef{{FightURL: fight.FightURL}},
		}},
		fights: []document.FightDocument{fight},
	}
	l := NewLoader(mock, src, 1, zap.NewNop())

	events, idx := l.SeedEvents(context.Background())
	assert.Equal(t, 1, events.Rejected)
	require.NotNil(t, idx)
	assert.Zero(t, idx.Len())

	args := []interface{}{pgxmock.AnyArg(), nullEventID{}}
	for i := 0; i < 12; i++ {
		args = append(args, pgxmock.AnyArg())
	}
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO fight \(`).WithArgs(args...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for _, table := range []string{"fightstat", "scorecard", "fightbonus", "titlefight"} {
		mock.ExpectExec(`DELETE FROM ` + table).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	}
	mock.ExpectCommit()

	fights := l.SeedFights(context.Background(), idx)
	assert.Equal(t, 1, fights.FightsUpserted)
	assert.Zero(t, fights.Rejected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedEventsSkipsFailedWritesInIndex(t *testing.T) {
	mock := newMock(t)
	src := &stubSource{events: []document.EventDocument{{
		Name:      "UFC 300",
		Date:      "Apr 13, 2024",
		Location:  "Las Vegas",
		FightRefs: []document.FightRef{{FightURL: "http://ufcstats.com/fight-details/f1"}},
	}}}
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO event \(`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	result, idx := NewLoader(mock, src, 1, zap.NewNop()).SeedEvents(context.Background())

	assert.Equal(t, 1, result.Rejected)
	require.NotNil(t, idx)
	assert.Zero(t, idx.Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunAllEmptySource(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO promotion`).WithArgs(int64(1), "UFC").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	result := NewLoader(mock, &stubSource{}, 2, zap.NewNop()).RunAll(context.Background())

	assert.Equal(t, 1, result.RowsUpserted)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "fighters=0 events=0 fights=0 rows=1 rejected=0 errors=0", result.Summary())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunAllStopsWhenPromotionFails(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO promotion`).WillReturnError(errors.New("no schema"))
	mock.ExpectRollback()

	result := NewLoader(mock, &stubSource{}, 1, zap.NewNop()).RunAll(context.Background())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "no schema")
	assert.NoError(t, mock.ExpectationsWereMet())
}
