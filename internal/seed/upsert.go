package seed

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fightgraphs/pipeline/internal/config"
	"github.com/fightgraphs/pipeline/internal/entity"
	"github.com/fightgraphs/pipeline/internal/transform"
)

// Execer runs a statement. pgx.Tx, pgx.Conn and pgxpool.Pool satisfy it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// --------------------------------------------------------------------------
// Fighters and events
// --------------------------------------------------------------------------

// UpsertPromotion writes a promotion row.
func UpsertPromotion(ctx context.Context, db Execer, p entity.Promotion) error {
	_, err := db.Exec(ctx, `INSERT INTO `+config.PromotionTable+` (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
		p.ID, p.Name,
	)
	return err
}

// UpsertFighter writes a fighter profile.
func UpsertFighter(ctx context.Context, db Execer, f entity.Fighter) error {
	_, err := db.Exec(ctx, `INSERT INTO `+config.FighterTable+` (
			id, first_name, last_name, nickname, date_of_birth,
			height_cm, weight_kg, reach_cm, stance, image_url, ufcstats_url
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			nickname = EXCLUDED.nickname,
			date_of_birth = EXCLUDED.date_of_birth,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			reach_cm = EXCLUDED.reach_cm,
			stance = EXCLUDED.stance,
			image_url = COALESCE(EXCLUDED.image_url, `+config.FighterTable+`.image_url),
			ufcstats_url = EXCLUDED.ufcstats_url,
			updated_at = NOW()`,
		f.ID, f.FirstName, f.LastName, f.Nickname, f.DateOfBirth,
		f.HeightCm, f.WeightKg, f.ReachCm, f.Stance, f.ImageURL, f.UFCStatsURL,
	)
	return err
}

// UpsertFighterRecord writes a fighter's tally.
func UpsertFighterRecord(ctx context.Context, db Execer, r entity.FighterRecord) error {
	_, err := db.Exec(ctx, `INSERT INTO `+config.FighterRecordTable+` (
			fighter_id, wins, losses, draws, no_contests
		) VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (fighter_id) DO UPDATE SET
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			draws = EXCLUDED.draws,
			no_contests = EXCLUDED.no_contests`,
		r.FighterID, r.Wins, r.Losses, r.Draws, r.NoContests,
	)
	return err
}

// UpsertEvent writes an event row.
func UpsertEvent(ctx context.Context, db Execer, e entity.Event) error {
	_, err := db.Exec(ctx, `INSERT INTO `+config.EventTable+` (
			id, name, date, location, status, ufcstats_url, promotion_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			date = EXCLUDED.date,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			ufcstats_url = EXCLUDED.ufcstats_url,
			promotion_id = EXCLUDED.promotion_id,
			updated_at = NOW()`,
		e.ID, e.Name, e.Date, e.Location, e.Status, e.UFCStatsURL, e.PromotionID,
	)
	return err
}

// ReplaceEventCard rewrites an event's card so it matches the source order.
// Returns the number of rows inserted.
func ReplaceEventCard(ctx context.Context, db Execer, eventID int64, card []entity.EventFight) (int, error) {
	if _, err := db.Exec(ctx, `DELETE FROM `+config.EventFightTable+` WHERE event_id = $1`, eventID); err != nil {
		return 0, fmt.Errorf("clear card: %w", err)
	}
	for i, ef := range card {
		_, err := db.Exec(ctx, `INSERT INTO `+config.EventFightTable+` (
				event_id, position, fight_id, card_position
			) VALUES ($1,$2,$3,$4)`,
			ef.EventID, i, ef.FightID, ef.CardPosition,
		)
		if err != nil {
			return i, fmt.Errorf("insert card position %d: %w", i, err)
		}
	}
	return len(card), nil
}

// --------------------------------------------------------------------------
// Fight lookups
// --------------------------------------------------------------------------

// Lookup rows are a pure function of their id; an existing row is kept.

func upsertNamed(ctx context.Context, db Execer, table string, id int64, name string) error {
	_, err := db.Exec(ctx, `INSERT INTO `+table+` (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`,
		id, name,
	)
	return err
}

// UpsertTimeFormat writes a time format row.
func UpsertTimeFormat(ctx context.Context, db Execer, tf entity.TimeFormat) error {
	_, err := db.Exec(ctx, `INSERT INTO `+config.TimeFormatTable+` (
			id, format_string, base_rounds, base_round_duration,
			overtime_rounds, overtime_duration, unlimited_rounds, no_time_limit
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO NOTHING`,
		tf.ID, tf.FormatString, tf.BaseRounds, tf.BaseRoundDuration,
		tf.OvertimeRounds, tf.OvertimeDuration, tf.UnlimitedRounds, tf.NoTimeLimit,
	)
	return err
}

// UpsertWeightClass writes a weight class row.
func UpsertWeightClass(ctx context.Context, db Execer, wc entity.WeightClass) error {
	_, err := db.Exec(ctx, `INSERT INTO `+config.WeightClassTable+` (
			id, name, gender, promotion_id
		) VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO NOTHING`,
		wc.ID, wc.Name, wc.Gender, wc.PromotionID,
	)
	return err
}

// UpsertTitle writes a title row.
func UpsertTitle(ctx context.Context, db Execer, t entity.Title) error {
	_, err := db.Exec(ctx, `INSERT INTO `+config.TitleTable+` (
			id, name, title_type, is_active, weightclass_id
		) VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO NOTHING`,
		t.ID, t.Name, t.TitleType, t.IsActive, t.WeightClassID,
	)
	return err
}

// --------------------------------------------------------------------------
// Fights
// --------------------------------------------------------------------------

// UpsertFight writes the fight row itself.
func UpsertFight(ctx context.Context, db Execer, f entity.Fight) error {
	_, err := db.Exec(ctx, `INSERT INTO `+config.FightTable+` (
			id, event_id, fighter1_id, fighter2_id, winner_id, method,
			finish_details, round_finished, time_finished_seconds,
			time_format_id, weight_class_id, referee_id, is_title_fight, ufcstats_url
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (id) DO UPDATE SET
			event_id = COALESCE(EXCLUDED.event_id, `+config.FightTable+`.event_id),
			fighter1_id = EXCLUDED.fighter1_id,
			fighter2_id = EXCLUDED.fighter2_id,
			winner_id = EXCLUDED.winner_id,
			method = EXCLUDED.method,
			finish_details = EXCLUDED.finish_details,
			round_finished = EXCLUDED.round_finished,
			time_finished_seconds = EXCLUDED.time_finished_seconds,
			time_format_id = EXCLUDED.time_format_id,
			weight_class_id = EXCLUDED.weight_class_id,
			referee_id = EXCLUDED.referee_id,
			is_title_fight = EXCLUDED.is_title_fight,
			updated_at = NOW()`,
		f.ID, f.EventID, f.Fighter1ID, f.Fighter2ID, f.WinnerID, f.Method,
		f.FinishDetails, f.RoundFinished, f.TimeFinishedSeconds,
		f.TimeFormatID, f.WeightClassID, f.RefereeID, f.IsTitleFight, f.UFCStatsURL,
	)
	return err
}

// UpsertFightStat writes one fighter's round line.
func UpsertFightStat(ctx context.Context, db Execer, s entity.FightStat) error {
	_, err := db.Exec(ctx, `INSERT INTO `+config.FightStatTable+` (
			id, fight_id, fighter_id, round, knockdowns,
			significant_strikes_landed, significant_strikes_attempted,
			total_strikes_landed, total_strikes_attempted,
			head_strikes_landed, head_strikes_attempted,
			body_strikes_landed, body_strikes_attempted,
			leg_strikes_landed, leg_strikes_attempted,
			distance_strikes_landed, distance_strikes_attempted,
			clinch_strikes_landed, clinch_strikes_attempted,
			ground_strikes_landed, ground_strikes_attempted,
			takedowns_landed, takedowns_attempted,
			submissions_attempted, reversals, control_time_seconds
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26)`,
		s.ID, s.FightID, s.FighterID, s.Round, s.Knockdowns,
		s.SignificantStrikesLanded, s.SignificantStrikesTried,
		s.TotalStrikesLanded, s.TotalStrikesTried,
		s.HeadStrikesLanded, s.HeadStrikesTried,
		s.BodyStrikesLanded, s.BodyStrikesTried,
		s.LegStrikesLanded, s.LegStrikesTried,
		s.DistanceStrikesLanded, s.DistanceStrikesTried,
		s.ClinchStrikesLanded, s.ClinchStrikesTried,
		s.GroundStrikesLanded, s.GroundStrikesTried,
		s.TakedownsLanded, s.TakedownsTried,
		s.SubmissionsAttempted, s.Reversals, s.ControlTimeSeconds,
	)
	return err
}

// clearFightChildren removes a fight's dependent rows so a reload reflects
// the current document exactly.
func clearFightChildren(ctx context.Context, db Execer, fightID int64) error {
	for _, table := range []string{
		config.FightStatTable,
		config.ScorecardTable,
		config.FightBonusTable,
		config.TitleFightTable,
	} {
		if _, err := db.Exec(ctx, `DELETE FROM `+table+` WHERE fight_id = $1`, fightID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// byID returns a copy of items sorted by id with repeated ids dropped.
func byID[T any](items []T, id func(T) int64) []T {
	out := make([]T, 0, len(items))
	out = append(out, items...)
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	n := 0
	for i, it := range out {
		if i > 0 && id(it) == id(out[n-1]) {
			continue
		}
		out[n] = it
		n++
	}
	return out[:n]
}

// WriteFight stores everything a fight document mapped to: lookup rows,
// the fight, then its children. Returns the number of rows written.
func WriteFight(ctx context.Context, db Execer, m transform.MappedFight) (int, error) {
	rows := 0
	step := func(what string, err error) error {
		if err != nil {
			return fmt.Errorf("%s: %w", what, err)
		}
		rows++
		return nil
	}

	if m.Referee != nil {
		if err := step("referee", upsertNamed(ctx, db, config.RefereeTable, m.Referee.ID, m.Referee.Name)); err != nil {
			return rows, err
		}
	}
	if m.TimeFormat != nil {
		if err := step("time format", UpsertTimeFormat(ctx, db, *m.TimeFormat)); err != nil {
			return rows, err
		}
	}
	if m.WeightClass != nil {
		if err := step("weight class", UpsertWeightClass(ctx, db, *m.WeightClass)); err != nil {
			return rows, err
		}
	}
	if m.Title != nil {
		if err := step("title", UpsertTitle(ctx, db, *m.Title)); err != nil {
			return rows, err
		}
	}
	// Lookup rows go in ascending id order so concurrent fights sharing
	// judges or bonuses take their row locks in the same order.
	for _, j := range byID(m.Judges, func(j entity.Judge) int64 { return j.ID }) {
		if err := step("judge", upsertNamed(ctx, db, config.JudgeTable, j.ID, j.Name)); err != nil {
			return rows, err
		}
	}
	for _, b := range byID(m.Bonuses, func(b entity.Bonus) int64 { return b.ID }) {
		if err := step("bonus", upsertNamed(ctx, db, config.BonusTable, b.ID, b.Name)); err != nil {
			return rows, err
		}
	}

	if err := step("fight", UpsertFight(ctx, db, m.Fight)); err != nil {
		return rows, err
	}
	if err := clearFightChildren(ctx, db, m.Fight.ID); err != nil {
		return rows, err
	}

	for _, s := range m.Stats {
		if err := step(fmt.Sprintf("round %d stats", s.Round), UpsertFightStat(ctx, db, s)); err != nil {
			return rows, err
		}
	}
	for _, sc := range m.Scorecards {
		_, err := db.Exec(ctx, `INSERT INTO `+config.ScorecardTable+` (
				id, fight_id, judge_id, fighter_id, scorecard
			) VALUES ($1,$2,$3,$4,$5)`,
			sc.ID, sc.FightID, sc.JudgeID, sc.FighterID, sc.Score,
		)
		if err := step("scorecard", err); err != nil {
			return rows, err
		}
	}
	for _, fb := range m.FightBonuses {
		_, err := db.Exec(ctx, `INSERT INTO `+config.FightBonusTable+` (
				id, amount, fight_id, fighter_id, bonus_id
			) VALUES ($1,$2,$3,$4,$5)`,
			fb.ID, fb.Amount, fb.FightID, fb.FighterID, fb.BonusID,
		)
		if err := step("fight bonus", err); err != nil {
			return rows, err
		}
	}
	if m.TitleFight != nil {
		_, err := db.Exec(ctx, `INSERT INTO `+config.TitleFightTable+` (
				id, fight_id, title_id
			) VALUES ($1,$2,$3)`,
			m.TitleFight.ID, m.TitleFight.FightID, m.TitleFight.TitleID,
		)
		if err := step("title fight", err); err != nil {
			return rows, err
		}
	}
	return rows, nil
}
