// Package entity defines the normalized relational rows the mappers emit
// and the loader writes to Postgres. These structs are the contract between
// the transform and seed packages; column names follow the json tags.
//
// Every ID is a surrogate derived from a natural key by the identity
// package, so rows can reference each other before either is stored.
package entity

import "time"

// PromotionID is the single promotion every event belongs to.
const PromotionID int64 = 1

// PromotionName is the display name of PromotionID.
const PromotionName = "UFC"

// Promotion is an organisation running events.
type Promotion struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Fighter is a fighter profile. ID derives from UFCStatsURL.
type Fighter struct {
	ID          int64      `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Nickname    *string    `json:"nickname"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	HeightCm    *float64   `json:"height_cm"`
	WeightKg    *float64   `json:"weight_kg"`
	ReachCm     *float64   `json:"reach_cm"`
	Stance      *string    `json:"stance"`
	ImageURL    *string    `json:"image_url"`
	UFCStatsURL string     `json:"ufcstats_url"`
}

// FighterRecord is a fighter's career tally, one row per fighter. The
// counts are never null.
type FighterRecord struct {
	FighterID  int64 `json:"fighter_id"`
	Wins       int   `json:"wins"`
	Losses     int   `json:"losses"`
	Draws      int   `json:"draws"`
	NoContests int   `json:"no_contests"`
}

// Event is a fight card. ID derives from Name.
type Event struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Date        *time.Time `json:"date"`
	Location    string     `json:"location"`
	Status      *string    `json:"status"`
	UFCStatsURL *string    `json:"ufcstats_url"`
	PromotionID int64      `json:"promotion_id"`
}

// EventFight places a fight on an event's card. FightID is nil when the
// source ref carried no url.
type EventFight struct {
	EventID      int64   `json:"event_id"`
	FightID      *int64  `json:"fight_id"`
	CardPosition *string `json:"card_position"`
}

// Fight is one bout. ID derives from UFCStatsURL.
type Fight struct {
	ID                  int64   `json:"id"`
	EventID             *int64  `json:"event_id"`
	Fighter1ID          int64   `json:"fighter1_id"`
	Fighter2ID          int64   `json:"fighter2_id"`
	WinnerID            *int64  `json:"winner_id"`
	Method              *string `json:"method"`
	FinishDetails       *string `json:"finish_details"`
	RoundFinished       *int    `json:"round_finished"`
	TimeFinishedSeconds *int    `json:"time_finished_seconds"`
	TimeFormatID        *int64  `json:"time_format_id"`
	WeightClassID       *int64  `json:"weight_class_id"`
	RefereeID           *int64  `json:"referee_id"`
	IsTitleFight        bool    `json:"is_title_fight"`
	UFCStatsURL         string  `json:"ufcstats_url"`
}

// FightStat is one fighter's numbers for one round of a fight.
type FightStat struct {
	ID                       int64 `json:"id"`
	FightID                  int64 `json:"fight_id"`
	FighterID                int64 `json:"fighter_id"`
	Round                    int   `json:"round"`
	Knockdowns               int   `json:"knockdowns"`
	SignificantStrikesLanded int   `json:"significant_strikes_landed"`
	SignificantStrikesTried  int   `json:"significant_strikes_attempted"`
	TotalStrikesLanded       int   `json:"total_strikes_landed"`
	TotalStrikesTried        int   `json:"total_strikes_attempted"`
	HeadStrikesLanded        int   `json:"head_strikes_landed"`
	HeadStrikesTried         int   `json:"head_strikes_attempted"`
	BodyStrikesLanded        int   `json:"body_strikes_landed"`
	BodyStrikesTried         int   `json:"body_strikes_attempted"`
	LegStrikesLanded         int   `json:"leg_strikes_landed"`
	LegStrikesTried          int   `json:"leg_strikes_attempted"`
	DistanceStrikesLanded    int   `json:"distance_strikes_landed"`
	DistanceStrikesTried     int   `json:"distance_strikes_attempted"`
	ClinchStrikesLanded      int   `json:"clinch_strikes_landed"`
	ClinchStrikesTried       int   `json:"clinch_strikes_attempted"`
	GroundStrikesLanded      int   `json:"ground_strikes_landed"`
	GroundStrikesTried       int   `json:"ground_strikes_attempted"`
	TakedownsLanded          int   `json:"takedowns_landed"`
	TakedownsTried           int   `json:"takedowns_attempted"`
	SubmissionsAttempted     int   `json:"submissions_attempted"`
	Reversals                int   `json:"reversals"`
	ControlTimeSeconds       int   `json:"control_time_seconds"`
}

// TimeFormat is a scheduled round structure. ID derives from FormatString.
// Durations are seconds.
type TimeFormat struct {
	ID                int64  `json:"id"`
	FormatString      string `json:"format_string"`
	BaseRounds        *int   `json:"base_rounds"`
	BaseRoundDuration *int   `json:"base_round_duration"`
	OvertimeRounds    int    `json:"overtime_rounds"`
	OvertimeDuration  *int   `json:"overtime_duration"`
	UnlimitedRounds   bool   `json:"unlimited_rounds"`
	NoTimeLimit       bool   `json:"no_time_limit"`
}

// Referee officiates fights. ID derives from Name.
type Referee struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Judge scores fights. ID derives from Name.
type Judge struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// WeightClass is a division. ID derives from Name.
type WeightClass struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	PromotionID int64  `json:"promotion_id"`
}

// Title is a championship belt for a weight class.
type Title struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	TitleType     string `json:"title_type"`
	IsActive      bool   `json:"is_active"`
	WeightClassID int64  `json:"weight_class_id"`
}

// TitleFight marks a fight as contested for a title.
type TitleFight struct {
	ID      int64 `json:"id"`
	FightID int64 `json:"fight_id"`
	TitleID int64 `json:"title_id"`
}

// Bonus is a kind of post-fight award. ID derives from Name.
type Bonus struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FightBonus awards a Bonus to a fighter for a fight. Amount is unknown to
// the source and stays nil.
type FightBonus struct {
	ID        int64    `json:"id"`
	FightID   int64    `json:"fight_id"`
	FighterID int64    `json:"fighter_id"`
	BonusID   int64    `json:"bonus_id"`
	Amount    *float64 `json:"amount"`
}

// Scorecard is one judge's score for one fighter.
type Scorecard struct {
	ID        int64 `json:"id"`
	FightID   int64 `json:"fight_id"`
	JudgeID   int64 `json:"judge_id"`
	FighterID int64 `json:"fighter_id"`
	Score     int   `json:"scorecard"`
}
