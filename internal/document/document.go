// Package document defines the raw documents the scraper writes to MongoDB.
//
// All scalar fields are kept as the scraper's strings; interpretation
// happens in the normalize and transform packages. A missing field decodes
// to "". Tags carry both bson (MongoDB) and json (HTTP preview) names.
package document

import "go.mongodb.org/mongo-driver/bson/primitive"

// FighterDocument is one fighter profile. FighterURL is the natural key.
type FighterDocument struct {
	ObjectID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FighterURL    string             `bson:"fighter_ufcstats_url" json:"fighter_ufcstats_url"`
	FirstName     string             `bson:"first_name" json:"first_name"`
	LastName      string             `bson:"last_name" json:"last_name"`
	Nickname      string             `bson:"nickname" json:"nickname"`
	Height        string             `bson:"height" json:"height"`
	Weight        string             `bson:"weight" json:"weight"`
	Reach         string             `bson:"reach" json:"reach"`
	Stance        string             `bson:"stance" json:"stance"`
	FighterRecord string             `bson:"fighter_record" json:"fighter_record"`
	DateOfBirth   string             `bson:"date_of_birth" json:"date_of_birth"`
	FightURLs     []string           `bson:"fight_urls" json:"fight_urls"`
}

// FighterImageDocument links a fighter profile url to a portrait.
type FighterImageDocument struct {
	ObjectID   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FighterURL string             `bson:"fighter_ufcstats_url" json:"fighter_ufcstats_url"`
	ImageURL   string             `bson:"fighter_image_url" json:"fighter_image_url"`
}

// FightRef is an event's pointer to one bout on its card.
type FightRef struct {
	FightURL     string `bson:"fight_ufcstats_url" json:"fight_ufcstats_url"`
	CardPosition string `bson:"card_position" json:"card_position"`
}

// EventDocument is one event. Name is the natural key.
type EventDocument struct {
	ObjectID  primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Name      string             `bson:"event_name" json:"event_name"`
	Date      string             `bson:"event_date" json:"event_date"`
	Location  string             `bson:"event_location" json:"event_location"`
	Status    string             `bson:"event_status" json:"event_status"`
	EventURL  string             `bson:"event_ufcstats_url" json:"event_ufcstats_url"`
	FightRefs []FightRef         `bson:"fight_refs" json:"fight_refs"`
}

// FighterRef identifies one corner of a fight. Status is "W", "L", "D" or
// "NC" from that fighter's point of view.
type FighterRef struct {
	Name       string `bson:"name" json:"name"`
	FighterURL string `bson:"fighter_ufcstats_url" json:"fighter_ufcstats_url"`
	Status     string `bson:"fighter_status" json:"fighter_status"`
}

// FightDetails holds the bout summary block.
type FightDetails struct {
	EventURL              string `bson:"event_ufcstats_url" json:"event_ufcstats_url"`
	Method                string `bson:"method" json:"method"`
	Round                 string `bson:"round" json:"round"`
	Time                  string `bson:"time" json:"time"`
	TimeFormat            string `bson:"time_format" json:"time_format"`
	Referee               string `bson:"referee" json:"referee"`
	FinishDetails         string `bson:"finish_details" json:"finish_details"`
	FightOfTheNight       string `bson:"fight_of_the_night" json:"fight_of_the_night"`
	PerformanceOfTheNight string `bson:"performance_of_the_night" json:"performance_of_the_night"`
	WeightClass           string `bson:"weight_class" json:"weight_class"`
	TitleFight            string `bson:"title_fight" json:"title_fight"`
	Judge1Name            string `bson:"judge1_name" json:"judge1_name"`
	Judge1Score           string `bson:"judge1_score" json:"judge1_score"`
	Judge2Name            string `bson:"judge2_name" json:"judge2_name"`
	Judge2Score           string `bson:"judge2_score" json:"judge2_score"`
	Judge3Name            string `bson:"judge3_name" json:"judge3_name"`
	Judge3Score           string `bson:"judge3_score" json:"judge3_score"`
}

// Judges returns the (name, score) pairs in judge order.
func (d FightDetails) Judges() [3][2]string {
	return [3][2]string{
		{d.Judge1Name, d.Judge1Score},
		{d.Judge2Name, d.Judge2Score},
		{d.Judge3Name, d.Judge3Score},
	}
}

// PerFighterRoundStats is one fighter's line for one round. Strike fields
// read "landed of attempted".
type PerFighterRoundStats struct {
	Knockdowns      string `bson:"kd" json:"kd"`
	FighterURL      string `bson:"fighter_ufcstats_url" json:"fighter_ufcstats_url"`
	SigStrikes      string `bson:"sig_strikes" json:"sig_strikes"`
	TotalStrikes    string `bson:"total_strikes" json:"total_strikes"`
	Takedowns       string `bson:"takedowns" json:"takedowns"`
	SubAttempts     string `bson:"sub_attempts" json:"sub_attempts"`
	Reversals       string `bson:"reversals" json:"reversals"`
	ControlTime     string `bson:"control_time" json:"control_time"`
	HeadStrikes     string `bson:"head_strikes" json:"head_strikes"`
	BodyStrikes     string `bson:"body_strikes" json:"body_strikes"`
	LegStrikes      string `bson:"leg_strikes" json:"leg_strikes"`
	DistanceStrikes string `bson:"distance_strikes" json:"distance_strikes"`
	ClinchStrikes   string `bson:"clinch_strikes" json:"clinch_strikes"`
	GroundStrikes   string `bson:"ground_strikes" json:"ground_strikes"`
}

// RoundStats pairs both fighters' lines for a round.
type RoundStats struct {
	Fighter1 PerFighterRoundStats `bson:"fighter1" json:"fighter1"`
	Fighter2 PerFighterRoundStats `bson:"fighter2" json:"fighter2"`
}

// FightDocument is one bout. FightURL is the natural key. FightStats is
// keyed by round number as a decimal string.
type FightDocument struct {
	ObjectID   primitive.ObjectID    `bson:"_id,omitempty" json:"-"`
	FightURL   string                `bson:"fight_ufcstats_url" json:"fight_ufcstats_url"`
	Fighter1   *FighterRef           `bson:"fighter1" json:"fighter1"`
	Fighter2   *FighterRef           `bson:"fighter2" json:"fighter2"`
	Details    *FightDetails         `bson:"fight_details" json:"fight_details"`
	FightStats map[string]RoundStats `bson:"fight_stats" json:"fight_stats"`
}
