package transform

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/fightgraphs/pipeline/internal/document"
	"github.com/fightgraphs/pipeline/internal/entity"
	"github.com/fightgraphs/pipeline/internal/normalize"
)

// Bonus names.
const (
	BonusFightOfTheNight       = "Fight of the Night"
	BonusPerformanceOfTheNight = "Performance of the Night"
)

// Weight class names, longest first so "Light Heavyweight" is matched
// before "Heavyweight".
var weightClasses = []string{
	"Super Heavyweight",
	"Light Heavyweight",
	"Super Lightweight",
	"Heavyweight",
	"Middleweight",
	"Welterweight",
	"Lightweight",
	"Featherweight",
	"Bantamweight",
	"Flyweight",
	"Strawweight",
	"Catch Weight",
	"Open Weight",
}

// MappedFight is everything one fight document produces. Lookup rows
// (referee, judges, ...) are repeated across fights and upserted by id.
type MappedFight struct {
	Fight        entity.Fight        `json:"fight"`
	Stats        []entity.FightStat  `json:"stats"`
	Referee      *entity.Referee     `json:"referee,omitempty"`
	TimeFormat   *entity.TimeFormat  `json:"time_format,omitempty"`
	WeightClass  *entity.WeightClass `json:"weight_class,omitempty"`
	Title        *entity.Title       `json:"title,omitempty"`
	TitleFight   *entity.TitleFight  `json:"title_fight,omitempty"`
	Judges       []entity.Judge      `json:"judges,omitempty"`
	Scorecards   []entity.Scorecard  `json:"scorecards,omitempty"`
	Bonuses      []entity.Bonus      `json:"bonuses,omitempty"`
	FightBonuses []entity.FightBonus `json:"fight_bonuses,omitempty"`
}

type corner struct {
	id  int64
	url string
	ref *document.FighterRef
}

// MapFight maps a fight document. Fighter ids derive from the fighters'
// profile urls, matching the ids MapFighter assigns. eventID may be nil
// when the fight's event is unknown.
func MapFight(doc document.FightDocument, eventID *int64) (MappedFight, error) {
	id, err := deriveID(EntityFight, "fight_ufcstats_url", doc.FightURL)
	if err != nil {
		return MappedFight{}, err
	}
	c1, err := mapCorner(doc.FightURL, "fighter1", doc.Fighter1)
	if err != nil {
		return MappedFight{}, err
	}
	c2, err := mapCorner(doc.FightURL, "fighter2", doc.Fighter2)
	if err != nil {
		return MappedFight{}, err
	}

	d := document.FightDetails{}
	if doc.Details != nil {
		d = *doc.Details
	}

	m := MappedFight{
		Fight: entity.Fight{
			ID:                  id,
			EventID:             eventID,
			Fighter1ID:          c1.id,
			Fighter2ID:          c2.id,
			WinnerID:            winner(c1, c2),
			Method:              normalize.OptionalText(d.Method),
			FinishDetails:       normalize.OptionalText(d.FinishDetails),
			RoundFinished:       normalize.Round(d.Round),
			TimeFinishedSeconds: normalize.Clock(d.Time),
			UFCStatsURL:         doc.FightURL,
		},
	}

	m.Stats = mapRoundStats(doc, id, c1, c2)
	if m.Fight.RoundFinished == nil && len(m.Stats) > 0 {
		last := m.Stats[len(m.Stats)-1].Round
		m.Fight.RoundFinished = &last
	}

	if name := normalize.Text(d.Referee); name != "" {
		m.Referee = &entity.Referee{ID: childID(name), Name: name}
		m.Fight.RefereeID = &m.Referee.ID
	}

	if tf := normalize.ParseTimeFormat(d.TimeFormat); tf != nil {
		m.TimeFormat = &entity.TimeFormat{
			ID:                childID(tf.FormatString),
			FormatString:      tf.FormatString,
			BaseRounds:        tf.BaseRounds,
			BaseRoundDuration: tf.BaseRoundDuration,
			OvertimeRounds:    tf.OvertimeRounds,
			OvertimeDuration:  tf.OvertimeDuration,
			UnlimitedRounds:   tf.UnlimitedRounds,
			NoTimeLimit:       tf.NoTimeLimit,
		}
		m.Fight.TimeFormatID = &m.TimeFormat.ID
	}

	bout := normalize.Text(d.WeightClass)
	m.WeightClass = parseWeightClass(bout)
	if m.WeightClass != nil {
		m.Fight.WeightClassID = &m.WeightClass.ID
	}

	m.Fight.IsTitleFight = normalize.Flag(d.TitleFight) || strings.Contains(strings.ToLower(bout), "title")
	if m.Fight.IsTitleFight && m.WeightClass != nil {
		m.Title = titleFor(bout, m.WeightClass)
		m.TitleFight = &entity.TitleFight{
			ID:      childID(doc.FightURL, m.Title.Name),
			FightID: id,
			TitleID: m.Title.ID,
		}
	}

	mapScorecards(&m, d, c1, c2)
	mapBonuses(&m, d, c1, c2)
	return m, nil
}

func mapCorner(fightURL, field string, ref *document.FighterRef) (corner, error) {
	if ref == nil {
		return corner{}, &ValidationError{Entity: EntityFight, NaturalKey: fightURL, Field: field, Err: ErrMissingFighter}
	}
	id, err := deriveID(EntityFight, field+".fighter_ufcstats_url", ref.FighterURL)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			ve.NaturalKey = fightURL
		}
		return corner{}, err
	}
	return corner{id: id, url: ref.FighterURL, ref: ref}, nil
}

func winner(c1, c2 corner) *int64 {
	for _, c := range []corner{c1, c2} {
		if strings.EqualFold(strings.TrimSpace(c.ref.Status), "W") {
			id := c.id
			return &id
		}
	}
	return nil
}

// mapRoundStats emits one row per (round, fighter), rounds in numeric order.
// Keys that are not positive integers are skipped. When two keys name the
// same round ("1" and "01") the canonical spelling wins, then the smaller key.
func mapRoundStats(doc document.FightDocument, fightID int64, c1, c2 corner) []entity.FightStat {
	rounds := make([]int, 0, len(doc.FightStats))
	keys := make(map[int]string, len(doc.FightStats))
	for k := range doc.FightStats {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil || n < 1 {
			continue
		}
		prev, seen := keys[n]
		if !seen {
			rounds = append(rounds, n)
			keys[n] = k
			continue
		}
		canonical := strconv.Itoa(n)
		if prev != canonical && (k == canonical || k < prev) {
			keys[n] = k
		}
	}
	sort.Ints(rounds)

	out := make([]entity.FightStat, 0, 2*len(rounds))
	for _, n := range rounds {
		rs := doc.FightStats[keys[n]]
		out = append(out,
			mapFighterRound(doc.FightURL, fightID, n, c1, rs.Fighter1),
			mapFighterRound(doc.FightURL, fightID, n, c2, rs.Fighter2),
		)
	}
	return out
}

func mapFighterRound(fightURL string, fightID int64, round int, c corner, s document.PerFighterRoundStats) entity.FightStat {
	url := c.url
	fighterID := c.id
	if s.FighterURL != "" {
		if id := optionalID(s.FighterURL); id != nil {
			url, fighterID = s.FighterURL, *id
		}
	}

	st := entity.FightStat{
		ID:                   childID(fightURL, strconv.Itoa(round), url),
		FightID:              fightID,
		FighterID:            fighterID,
		Round:                round,
		Knockdowns:           normalize.Count(s.Knockdowns),
		SubmissionsAttempted: normalize.Count(s.SubAttempts),
		Reversals:            normalize.Count(s.Reversals),
		ControlTimeSeconds:   normalize.ControlTime(s.ControlTime),
	}
	st.SignificantStrikesLanded, st.SignificantStrikesTried = normalize.LandedAttempted(s.SigStrikes)
	st.TotalStrikesLanded, st.TotalStrikesTried = normalize.LandedAttempted(s.TotalStrikes)
	st.HeadStrikesLanded, st.HeadStrikesTried = normalize.LandedAttempted(s.HeadStrikes)
	st.BodyStrikesLanded, st.BodyStrikesTried = normalize.LandedAttempted(s.BodyStrikes)
	st.LegStrikesLanded, st.LegStrikesTried = normalize.LandedAttempted(s.LegStrikes)
	st.DistanceStrikesLanded, st.DistanceStrikesTried = normalize.LandedAttempted(s.DistanceStrikes)
	st.ClinchStrikesLanded, st.ClinchStrikesTried = normalize.LandedAttempted(s.ClinchStrikes)
	st.GroundStrikesLanded, st.GroundStrikesTried = normalize.LandedAttempted(s.GroundStrikes)
	st.TakedownsLanded, st.TakedownsTried = normalize.LandedAttempted(s.Takedowns)
	return st
}

// parseWeightClass reads the division out of a bout description such as
// "UFC Women's Strawweight Title Bout".
func parseWeightClass(bout string) *entity.WeightClass {
	if bout == "" {
		return nil
	}
	lower := strings.ToLower(bout)
	for _, wc := range weightClasses {
		if !strings.Contains(lower, strings.ToLower(wc)) {
			continue
		}
		name, gender := wc, "Male"
		if strings.Contains(lower, "women's") {
			name, gender = "Women's "+wc, "Female"
		}
		return &entity.WeightClass{
			ID:          childID(name),
			Name:        name,
			Gender:      gender,
			PromotionID: entity.PromotionID,
		}
	}
	return nil
}

func titleFor(bout string, wc *entity.WeightClass) *entity.Title {
	lower := strings.ToLower(bout)
	titleType := "undisputed"
	switch {
	case strings.Contains(lower, "interim"):
		titleType = "interim"
	case strings.Contains(lower, "tournament"):
		titleType = "tournament"
	}

	name := entity.PromotionName + " " + wc.Name + " Championship"
	if titleType != "undisputed" {
		name = entity.PromotionName + " " + strings.ToUpper(titleType[:1]) + titleType[1:] + " " + wc.Name + " Championship"
	}
	return &entity.Title{
		ID:            childID(name),
		Name:          name,
		TitleType:     titleType,
		IsActive:      true,
		WeightClassID: wc.ID,
	}
}

// mapScorecards emits a judge and two scorecards for every judge with a
// readable "a - b" score, a going to fighter1.
func mapScorecards(m *MappedFight, d document.FightDetails, c1, c2 corner) {
	for _, j := range d.Judges() {
		name := normalize.Text(j[0])
		first, second, ok := normalize.Score(j[1])
		if name == "" || !ok {
			continue
		}
		judge := entity.Judge{ID: childID(name), Name: name}
		m.Judges = append(m.Judges, judge)
		m.Scorecards = append(m.Scorecards,
			entity.Scorecard{
				ID:        childID(m.Fight.UFCStatsURL, name, c1.url),
				FightID:   m.Fight.ID,
				JudgeID:   judge.ID,
				FighterID: c1.id,
				Score:     first,
			},
			entity.Scorecard{
				ID:        childID(m.Fight.UFCStatsURL, name, c2.url),
				FightID:   m.Fight.ID,
				JudgeID:   judge.ID,
				FighterID: c2.id,
				Score:     second,
			},
		)
	}
}

// mapBonuses awards fight of the night to both fighters. Performance of the
// night goes to the fighter the field names, or to the winner when the
// field is only a flag.
func mapBonuses(m *MappedFight, d document.FightDetails, c1, c2 corner) {
	if normalize.Flag(d.FightOfTheNight) {
		addBonus(m, BonusFightOfTheNight, c1, c2)
	}

	potn := strings.TrimSpace(d.PerformanceOfTheNight)
	if potn == "" || potn == normalize.Missing {
		return
	}
	for _, c := range []corner{c1, c2} {
		if potn == c.url || strings.EqualFold(potn, normalize.Text(c.ref.Name)) {
			addBonus(m, BonusPerformanceOfTheNight, c)
			return
		}
	}
	if normalize.Flag(potn) && m.Fight.WinnerID != nil {
		if *m.Fight.WinnerID == c1.id {
			addBonus(m, BonusPerformanceOfTheNight, c1)
		} else {
			addBonus(m, BonusPerformanceOfTheNight, c2)
		}
	}
}

func addBonus(m *MappedFight, name string, corners ...corner) {
	bonus := entity.Bonus{ID: childID(name), Name: name}
	m.Bonuses = append(m.Bonuses, bonus)
	for _, c := range corners {
		m.FightBonuses = append(m.FightBonuses, entity.FightBonus{
			ID:        childID(m.Fight.UFCStatsURL, name, c.url),
			FightID:   m.Fight.ID,
			FighterID: c.id,
			BonusID:   bonus.ID,
		})
	}
}

// MapFightsBatch maps every fight, resolving event ids through idx.
// Failures are reported together, as in MapFightersBatch.
func MapFightsBatch(docs []document.FightDocument, idx *EventIndex) ([]MappedFight, error) {
	out := make([]MappedFight, 0, len(docs))
	var errs []error
	for _, doc := range docs {
		m, err := MapFight(doc, idx.EventFor(doc))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, m)
	}
	return out, errors.Join(errs...)
}
