package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	clockRe      = regexp.MustCompile(`^(\d+):(\d{1,2})$`)
	ofRe         = regexp.MustCompile(`^(\d+)\s+of\s+(\d+)$`)
	scoreRe      = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)$`)
	timeFormatRe = regexp.MustCompile(`(?i)^(\d+|unlimited)\s+rnds?(?:\s*\+\s*(\d*)\s*ot)?\s*\(([\d\s-]+)\)`)
)

// TimeFormat describes a bout's scheduled rounds. Durations are seconds.
type TimeFormat struct {
	FormatString      string
	BaseRounds        *int
	BaseRoundDuration *int
	OvertimeRounds    int
	OvertimeDuration  *int
	UnlimitedRounds   bool
	NoTimeLimit       bool
}

// LandedAttempted splits a "12 of 30" counter. Anything else is 0 of 0.
func LandedAttempted(s string) (landed, attempted int) {
	if blank(s) {
		return 0, 0
	}
	m := ofRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0
	}
	return atoi(m[1]), atoi(m[2])
}

// Count parses a plain integer counter, defaulting to 0.
func Count(s string) int {
	if blank(s) {
		return 0
	}
	return atoi(strings.TrimSpace(s))
}

// Clock parses an "m:ss" clock reading into seconds.
func Clock(s string) *int {
	if blank(s) {
		return nil
	}
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil
	}
	secs := atoi(m[1])*60 + atoi(m[2])
	return &secs
}

// ControlTime is Clock with a zero default, for per-round control time.
func ControlTime(s string) int {
	if c := Clock(s); c != nil {
		return *c
	}
	return 0
}

// Round parses a positive round number.
func Round(s string) *int {
	if blank(s) {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return nil
	}
	return &n
}

// Score splits a judge's "29 - 28" card into the two fighters' scores.
func Score(s string) (first, second int, ok bool) {
	if blank(s) {
		return 0, 0, false
	}
	m := scoreRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, false
	}
	return atoi(m[1]), atoi(m[2]), true
}

// Flag reads the scraper's truthy markers.
func Flag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "x":
		return true
	}
	return false
}

// ParseTimeFormat reads strings such as "3 Rnd (5-5-5)",
// "1 Rnd + OT (12-3)", "Unlimited Rnd (10)" and "No Time Limit".
func ParseTimeFormat(s string) *TimeFormat {
	if blank(s) {
		return nil
	}
	s = strings.Join(strings.Fields(s), " ")
	if strings.EqualFold(s, "No Time Limit") {
		return &TimeFormat{FormatString: s, NoTimeLimit: true}
	}

	m := timeFormatRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}

	tf := &TimeFormat{FormatString: s}
	var durations []int
	for _, part := range strings.Split(m[3], "-") {
		if part = strings.TrimSpace(part); part != "" {
			durations = append(durations, atoi(part)*60)
		}
	}
	if len(durations) == 0 {
		return nil
	}
	tf.BaseRoundDuration = &durations[0]

	var base int
	if strings.EqualFold(m[1], "unlimited") {
		tf.UnlimitedRounds = true
		base = 1
	} else {
		n := atoi(m[1])
		tf.BaseRounds = &n
		base = n
	}

	if strings.Contains(strings.ToUpper(m[0]), "OT") {
		tf.OvertimeRounds = 1
		if m[2] != "" {
			tf.OvertimeRounds = atoi(m[2])
		}
		if base < len(durations) {
			tf.OvertimeDuration = &durations[base]
		}
	}
	return tf
}
