// Package normalize turns the scraper's loosely formatted strings into typed
// values.
//
// Every function here is lenient: input that is empty, whitespace, the "--"
// placeholder, or simply unparseable yields nil or a zero value. Nothing in
// this package returns an error; required-field checks live with the mappers.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Missing is the placeholder the source uses for an unknown value.
const Missing = "--"

// DateLayout is the layout of every date in the source, e.g. "Jan 02, 1990".
// The single-digit day form accepts both "Jan 2" and "Jan 02".
const DateLayout = "Jan 2, 2006"

const (
	cmPerInch  = 2.54
	kgPerPound = 0.453592
)

var (
	heightRe = regexp.MustCompile(`^(\d+)'\s*(\d+)`)
	weightRe = regexp.MustCompile(`(\d+(\.\d+)?)`)
	reachRe  = regexp.MustCompile(`^(\d+(\.\d+)?)`)
	recordRe = regexp.MustCompile(`(\d+)-(\d+)-(\d+)(?:\s*\((\d+)\s*NC\))?`)
)

// Record is a win/loss/draw/no-contest tally.
type Record struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Draws      int `json:"draws"`
	NoContests int `json:"no_contests"`
}

// blank reports whether s carries no value.
func blank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == Missing
}

// Height converts a feet'inches" string such as `5' 11"` to centimetres,
// rounded to two decimals.
func Height(s string) *float64 {
	if blank(s) {
		return nil
	}
	m := heightRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil
	}
	feet, _ := strconv.Atoi(m[1])
	inches, _ := strconv.Atoi(m[2])
	cm := round2(float64(feet*12+inches) * cmPerInch)
	return &cm
}

// Weight converts the first number found in s, taken as pounds, to
// kilograms rounded to two decimals.
func Weight(s string) *float64 {
	if blank(s) {
		return nil
	}
	m := weightRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	lbs, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	kg := round2(lbs * kgPerPound)
	return &kg
}

// Reach converts a leading inch figure such as `72.5"` to centimetres,
// rounded to two decimals.
func Reach(s string) *float64 {
	if blank(s) {
		return nil
	}
	m := reachRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil
	}
	in, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	cm := round2(in * cmPerInch)
	return &cm
}

// Date parses a DateLayout string into a UTC calendar date.
func Date(s string) *time.Time {
	if blank(s) {
		return nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}

// ParseRecord extracts the first "W-L-D" tally, with an optional
// "(N NC)" suffix, found in s. Unparseable input yields a zero Record.
func ParseRecord(s string) Record {
	if blank(s) {
		return Record{}
	}
	m := recordRe.FindStringSubmatch(s)
	if m == nil {
		return Record{}
	}
	return Record{
		Wins:       atoi(m[1]),
		Losses:     atoi(m[2]),
		Draws:      atoi(m[3]),
		NoContests: atoi(m[4]),
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
