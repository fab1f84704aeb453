// Package seed loads mapped documents into Postgres: idempotent upserts,
// one transaction per source document, and a worker pool per collection.
package seed

import "fmt"

// SeedResult tracks counts and errors from a load.
type SeedResult struct {
	FightersUpserted int
	EventsUpserted   int
	FightsUpserted   int
	RowsUpserted     int // every row written, children and lookups included
	Rejected         int
	Errors           []string
}

// Add merges another SeedResult into this one.
func (r *SeedResult) Add(other SeedResult) {
	r.FightersUpserted += other.FightersUpserted
	r.EventsUpserted += other.EventsUpserted
	r.FightsUpserted += other.FightsUpserted
	r.RowsUpserted += other.RowsUpserted
	r.Rejected += other.Rejected
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the load.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf(
		"fighters=%d events=%d fights=%d rows=%d rejected=%d errors=%d",
		r.FightersUpserted, r.EventsUpserted, r.FightsUpserted,
		r.RowsUpserted, r.Rejected, len(r.Errors),
	)
}
