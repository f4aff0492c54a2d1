// Package analytics reduces raw comment and page-view rows into dashboard metrics.
//
// Every function is pure with respect to its inputs: the same records, location and
// reference time always produce the same result. Calendar bucketing (hour of day, day of
// week, calendar date) happens in the Engine's location, which callers pin to UTC unless
// configured otherwise. Records whose timestamp is missing are left out of time-based
// aggregates and logged.
package analytics

import (
	"time"

	"github.com/rs/zerolog"
)

// Ranking limits used by the dashboard
const (
	TopEngagementLimit  = 10
	TopCommentersLimit  = 10
	SuspiciousIPsLimit  = 20
	TopPostsLimit       = 5
	TopPostsByViewLimit = 10
	RecentCommentsLimit = 10
	ChartDays           = 30
)

// Suspicious IP heuristic thresholds
const (
	suspiciousMinTotal  = 5
	suspiciousSpamRatio = 0.3
)

const dateLayout = "2006-01-02"

// Engine performs the aggregations in a fixed location
type Engine struct {
	loc *time.Location
	log zerolog.Logger
}

// New creates an Engine bucketing in loc (UTC when nil)
func New(loc *time.Location, log zerolog.Logger) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		loc: loc,
		log: log.With().Str("component", "analytics").Str("location", loc.String()).Logger(),
	}
}

// Location returns the bucketing location
func (e *Engine) Location() *time.Location {
	return e.loc
}

func (e *Engine) skip(kind string, id int64, aggregate string) {
	e.log.Warn().
		Str("record", kind).
		Int64("id", id).
		Str("aggregate", aggregate).
		Msg("Record without timestamp excluded from time-based aggregate")
}
