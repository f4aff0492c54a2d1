package analytics

import (
	"time"

	"github.com/comment-dashboard-api/internal/models"
)

// Windows are the lower bounds of the today / this week / this month counters
type Windows struct {
	Today    time.Time
	WeekAgo  time.Time
	MonthAgo time.Time
}

// StartOfDay returns midnight of t's calendar day in the engine location
func (e *Engine) StartOfDay(t time.Time) time.Time {
	t = t.In(e.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, e.loc)
}

// Windows computes the bounds relative to now. MonthAgo uses calendar month
// arithmetic with overflow normalisation, so Mar 31 minus one month is Mar 3
// (Mar 2 in leap years), not a fixed 30 days.
func (e *Engine) Windows(now time.Time) Windows {
	today := e.StartOfDay(now)
	return Windows{
		Today:    today,
		WeekAgo:  today.AddDate(0, 0, -7),
		MonthAgo: today.AddDate(0, -1, 0),
	}
}

// CountCommentsSince counts comments created at or after since
func (e *Engine) CountCommentsSince(comments []*models.Comment, since time.Time) int {
	n := 0
	for _, c := range comments {
		if c.CreatedAt.IsZero() {
			e.skip("comment", c.ID, "comments_since")
			continue
		}
		if !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n
}

// SumViewsSince sums view counters whose last change is at or after since
func (e *Engine) SumViewsSince(views []*models.PageView, since time.Time) int64 {
	var total int64
	for _, v := range views {
		if v.UpdatedAt.IsZero() {
			e.skip("page_view", v.ID, "views_since")
			continue
		}
		if !v.UpdatedAt.Before(since) {
			total += v.ViewCount
		}
	}
	return total
}

// ActivityByHour histograms comments by hour of day (0-23)
func (e *Engine) ActivityByHour(comments []*models.Comment) [24]int {
	var hours [24]int
	for _, c := range comments {
		if c.CreatedAt.IsZero() {
			e.skip("comment", c.ID, "activity_by_hour")
			continue
		}
		hours[c.CreatedAt.In(e.loc).Hour()]++
	}
	return hours
}

// ActivityByDay histograms comments by weekday, 0 = Sunday
func (e *Engine) ActivityByDay(comments []*models.Comment) [7]int {
	var days [7]int
	for _, c := range comments {
		if c.CreatedAt.IsZero() {
			e.skip("comment", c.ID, "activity_by_day")
			continue
		}
		days[int(c.CreatedAt.In(e.loc).Weekday())]++
	}
	return days
}

// ChartSeries returns one point per calendar day, from days-1 days ago through
// today inclusive, counting comments created on that date.
func (e *Engine) ChartSeries(comments []*models.Comment, now time.Time, days int) []models.ChartPoint {
	if days <= 0 {
		return []models.ChartPoint{}
	}

	today := e.StartOfDay(now)
	first := today.AddDate(0, 0, -(days - 1))

	points := make([]models.ChartPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := first.AddDate(0, 0, i).Format(dateLayout)
		points[i] = models.ChartPoint{Date: date}
		index[date] = i
	}

	for _, c := range comments {
		if c.CreatedAt.IsZero() {
			e.skip("comment", c.ID, "chart_series")
			continue
		}
		if i, ok := index[c.CreatedAt.In(e.loc).Format(dateLayout)]; ok {
			points[i].Count++
		}
	}

	return points
}
