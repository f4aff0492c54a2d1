package analytics

import (
	"time"

	"github.com/comment-dashboard-api/internal/models"
)

// CommentStats builds the overview report. comments must be ordered newest first;
// the first RecentCommentsLimit of them are reported as recent.
func (e *Engine) CommentStats(comments []*models.Comment, now time.Time) *models.CommentStats {
	totals := StatusTotals(comments)
	w := e.Windows(now)

	recent := comments
	if len(recent) > RecentCommentsLimit {
		recent = recent[:RecentCommentsLimit]
	}
	if recent == nil {
		recent = []*models.Comment{}
	}

	return &models.CommentStats{
		TotalComments:     totals.Total,
		ApprovedComments:  totals.Approved,
		PendingComments:   totals.Pending,
		SpamComments:      totals.Spam,
		CommentsToday:     e.CountCommentsSince(comments, w.Today),
		CommentsThisWeek:  e.CountCommentsSince(comments, w.WeekAgo),
		CommentsThisMonth: e.CountCommentsSince(comments, w.MonthAgo),
		TopPosts:          TopPostsByComments(comments, TopPostsLimit),
		RecentComments:    recent,
		ChartData:         e.ChartSeries(comments, now, ChartDays),
	}
}

// ViewStats builds the page-view report
func (e *Engine) ViewStats(views []*models.PageView, now time.Time) *models.ViewStats {
	w := e.Windows(now)
	return &models.ViewStats{
		TotalViews:      TotalViews(views),
		TopPostsByViews: TopPostsByViews(views, TopPostsByViewLimit),
		ViewsToday:      e.SumViewsSince(views, w.Today),
		ViewsThisWeek:   e.SumViewsSince(views, w.WeekAgo),
		ViewsThisMonth:  e.SumViewsSince(views, w.MonthAgo),
	}
}

// Report builds the engagement, ranking, spam and activity report
func (e *Engine) Report(comments []*models.Comment, views []*models.PageView) *models.AnalyticsReport {
	engagement := e.Engagement(comments, views)
	return &models.AnalyticsReport{
		EngagementData: engagement,
		TopEngagement:  TopEngagement(engagement, TopEngagementLimit),
		TopCommenters:  TopCommenters(comments, TopCommentersLimit),
		SuspiciousIPs:  SuspiciousIPs(comments, SuspiciousIPsLimit),
		ActivityByHour: e.ActivityByHour(comments),
		ActivityByDay:  e.ActivityByDay(comments),
	}
}
