package models

// PostEngagement holds per-post view and comment counters
type PostEngagement struct {
	PostSlug         string  `json:"post_slug"`
	Views            int64   `json:"views"`
	Comments         int     `json:"comments"`
	ApprovedComments int     `json:"approved_comments"`
	PendingComments  int     `json:"pending_comments"`
	SpamComments     int     `json:"spam_comments"`
	EngagementRate   float64 `json:"engagement_rate"`
}

// Commenter aggregates comments by author email
type Commenter struct {
	Email         string `json:"email"`
	TotalComments int    `json:"total_comments"`
	Approved      int    `json:"approved"`
	Pending       int    `json:"pending"`
	Spam          int    `json:"spam"`
}

// IPActivity aggregates comments by submitter address
type IPActivity struct {
	IP       string `json:"ip"`
	Total    int    `json:"total"`
	Spam     int    `json:"spam"`
	Approved int    `json:"approved"`
	Pending  int    `json:"pending"`
}

// PostCount is a post slug with its comment count
type PostCount struct {
	PostSlug string `json:"post_slug"`
	Count    int    `json:"count"`
}

// PostViews is a post slug with its view count
type PostViews struct {
	PostSlug string `json:"post_slug"`
	Views    int64  `json:"views"`
}

// ChartPoint is one calendar day of the comment chart
type ChartPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CommentStats is the response of GET /api/stats
type CommentStats struct {
	TotalComments     int          `json:"totalComments"`
	ApprovedComments  int          `json:"approvedComments"`
	PendingComments   int          `json:"pendingComments"`
	SpamComments      int          `json:"spamComments"`
	CommentsToday     int          `json:"commentsToday"`
	CommentsThisWeek  int          `json:"commentsThisWeek"`
	CommentsThisMonth int          `json:"commentsThisMonth"`
	TopPosts          []PostCount  `json:"topPosts"`
	RecentComments    []*Comment   `json:"recentComments"`
	ChartData         []ChartPoint `json:"chartData"`
}

// ViewStats is the response of GET /api/views
type ViewStats struct {
	TotalViews      int64       `json:"totalViews"`
	TopPostsByViews []PostViews `json:"topPostsByViews"`
	ViewsToday      int64       `json:"viewsToday"`
	ViewsThisWeek   int64       `json:"viewsThisWeek"`
	ViewsThisMonth  int64       `json:"viewsThisMonth"`
}

// AnalyticsReport is the response of GET /api/analytics
type AnalyticsReport struct {
	EngagementData []PostEngagement `json:"engagementData"`
	TopEngagement  []PostEngagement `json:"topEngagement"`
	TopCommenters  []Commenter      `json:"topCommenters"`
	SuspiciousIPs  []IPActivity     `json:"suspiciousIPs"`
	ActivityByHour [24]int          `json:"activityByHour"`
	ActivityByDay  [7]int           `json:"activityByDay"`
}

// AnalyticsExport bundles every dashboard report for download
type AnalyticsExport struct {
	Timestamp string           `json:"timestamp"`
	Stats     *CommentStats    `json:"stats"`
	Views     *ViewStats       `json:"views"`
	Analytics *AnalyticsReport `json:"analytics"`
}

// StatusCounts is the number of comments in each moderation status
type StatusCounts struct {
	Total    int
	Approved int
	Pending  int
	Spam     int
}
