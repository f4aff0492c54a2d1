package analytics

import (
	"sort"

	"github.com/comment-dashboard-api/internal/models"
)

// TopCommenters groups comments by exact author email and returns the most active
func TopCommenters(comments []*models.Comment, limit int) []models.Commenter {
	index := make(map[string]int)
	var out []models.Commenter

	for _, c := range comments {
		i, ok := index[c.AuthorEmail]
		if !ok {
			i = len(out)
			index[c.AuthorEmail] = i
			out = append(out, models.Commenter{Email: c.AuthorEmail})
		}
		a := &out[i]
		a.TotalComments++
		switch c.Status {
		case models.CommentStatusApproved:
			a.Approved++
		case models.CommentStatusPending:
			a.Pending++
		case models.CommentStatusSpam:
			a.Spam++
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalComments != out[j].TotalComments {
			return out[i].TotalComments > out[j].TotalComments
		}
		return out[i].Email < out[j].Email
	})

	if out == nil {
		out = []models.Commenter{}
	}
	return truncate(out, limit)
}

// IsSuspicious is the spam heuristic: any spam at all, or at least five comments
// of which more than 30% are spam. It flags, it does not block.
func IsSuspicious(a models.IPActivity) bool {
	if a.Spam > 0 {
		return true
	}
	return a.Total >= suspiciousMinTotal && float64(a.Spam)/float64(a.Total) > suspiciousSpamRatio
}

// SuspiciousIPs groups comments by submitter address, skipping comments without
// one, and returns flagged addresses ordered by spam count, ties by address.
func SuspiciousIPs(comments []*models.Comment, limit int) []models.IPActivity {
	index := make(map[string]int)
	var all []models.IPActivity

	for _, c := range comments {
		ip := c.IP()
		if ip == "" {
			continue
		}
		i, ok := index[ip]
		if !ok {
			i = len(all)
			index[ip] = i
			all = append(all, models.IPActivity{IP: ip})
		}
		a := &all[i]
		a.Total++
		switch c.Status {
		case models.CommentStatusSpam:
			a.Spam++
		case models.CommentStatusApproved:
			a.Approved++
		case models.CommentStatusPending:
			a.Pending++
		}
	}

	out := make([]models.IPActivity, 0, len(all))
	for _, a := range all {
		if IsSuspicious(a) {
			out = append(out, a)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Spam != out[j].Spam {
			return out[i].Spam > out[j].Spam
		}
		return out[i].IP < out[j].IP
	})

	return truncate(out, limit)
}

// TopPostsByComments counts comments per slug and returns the busiest posts
func TopPostsByComments(comments []*models.Comment, limit int) []models.PostCount {
	index := make(map[string]int)
	var out []models.PostCount

	for _, c := range comments {
		i, ok := index[c.PostSlug]
		if !ok {
			i = len(out)
			index[c.PostSlug] = i
			out = append(out, models.PostCount{PostSlug: c.PostSlug})
		}
		out[i].Count++
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].PostSlug < out[j].PostSlug
	})

	if out == nil {
		out = []models.PostCount{}
	}
	return truncate(out, limit)
}

// TopPostsByViews returns the most viewed posts. Rows without a slug are
// reported as "unknown".
func TopPostsByViews(views []*models.PageView, limit int) []models.PostViews {
	out := make([]models.PostViews, 0, len(views))
	for _, v := range views {
		slug := v.PostSlug
		if slug == "" {
			slug = "unknown"
		}
		out = append(out, models.PostViews{PostSlug: slug, Views: v.ViewCount})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Views != out[j].Views {
			return out[i].Views > out[j].Views
		}
		return out[i].PostSlug < out[j].PostSlug
	})

	return truncate(out, limit)
}

// TotalViews sums every view counter
func TotalViews(views []*models.PageView) int64 {
	var total int64
	for _, v := range views {
		total += v.ViewCount
	}
	return total
}

// StatusTotals counts comments per moderation status
func StatusTotals(comments []*models.Comment) models.StatusCounts {
	counts := models.StatusCounts{Total: len(comments)}
	for _, c := range comments {
		switch c.Status {
		case models.CommentStatusApproved:
			counts.Approved++
		case models.CommentStatusPending:
			counts.Pending++
		case models.CommentStatusSpam:
			counts.Spam++
		}
	}
	return counts
}
