package analytics

import (
	"sort"

	"github.com/comment-dashboard-api/internal/models"
)

// Engagement builds per-post counters in first-seen order: view rows first, then
// comments. When several view rows share a slug the last one processed wins.
func (e *Engine) Engagement(comments []*models.Comment, views []*models.PageView) []models.PostEngagement {
	index := make(map[string]int)
	var data []models.PostEngagement

	entry := func(slug string) *models.PostEngagement {
		i, ok := index[slug]
		if !ok {
			i = len(data)
			index[slug] = i
			data = append(data, models.PostEngagement{PostSlug: slug})
		}
		return &data[i]
	}

	for _, v := range views {
		entry(v.PostSlug).Views = v.ViewCount
	}

	for _, c := range comments {
		p := entry(c.PostSlug)
		p.Comments++
		switch c.Status {
		case models.CommentStatusApproved:
			p.ApprovedComments++
		case models.CommentStatusPending:
			p.PendingComments++
		case models.CommentStatusSpam:
			p.SpamComments++
		}
	}

	for i := range data {
		data[i].EngagementRate = EngagementRate(data[i].Comments, data[i].Views)
	}

	if data == nil {
		data = []models.PostEngagement{}
	}
	return data
}

// EngagementRate is comments per hundred views, 0 when there are no views
func EngagementRate(comments int, views int64) float64 {
	if views <= 0 {
		return 0
	}
	return float64(comments) / float64(views) * 100
}

// TopEngagement returns at most limit posts ordered by engagement rate, ties by slug.
// data is not modified.
func TopEngagement(data []models.PostEngagement, limit int) []models.PostEngagement {
	out := make([]models.PostEngagement, len(data))
	copy(out, data)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EngagementRate != out[j].EngagementRate {
			return out[i].EngagementRate > out[j].EngagementRate
		}
		return out[i].PostSlug < out[j].PostSlug
	})

	return truncate(out, limit)
}

func truncate[T any](s []T, limit int) []T {
	if limit >= 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
