package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"time"

	"github.com/comment-dashboard-api/internal/models"
	"github.com/comment-dashboard-api/internal/repository"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

// Export formats
const (
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

var commentCSVHeader = []string{
	"id", "post_slug", "content", "author_name", "author_email", "parent_id",
	"status", "ip_address", "user_agent", "created_at", "updated_at",
}

var engagementCSVHeader = []string{
	"post_slug", "views", "comments", "approved_comments", "pending_comments",
	"spam_comments", "engagement_rate",
}

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos     *repository.Repositories
	analytics *analyticsService
	policy    *bluemonday.Policy
	now       Clock
	log       zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, analytics *analyticsService, now Clock, log zerolog.Logger) *exportService {
	return &exportService{
		repos:     repos,
		analytics: analytics,
		policy:    plainTextPolicy(),
		now:       now,
		log:       log.With().Str("component", "export").Logger(),
	}
}

func (s *exportService) attachment(w http.ResponseWriter, contentType, name, ext string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(
		"attachment; filename=%s_%s.%s", name, s.now().UTC().Format("2006-01-02"), ext,
	))
}

// plainTextPolicy drops every tag but keeps the text inside them, including
// script and style bodies that StrictPolicy would discard.
func plainTextPolicy() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AllowElementsContent("script", "style", "noscript", "title", "iframe",
		"object", "noembed", "noframes", "frame", "frameset")
	return p
}

// plainText strips markup from user-supplied text for spreadsheet output
func (s *exportService) plainText(in string) string {
	return html.UnescapeString(s.policy.Sanitize(in))
}

// cellSafe neutralises spreadsheet formulas by prefixing a quote
func cellSafe(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + v
	}
	return v
}

// StreamComments streams every comment, newest first, in the specified format
func (s *exportService) StreamComments(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting comments export")

	switch format {
	case FormatCSV:
		return s.streamCommentsCSV(ctx, w)
	case FormatJSON:
		return s.streamCommentsJSON(ctx, w)
	case FormatNDJSON:
		return s.streamCommentsNDJSON(ctx, w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// Comment streams set headers and write nothing until the first row arrives.
func (s *exportService) streamCommentsCSV(ctx context.Context, w http.ResponseWriter) error {
	writer := csv.NewWriter(w)
	started := false
	begin := func() error {
		started = true
		s.attachment(w, "text/csv; charset=utf-8", "comments", "csv")
		return writer.Write(commentCSVHeader)
	}

	count := 0
	err := s.repos.Comment.StreamAll(ctx, func(c *models.Comment) error {
		if !started {
			if err := begin(); err != nil {
				return err
			}
		}
		count++
		return writer.Write([]string{
			strconv.FormatInt(c.ID, 10),
			c.PostSlug,
			cellSafe(s.plainText(c.Content)),
			cellSafe(s.plainText(c.AuthorName)),
			cellSafe(c.AuthorEmail),
			optionalInt(c.ParentID),
			string(c.Status),
			optionalString(c.IPAddress),
			cellSafe(optionalString(c.UserAgent)),
			c.CreatedAt.UTC().Format(time.RFC3339),
			c.UpdatedAt.UTC().Format(time.RFC3339),
		})
	})
	if err != nil {
		if started {
			writer.Flush()
		}
		return err
	}

	if !started {
		if err := begin(); err != nil {
			return err
		}
	}
	writer.Flush()

	s.log.Info().Int("count", count).Msg("Comments export completed")
	return writer.Error()
}

func (s *exportService) streamCommentsNDJSON(ctx context.Context, w http.ResponseWriter) error {
	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.repos.Comment.StreamAll(ctx, func(c *models.Comment) error {
		data, err := json.Marshal(c)
		if err != nil {
			return err
		}
		if count == 0 {
			s.attachment(w, "application/x-ndjson", "comments", "ndjson")
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		// Flush every 100 records for streaming
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	if err != nil {
		return err
	}

	if count == 0 {
		s.attachment(w, "application/x-ndjson", "comments", "ndjson")
		w.WriteHeader(http.StatusOK)
	}

	s.log.Info().Int("count", count).Msg("Comments export completed")
	return nil
}

func (s *exportService) streamCommentsJSON(ctx context.Context, w http.ResponseWriter) error {
	count := 0

	err := s.repos.Comment.StreamAll(ctx, func(c *models.Comment) error {
		data, err := json.Marshal(c)
		if err != nil {
			return err
		}
		if count == 0 {
			s.attachment(w, "application/json", "comments", "json")
			w.Write([]byte("["))
		} else {
			w.Write([]byte(","))
		}
		w.Write(data)
		count++
		return nil
	})
	// A failed stream stays unterminated
	if err != nil {
		return err
	}

	if count == 0 {
		s.attachment(w, "application/json", "comments", "json")
		w.Write([]byte("["))
	}
	w.Write([]byte("]"))

	s.log.Info().Int("count", count).Msg("Comments export completed")
	return nil
}

// StreamEngagement writes the per-post engagement rows
func (s *exportService) StreamEngagement(ctx context.Context, w http.ResponseWriter, format string) error {
	if format != FormatCSV && format != FormatJSON {
		return fmt.Errorf("unsupported format: %s", format)
	}

	report, err := s.analytics.Analytics(ctx)
	if err != nil {
		return err
	}

	if format == FormatJSON {
		s.attachment(w, "application/json", "engagement", "json")
		return json.NewEncoder(w).Encode(report.EngagementData)
	}

	s.attachment(w, "text/csv; charset=utf-8", "engagement", "csv")
	writer := csv.NewWriter(w)
	if err := writer.Write(engagementCSVHeader); err != nil {
		return err
	}
	for _, p := range report.EngagementData {
		if err := writer.Write([]string{
			p.PostSlug,
			strconv.FormatInt(p.Views, 10),
			strconv.Itoa(p.Comments),
			strconv.Itoa(p.ApprovedComments),
			strconv.Itoa(p.PendingComments),
			strconv.Itoa(p.SpamComments),
			strconv.FormatFloat(p.EngagementRate, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()

	s.log.Info().Int("count", len(report.EngagementData)).Msg("Engagement export completed")
	return writer.Error()
}

// WriteAnalytics writes the full dashboard bundle as indented JSON
func (s *exportService) WriteAnalytics(ctx context.Context, w http.ResponseWriter) error {
	bundle, err := s.analytics.Bundle(ctx)
	if err != nil {
		return err
	}

	s.attachment(w, "application/json", "analytics", "json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bundle)
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalInt(i *int64) string {
	if i == nil {
		return ""
	}
	return strconv.FormatInt(*i, 10)
}
