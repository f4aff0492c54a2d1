package service

import (
	"context"
	"fmt"

	"github.com/comment-dashboard-api/internal/filter"
	"github.com/comment-dashboard-api/internal/models"
	"github.com/comment-dashboard-api/internal/repository"
	"github.com/comment-dashboard-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService.
// Status transitions are unrestricted: any of pending, approved and spam may move
// to any other, any number of times. Deletion removes the comment for good.
type commentService struct {
	repo      repository.CommentRepository
	validator *validation.Validator
	now       Clock
	log       zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(repo repository.CommentRepository, v *validation.Validator, now Clock, log zerolog.Logger) *commentService {
	return &commentService{
		repo:      repo,
		validator: v,
		now:       now,
		log:       log.With().Str("component", "comment").Logger(),
	}
}

// List returns comments matching the filter. The store selects the newest rows up to
// the limit; oldest-first only reorders that page.
func (s *commentService) List(ctx context.Context, opts filter.Options) ([]*models.Comment, error) {
	if err := opts.Validate(); err != nil {
		return nil, &ValidationError{Errors: []validation.FieldError{{Field: "query", Message: err.Error()}}}
	}

	comments, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	filter.Reorder(comments, opts.Sort)
	return comments, nil
}

// SetStatus moves one comment to status
func (s *commentService) SetStatus(ctx context.Context, id int64, status models.CommentStatus) (*models.Comment, error) {
	if err := newValidationError(s.validator.ValidateStatus(status)); err != nil {
		return nil, err
	}

	comment, err := s.repo.UpdateStatus(ctx, id, status, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to update comment %d: %w", id, err)
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	s.log.Info().
		Int64("comment_id", id).
		Str("status", string(status)).
		Msg("Comment status updated")

	return comment, nil
}

// Delete permanently removes one comment. Deleting an absent id succeeds.
func (s *commentService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}

	s.log.Info().
		Int64("comment_id", id).
		Bool("existed", deleted).
		Msg("Comment deleted")

	return nil
}

// Bulk applies one action to every listed comment. The returned count is the
// number of ids submitted; the number actually affected is only logged.
// The batch is a single statement, but a failure is reported as a whole.
func (s *commentService) Bulk(ctx context.Context, req *models.BulkRequest) (int, error) {
	if err := newValidationError(s.validator.ValidateBulk(req)); err != nil {
		return 0, err
	}

	var (
		affected int64
		err      error
	)

	if req.Action == models.BulkActionDelete {
		affected, err = s.repo.DeleteBatch(ctx, req.CommentIDs)
	} else {
		status, _ := req.Action.Status()
		affected, err = s.repo.UpdateStatusBatch(ctx, req.CommentIDs, status, s.now().UTC())
	}
	if err != nil {
		return 0, fmt.Errorf("failed to perform bulk %s: %w", req.Action, err)
	}

	s.log.Info().
		Str("action", string(req.Action)).
		Int("requested", len(req.CommentIDs)).
		Int64("affected", affected).
		Msg("Bulk moderation applied")

	return len(req.CommentIDs), nil
}
