package library

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmcdole/logbook/internal/domain"
)

// Commands performs remote mutations. It validates input before any network
// call and never touches State; callers apply the confirmed result.
type Commands struct {
	media    domain.MediaRepository
	comments domain.CommentRepository
	logger   *slog.Logger
}

// NewCommands creates a new Commands instance.
func NewCommands(media domain.MediaRepository, comments domain.CommentRepository, logger *slog.Logger) *Commands {
	if logger == nil {
		logger = slog.Default()
	}
	return &Commands{media: media, comments: comments, logger: logger}
}

// ValidateMedia checks a media form before submission.
func (c *Commands) ValidateMedia(fields domain.MediaFields) error {
	if err := fields.Validate(); err != nil {
		c.logger.Debug("media form rejected", "error", err)
		return err
	}
	return nil
}

func (c *Commands) fail(msg string, err error, args ...any) error {
	var rf *domain.RemoteFailure
	if errors.As(err, &rf) {
		args = append(args, "op", rf.Op, "status", rf.Status)
	}
	c.logger.Error(msg, append([]any{"error", err}, args...)...)
	return err
}

func (c *Commands) ListMedia(ctx context.Context) ([]domain.MediaEntry, error) {
	entries, err := c.media.ListMedia(ctx)
	if err != nil {
		return nil, c.fail("failed to list media", err)
	}
	c.logger.Debug("listed media", "count", len(entries))
	return entries, nil
}

func (c *Commands) CreateMedia(ctx context.Context, fields domain.MediaFields) (domain.MediaEntry, error) {
	if err := c.ValidateMedia(fields); err != nil {
		return domain.MediaEntry{}, err
	}
	entry, err := c.media.CreateMedia(ctx, fields)
	if err != nil {
		return domain.MediaEntry{}, c.fail("failed to create media", err, "name", fields.Name)
	}
	return entry, nil
}

func (c *Commands) UpdateMedia(ctx context.Context, id int64, fields domain.MediaFields) error {
	if err := c.ValidateMedia(fields); err != nil {
		return err
	}
	if err := c.media.UpdateMedia(ctx, id, fields); err != nil {
		return c.fail("failed to update media", err, "media_id", id)
	}
	return nil
}

func (c *Commands) DeleteMedia(ctx context.Context, id int64) (domain.MediaEntry, error) {
	entry, err := c.media.DeleteMedia(ctx, id)
	if err != nil {
		return domain.MediaEntry{}, c.fail("failed to delete media", err, "media_id", id)
	}
	return entry, nil
}

func (c *Commands) CreateComment(ctx context.Context, mediaID int64, text string) (domain.Comment, error) {
	text, err := domain.ValidateCommentText(text)
	if err != nil {
		return domain.Comment{}, err
	}
	cm, err := c.comments.CreateComment(ctx, mediaID, text)
	if err != nil {
		return domain.Comment{}, c.fail("failed to create comment", err, "media_id", mediaID)
	}
	return cm, nil
}

func (c *Commands) UpdateComment(ctx context.Context, id int64, text string) (domain.Comment, error) {
	text, err := domain.ValidateCommentText(text)
	if err != nil {
		return domain.Comment{}, err
	}
	cm, err := c.comments.UpdateComment(ctx, id, text)
	if err != nil {
		return domain.Comment{}, c.fail("failed to update comment", err, "comment_id", id)
	}
	return cm, nil
}

func (c *Commands) DeleteComment(ctx context.Context, id int64) (domain.Comment, error) {
	cm, err := c.comments.DeleteComment(ctx, id)
	if err != nil {
		return domain.Comment{}, c.fail("failed to delete comment", err, "comment_id", id)
	}
	return cm, nil
}
