package lifecycleimpl

import (
	"context"
	"errors"
	"time"

	"github.com/dealerhub/social-publisher/internal/domain"
	"github.com/dealerhub/social-publisher/internal/repositories/post"
	"github.com/dealerhub/social-publisher/pkg/apperrors"
)

// Publish submits a draft to its platform and marks it published,
// exactly once. Submission is not idempotent; there is no retry, and a
// caller abort before the platform responds leaves the draft untouched.
func (m *ManagerImpl) Publish(ctx context.Context, postID string) (*domain.Post, error) {
	if err := validatePostID(postID); err != nil {
		return nil, err
	}

	if !m.beginPublish(postID) {
		return nil, apperrors.Newf(apperrors.KindConflict, "publish already in flight for post %s", postID)
	}
	defer m.endPublish(postID)

	current, err := m.PostRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.KindNotFound, "post %s not found", postID)
		}
		return nil, apperrors.Wrap(err, apperrors.KindUnavailable, "post store unreachable")
	}
	if current.Posted {
		return nil, apperrors.New(apperrors.KindConflict, "post already published")
	}

	submitCtx, cancel := context.WithTimeout(ctx, m.Config.Lifecycle.PublishTimeout)
	defer cancel()

	platformPostID, err := m.Publisher.Submit(submitCtx, current.Platform, current.Content, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPublish, "platform rejected the post")
	}

	postedAt := time.Now().UTC()
	if err := m.PostRepo.MarkPublished(ctx, postID, platformPostID, postedAt); err != nil {
		switch {
		case errors.Is(err, post.ErrAlreadyPublished):
			// Lost a race that slipped past the in-flight guard, e.g.
			// across processes. The submission above went out; surface
			// the conflict rather than pretend nothing happened.
			m.Logger.Error("Publish race detected after submission",
				"post_id", postID, "platform_post_id", platformPostID)
			return nil, apperrors.New(apperrors.KindConflict, "post already published")
		case errors.Is(err, post.ErrNotFound):
			return nil, apperrors.Newf(apperrors.KindNotFound, "post %s not found", postID)
		default:
			return nil, apperrors.Wrap(err, apperrors.KindUnavailable, "failed to persist published state")
		}
	}

	current.Posted = true
	current.PlatformPostID = platformPostID
	current.PostedAt = postedAt

	m.Logger.Info("Post published",
		"post_id", postID, "platform", current.Platform, "platform_post_id", platformPostID)
	return current, nil
}

func (m *ManagerImpl) beginPublish(postID string) bool {
	m.publishingMu.Lock()
	defer m.publishingMu.Unlock()

	if _, inFlight := m.publishing[postID]; inFlight {
		return false
	}
	m.publishing[postID] = struct{}{}
	return true
}

func (m *ManagerImpl) endPublish(postID string) {
	m.publishingMu.Lock()
	defer m.publishingMu.Unlock()
	delete(m.publishing, postID)
}
