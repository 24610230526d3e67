package mutationimpl

import (
	"context"
	"strings"
	"sync"

	"github.com/micro-blogger/telegram-client/internal/domain"
	"github.com/micro-blogger/telegram-client/internal/feed"
	"github.com/micro-blogger/telegram-client/internal/microblog"
	"github.com/micro-blogger/telegram-client/internal/mutation"
	apperrors "github.com/micro-blogger/telegram-client/pkg/errors"
	"github.com/micro-blogger/telegram-client/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	API    microblog.Client
	Feed   feed.Synchronizer
	Logger logger.Logger
}

type CoordinatorImpl struct {
	api    microblog.Client
	feed   feed.Synchronizer
	logger logger.Logger

	mu          sync.Mutex
	liking      map[int64]struct{}
	postDraft   string
	replyDrafts map[int64]string
}

func New(opts Opts) *CoordinatorImpl {
	return &CoordinatorImpl{
		api:         opts.API,
		feed:        opts.Feed,
		logger:      opts.Logger.WithComponent("MutationCoordinator"),
		liking:      make(map[int64]struct{}),
		replyDrafts: make(map[int64]string),
	}
}

var _ mutation.Coordinator = (*CoordinatorImpl)(nil)

func (c *CoordinatorImpl) ToggleLike(ctx context.Context, postID int64) (int, error) {
	if !c.beginLike(postID) {
		return 0, mutation.ErrLikeInFlight
	}
	defer c.endLike(postID)

	count, err := c.api.LikePost(ctx, postID)
	if err != nil {
		// Displayed count stays as-is; clearing the guard makes the
		// action available again.
		c.logger.Warn("Like failed", "post_id", postID, "error", err)
		return 0, err
	}

	c.feed.UpdateLikeCount(postID, count)
	return count, nil
}

func (c *CoordinatorImpl) beginLike(postID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, inFlight := c.liking[postID]; inFlight {
		return false
	}
	c.liking[postID] = struct{}{}
	return true
}

func (c *CoordinatorImpl) endLike(postID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.liking, postID)
}

func (c *CoordinatorImpl) SetPostDraft(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.postDraft = content
}

func (c *CoordinatorImpl) PostDraft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.postDraft
}

func (c *CoordinatorImpl) SubmitPost(ctx context.Context) (int64, error) {
	draft := c.PostDraft()
	if strings.TrimSpace(draft) == "" {
		return 0, apperrors.New("there is nothing to post")
	}

	id, err := c.api.CreatePost(ctx, draft)
	if err != nil {
		// Draft kept for another attempt.
		return 0, err
	}

	c.SetPostDraft("")
	return id, nil
}

func (c *CoordinatorImpl) SetReplyDraft(postID int64, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if content == "" {
		delete(c.replyDrafts, postID)
		return
	}
	c.replyDrafts[postID] = content
}

func (c *CoordinatorImpl) ReplyDraft(postID int64) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.replyDrafts[postID]
}

func (c *CoordinatorImpl) SubmitReply(ctx context.Context, postID int64) (*domain.PostDetails, error) {
	draft := c.ReplyDraft(postID)
	if strings.TrimSpace(draft) == "" {
		return nil, apperrors.New("there is nothing to send")
	}

	if err := c.api.CreateReply(ctx, postID, draft); err != nil {
		// Draft kept; the failure is the caller's to surface.
		return nil, err
	}
	c.SetReplyDraft(postID, "")

	return c.api.GetPost(ctx, postID)
}

func (c *CoordinatorImpl) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error) {
	return c.api.UpdateProfile(ctx, update)
}
