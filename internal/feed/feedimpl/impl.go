package feedimpl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/micro-blogger/telegram-client/internal/domain"
	"github.com/micro-blogger/telegram-client/internal/feed"
	"github.com/micro-blogger/telegram-client/internal/microblog"
	"github.com/micro-blogger/telegram-client/pkg/config"
	"github.com/micro-blogger/telegram-client/pkg/logger"
	"github.com/micro-blogger/telegram-client/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	API    microblog.Client
	Logger logger.Logger
	Config *config.Config
}

type SynchronizerImpl struct {
	api      microblog.Client
	logger   logger.Logger
	cfg      *config.Config
	retryCfg retry.Config

	mu      sync.RWMutex
	current []domain.Post
}

func New(opts Opts) *SynchronizerImpl {
	return &SynchronizerImpl{
		api:      opts.API,
		logger:   opts.Logger.WithComponent("FeedSynchronizer"),
		cfg:      opts.Config,
		retryCfg: retry.DefaultConfig(),
	}
}

var _ feed.Synchronizer = (*SynchronizerImpl)(nil)

func (s *SynchronizerImpl) Load(ctx context.Context) []domain.Post {
	var posts []domain.Post
	operation := func() error {
		var err error
		posts, err = s.api.ListPosts(ctx)
		return err
	}

	if err := retry.Do(ctx, s.logger, "ListPosts", operation, s.retryCfg); err != nil {
		// An unreachable feed renders as empty rather than as an error
		// screen; the viewer cannot tell the two apart.
		s.logger.Warn("Feed load failed", "error", err)
		s.setCurrent(nil)
		return []domain.Post{}
	}

	if len(posts) > 0 {
		posts = s.refreshLikeCounts(ctx, posts)
	}
	s.setCurrent(posts)
	return s.Current()
}

// refreshLikeCounts converges the bulk listing with the authoritative
// per-post like counter. The whole batch is awaited before merging; each
// failed lookup degrades to the count already in hand. Order and the set
// of posts are never altered here, only the like-count field.
func (s *SynchronizerImpl) refreshLikeCounts(ctx context.Context, posts []domain.Post) []domain.Post {
	counts := make([]int, len(posts))

	var wg sync.WaitGroup
	for i := range posts {
		wg.Add(1)
		go func(i int, post domain.Post) {
			defer wg.Done()
			counts[i] = post.LikesCount

			lc, err := s.api.LikeCount(ctx, post.ID)
			if err != nil {
				s.logger.Debug("Like count lookup failed, keeping bulk value",
					"post_id", post.ID, "error", err)
				return
			}
			if lc.PostID != post.ID {
				s.logger.Warn("Like count response for wrong post",
					"requested", post.ID, "got", lc.PostID)
				return
			}
			counts[i] = lc.LikesCount
		}(i, posts[i])
	}
	wg.Wait()

	merged := make([]domain.Post, len(posts))
	for i, post := range posts {
		post.LikesCount = counts[i]
		merged[i] = post
	}
	return merged
}

func (s *SynchronizerImpl) Current() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Post, len(s.current))
	copy(out, s.current)
	return out
}

func (s *SynchronizerImpl) UpdateLikeCount(postID int64, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.current {
		if s.current[i].ID == postID {
			s.current[i].LikesCount = count
		}
	}
}

func (s *SynchronizerImpl) setCurrent(posts []domain.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = posts
}

func (s *SynchronizerImpl) ScheduleRefresh(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create feed refresh scheduler: %w", err)
	}

	interval := time.Duration(s.cfg.Feed.RefreshMinutes) * time.Minute
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}

			loadCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()

			posts := s.Load(loadCtx)
			s.logger.Debug("Background feed refresh completed", "posts", len(posts))
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule feed refresh: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		s.logger.Info("Stopping feed refresh scheduler")
		if err := scheduler.Shutdown(); err != nil {
			s.logger.Error("Failed to shut down feed refresh scheduler", "error", err)
		}
	}()

	return nil
}
