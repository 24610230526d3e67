package feed

import (
	"context"

	"github.com/micro-blogger/telegram-client/internal/domain"
)

// Synchronizer owns the home feed view: the two-phase load (bulk list,
// then per-post like counts) and the merged result the rest of the app
// reads from.
type Synchronizer interface {
	// Load fetches the feed and refreshes like counts. A failed bulk
	// fetch yields an empty feed, never an error.
	Load(ctx context.Context) []domain.Post

	// Current returns the last merged feed.
	Current() []domain.Post

	// UpdateLikeCount replaces the like count of one post in the merged
	// view. Unknown ids are ignored; repeating the same count is a no-op.
	UpdateLikeCount(postID int64, count int)

	// ScheduleRefresh starts a background job re-loading the feed until
	// ctx is cancelled.
	ScheduleRefresh(ctx context.Context) error
}
