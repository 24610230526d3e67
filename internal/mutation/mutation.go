package mutation

import (
	"context"
	"errors"

	"github.com/micro-blogger/telegram-client/internal/domain"
)

// ErrLikeInFlight is returned when a like for the same post is already
// being submitted. No second request is sent.
var ErrLikeInFlight = errors.New("like already in flight")

// Coordinator runs the mutation flows. Each follows the same shape: fire
// the request, change local state only on confirmed success, surface the
// failure otherwise. Drafts live here so a failed submission never loses
// the author's text.
type Coordinator interface {
	// ToggleLike submits a like and, on success, pushes the
	// server-reported count into the merged feed. The displayed count is
	// never changed ahead of confirmation.
	ToggleLike(ctx context.Context, postID int64) (int, error)

	SetPostDraft(content string)
	PostDraft() string
	// SubmitPost creates a post from the draft. Success clears the draft
	// and returns the new post id for the caller to navigate to.
	SubmitPost(ctx context.Context) (int64, error)

	SetReplyDraft(postID int64, content string)
	ReplyDraft(postID int64) string
	// SubmitReply sends the draft reply and, on success, clears it and
	// re-fetches the post-with-replies view. A fresh read wins over
	// splicing a local reply in; the server owns reply ordering.
	SubmitReply(ctx context.Context, postID int64) (*domain.PostDetails, error)

	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error)
}
