package mutationimpl

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/micro-blogger/telegram-client/internal/domain"
	"github.com/micro-blogger/telegram-client/internal/microblog/mocks"
	"github.com/micro-blogger/telegram-client/internal/mutation"
	apperrors "github.com/micro-blogger/telegram-client/pkg/errors"
	"github.com/micro-blogger/telegram-client/pkg/logger"
	"go.uber.org/mock/gomock"
)

// feedStub records like-count updates without a real synchronizer.
type feedStub struct {
	mu    sync.Mutex
	posts []domain.Post
}

func (f *feedStub) Load(context.Context) []domain.Post { return f.Current() }

func (f *feedStub) Current() []domain.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Post, len(f.posts))
	copy(out, f.posts)
	return out
}

func (f *feedStub) UpdateLikeCount(postID int64, count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.posts {
		if f.posts[i].ID == postID {
			f.posts[i].LikesCount = count
		}
	}
}

func (f *feedStub) ScheduleRefresh(context.Context) error { return nil }

func newTestCoordinator(t *testing.T, posts []domain.Post) (*CoordinatorImpl, *mocks.MockClient, *feedStub) {
	t.Helper()

	ctrl := gomock.NewController(t)
	api := mocks.NewMockClient(ctrl)
	stub := &feedStub{posts: posts}

	c := New(Opts{
		API:    api,
		Feed:   stub,
		Logger: logger.New(logger.Opts{Env: "production"}),
	})
	return c, api, stub
}

func TestToggleLikeSuccessUsesServerCount(t *testing.T) {
	c, api, stub := newTestCoordinator(t, []domain.Post{{ID: 1, LikesCount: 3}})

	api.EXPECT().LikePost(gomock.Any(), int64(1)).Return(4, nil)

	count, err := c.ToggleLike(context.Background(), 1)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if count != 4 {
		t.Fatalf("count = %d, want the server-reported 4", count)
	}
	if got := stub.Current()[0].LikesCount; got != 4 {
		t.Fatalf("feed shows %d, want 4", got)
	}
}

func TestToggleLikeFailureLeavesCountAndClearsGuard(t *testing.T) {
	c, api, stub := newTestCoordinator(t, []domain.Post{{ID: 1, LikesCount: 3}})

	api.EXPECT().LikePost(gomock.Any(), int64(1)).
		Return(0, &apperrors.Error{Message: "down", Err: apperrors.ErrServiceUnavailable}).
		Times(2)

	if _, err := c.ToggleLike(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
	if got := stub.Current()[0].LikesCount; got != 3 {
		t.Fatalf("failed like changed the displayed count to %d", got)
	}

	// Guard cleared: the action is available again.
	if _, err := c.ToggleLike(context.Background(), 1); errors.Is(err, mutation.ErrLikeInFlight) {
		t.Fatal("guard was not cleared after a failure")
	}
}

func TestToggleLikeWhileInFlight(t *testing.T) {
	c, api, _ := newTestCoordinator(t, []domain.Post{{ID: 1, LikesCount: 3}})

	started := make(chan struct{})
	release := make(chan struct{})
	api.EXPECT().LikePost(gomock.Any(), int64(1)).
		DoAndReturn(func(context.Context, int64) (int, error) {
			close(started)
			<-release
			return 4, nil
		})

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.ToggleLike(context.Background(), 1)
	}()

	<-started
	if _, err := c.ToggleLike(context.Background(), 1); !errors.Is(err, mutation.ErrLikeInFlight) {
		t.Fatalf("expected ErrLikeInFlight, got %v", err)
	}
	close(release)
	<-done
}

func TestLikesOnDifferentPostsRunIndependently(t *testing.T) {
	c, api, _ := newTestCoordinator(t, []domain.Post{{ID: 1}, {ID: 2}})

	started := make(chan struct{})
	release := make(chan struct{})
	api.EXPECT().LikePost(gomock.Any(), int64(1)).
		DoAndReturn(func(context.Context, int64) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
	api.EXPECT().LikePost(gomock.Any(), int64(2)).Return(1, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.ToggleLike(context.Background(), 1)
	}()

	<-started
	// No cross-entity lock: post 2 is likeable while post 1 is in flight.
	if _, err := c.ToggleLike(context.Background(), 2); err != nil {
		t.Fatalf("like on another post blocked: %v", err)
	}
	close(release)
	<-done
}

func TestSubmitPost(t *testing.T) {
	c, api, _ := newTestCoordinator(t, nil)

	c.SetPostDraft("hello world")
	api.EXPECT().CreatePost(gomock.Any(), "hello world").
		Return(int64(0), &apperrors.Error{Message: "content too long", Err: apperrors.ErrBadRequest})

	_, err := c.SubmitPost(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if apperrors.GetMessage(err) != "content too long" {
		t.Fatalf("message = %q", apperrors.GetMessage(err))
	}
	if c.PostDraft() != "hello world" {
		t.Fatal("draft lost on failure")
	}

	api.EXPECT().CreatePost(gomock.Any(), "hello world").Return(int64(42), nil)
	id, err := c.SubmitPost(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
	if c.PostDraft() != "" {
		t.Fatal("draft not cleared on success")
	}
}

func TestSubmitPostEmptyDraft(t *testing.T) {
	c, _, _ := newTestCoordinator(t, nil)

	c.SetPostDraft("   ")
	if _, err := c.SubmitPost(context.Background()); err == nil {
		t.Fatal("blank draft must not hit the network")
	}
}

func TestSubmitReplySuccessClearsDraftAndRefetches(t *testing.T) {
	c, api, _ := newTestCoordinator(t, nil)

	c.SetReplyDraft(7, "nice one")

	fresh := &domain.PostDetails{
		Post:    domain.Post{ID: 7, Content: "original"},
		Replies: []domain.Reply{{ID: 1, PostID: 7, Username: "alice", Content: "nice one"}},
	}
	gomock.InOrder(
		api.EXPECT().CreateReply(gomock.Any(), int64(7), "nice one").Return(nil),
		api.EXPECT().GetPost(gomock.Any(), int64(7)).Return(fresh, nil),
	)

	details, err := c.SubmitReply(context.Background(), 7)
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if len(details.Replies) != 1 || details.Replies[0].Content != "nice one" {
		t.Fatalf("refetched view missing the reply: %+v", details)
	}
	if c.ReplyDraft(7) != "" {
		t.Fatal("draft not cleared on success")
	}
}

func TestSubmitReplyFailureKeepsDraft(t *testing.T) {
	c, api, _ := newTestCoordinator(t, nil)

	c.SetReplyDraft(7, "nice one")
	api.EXPECT().CreateReply(gomock.Any(), int64(7), "nice one").
		Return(&apperrors.Error{Message: "not signed in", Err: apperrors.ErrUnauthorized})

	_, err := c.SubmitReply(context.Background(), 7)
	if err == nil {
		t.Fatal("expected the failure to surface")
	}
	if apperrors.GetMessage(err) != "not signed in" {
		t.Fatalf("message = %q", apperrors.GetMessage(err))
	}
	if c.ReplyDraft(7) != "nice one" {
		t.Fatal("draft lost on failure")
	}
}

func TestUpdateProfilePassesThrough(t *testing.T) {
	c, api, _ := newTestCoordinator(t, nil)

	update := domain.ProfileUpdate{DisplayName: "Alice", Bio: "hi", AvatarURL: "http://a/b.png"}
	api.EXPECT().UpdateProfile(gomock.Any(), update).
		Return(&domain.Profile{Username: "alice", DisplayName: "Alice"}, nil)

	profile, err := c.UpdateProfile(context.Background(), update)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if profile.DisplayName != "Alice" {
		t.Fatalf("got %+v", profile)
	}
}
