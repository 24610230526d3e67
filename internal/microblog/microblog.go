package microblog

import (
	"context"

	"github.com/micro-blogger/telegram-client/internal/domain"
)

// Client is the gateway to the backing microblog service. Every method
// returns either decoded data or an error from pkg/errors carrying a
// presentable message; transport and parse failures never escape raw.
//
//go:generate go run go.uber.org/mock/mockgen -source=microblog.go -destination=mocks/mock.go -package=mocks
type Client interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (string, error)

	Profile(ctx context.Context, username string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error)

	ListPosts(ctx context.Context) ([]domain.Post, error)
	GetPost(ctx context.Context, id int64) (*domain.PostDetails, error)
	CreatePost(ctx context.Context, content string) (int64, error)
	LikePost(ctx context.Context, id int64) (int, error)
	LikeCount(ctx context.Context, id int64) (domain.LikeCount, error)
	CreateReply(ctx context.Context, postID int64, content string) error
}
