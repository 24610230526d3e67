package apiimpl

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/micro-blogger/telegram-client/internal/domain"
)

type postPayload struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username"`
	DisplayName  *string   `json:"display_name"`
	LikesCount   int       `json:"likes_count"`
	RepliesCount int       `json:"replies_count"`
}

func (p postPayload) toDomain() domain.Post {
	post := domain.Post{
		ID:           p.ID,
		UserID:       p.UserID,
		Username:     p.Username,
		Content:      p.Content,
		CreatedAt:    p.CreatedAt,
		LikesCount:   p.LikesCount,
		RepliesCount: p.RepliesCount,
	}
	if p.DisplayName != nil {
		post.DisplayName = *p.DisplayName
	}
	return post
}

type replyPayload struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (r replyPayload) toDomain() domain.Reply {
	return domain.Reply{
		ID:        r.ID,
		PostID:    r.PostID,
		Username:  r.Username,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
	}
}

func (a *APIImpl) ListPosts(ctx context.Context) ([]domain.Post, error) {
	var payload []postPayload
	if err := a.do(ctx, http.MethodGet, "/posts", nil, false, &payload); err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(payload))
	for _, p := range payload {
		posts = append(posts, p.toDomain())
	}
	return posts, nil
}

func (a *APIImpl) GetPost(ctx context.Context, id int64) (*domain.PostDetails, error) {
	var payload struct {
		postPayload
		Replies []replyPayload `json:"replies"`
	}
	if err := a.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, false, &payload); err != nil {
		return nil, err
	}

	details := &domain.PostDetails{
		Post:    payload.postPayload.toDomain(),
		Replies: make([]domain.Reply, 0, len(payload.Replies)),
	}
	for _, r := range payload.Replies {
		details.Replies = append(details.Replies, r.toDomain())
	}
	return details, nil
}

func (a *APIImpl) CreatePost(ctx context.Context, content string) (int64, error) {
	body := map[string]string{"content": content}

	var out postPayload
	if err := a.do(ctx, http.MethodPost, "/posts", body, true, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (a *APIImpl) LikePost(ctx context.Context, id int64) (int, error) {
	var out struct {
		LikesCount int `json:"likes_count"`
	}
	if err := a.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like", id), nil, true, &out); err != nil {
		return 0, err
	}
	return out.LikesCount, nil
}

func (a *APIImpl) LikeCount(ctx context.Context, id int64) (domain.LikeCount, error) {
	var out struct {
		PostID     int64 `json:"post_id"`
		LikesCount int   `json:"likes_count"`
	}
	path := fmt.Sprintf("/get_like_numbers_by_post_id?post_id=%d", id)
	if err := a.do(ctx, http.MethodGet, path, nil, false, &out); err != nil {
		return domain.LikeCount{}, err
	}
	return domain.LikeCount{PostID: out.PostID, LikesCount: out.LikesCount}, nil
}

func (a *APIImpl) CreateReply(ctx context.Context, postID int64, content string) error {
	body := map[string]string{"content": content}
	return a.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/reply", postID), body, true, nil)
}
