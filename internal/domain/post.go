package domain

import "time"

// Post is the client's transient copy of a server-owned post. LikesCount
// is eventually consistent and may lag the server between refreshes.
type Post struct {
	ID           int64
	UserID       int64
	Username     string
	DisplayName  string
	Content      string
	CreatedAt    time.Time
	LikesCount   int
	RepliesCount int
}

// AuthorLabel returns the display name when the author set one.
func (p Post) AuthorLabel() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}

type Reply struct {
	ID        int64
	PostID    int64
	Username  string
	Content   string
	CreatedAt time.Time
}

// PostDetails is a post together with its replies, as returned by the
// single-post read path.
type PostDetails struct {
	Post
	Replies []Reply
}

// LikeCount is the authoritative per-post counter read path.
type LikeCount struct {
	PostID     int64
	LikesCount int
}
