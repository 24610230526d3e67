package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/micro-blogger/telegram-client/internal/mutation"
	"github.com/micro-blogger/telegram-client/pkg/formatter"
)

func (c *CommandImpl) handleFeed(ctx context.Context, chatID int64) {
	posts := c.Feed.Load(ctx)
	if len(posts) == 0 {
		c.reply(chatID, "No posts yet — be the first to post!")
		return
	}

	var b strings.Builder
	for _, p := range posts {
		fmt.Fprintf(&b, "#%d %s (@%s) · %s\n%s\n❤️ %s · 💬 %s · /show %d\n\n",
			p.ID,
			p.AuthorLabel(),
			p.Username,
			formatter.TimeAgo(p.CreatedAt),
			p.Content,
			formatter.FormatNumber(p.LikesCount),
			formatter.FormatNumber(p.RepliesCount),
			p.ID,
		)
	}
	c.reply(chatID, strings.TrimSpace(b.String()))
}

func (c *CommandImpl) handleLike(ctx context.Context, chatID int64, args string) {
	postID, _, err := parsePostID(args)
	if err != nil {
		c.reply(chatID, "Usage: /like <post_id>")
		return
	}

	count, err := c.Mutations.ToggleLike(ctx, postID)
	if errors.Is(err, mutation.ErrLikeInFlight) {
		return
	}
	if err != nil {
		// The count on screen is unchanged and the action stays
		// available; no error detail travels further than the log.
		c.reply(chatID, fmt.Sprintf("Could not like post %d.", postID))
		return
	}

	c.reply(chatID, fmt.Sprintf("❤️ Post %d now has %s likes.", postID, formatter.FormatNumber(count)))
}
