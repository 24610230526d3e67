package commandimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/micro-blogger/telegram-client/internal/domain"
	apperrors "github.com/micro-blogger/telegram-client/pkg/errors"
	"github.com/micro-blogger/telegram-client/pkg/formatter"
)

func (c *CommandImpl) handlePost(ctx context.Context, chatID int64, args string) {
	if args == "" {
		c.reply(chatID, "Usage: /post <text>")
		return
	}

	c.Mutations.SetPostDraft(args)
	id, err := c.Mutations.SubmitPost(ctx)
	if err != nil {
		c.reply(chatID, c.errorText(err)+" Your draft is kept, send /post again to retry.")
		return
	}

	// Success moves straight to the new post's view.
	c.showPost(ctx, chatID, id)
}

func (c *CommandImpl) handleShow(ctx context.Context, chatID int64, args string) {
	postID, _, err := parsePostID(args)
	if err != nil {
		c.reply(chatID, "Usage: /show <post_id>")
		return
	}
	c.showPost(ctx, chatID, postID)
}

func (c *CommandImpl) handleReply(ctx context.Context, chatID int64, args string) {
	postID, text, err := parsePostID(args)
	if err != nil || text == "" {
		c.reply(chatID, "Usage: /reply <post_id> <text>")
		return
	}

	c.Mutations.SetReplyDraft(postID, text)
	details, err := c.Mutations.SubmitReply(ctx, postID)
	if err != nil {
		c.reply(chatID, c.errorText(err)+" Your reply draft is kept.")
		return
	}

	c.renderPost(chatID, details)
}

func (c *CommandImpl) showPost(ctx context.Context, chatID int64, postID int64) {
	details, err := c.API.GetPost(ctx, postID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.reply(chatID, "Post not found.")
			return
		}
		c.reply(chatID, c.errorText(err))
		return
	}
	c.renderPost(chatID, details)
}

func (c *CommandImpl) renderPost(chatID int64, details *domain.PostDetails) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (@%s) · %s\n%s\n❤️ %s\n",
		details.AuthorLabel(),
		details.Username,
		formatter.TimeAgo(details.CreatedAt),
		details.Content,
		formatter.FormatNumber(details.LikesCount),
	)

	if len(details.Replies) == 0 {
		b.WriteString("\nNo replies yet.")
	} else {
		b.WriteString("\nReplies:\n")
		for _, r := range details.Replies {
			fmt.Fprintf(&b, "— @%s: %s (%s)\n", r.Username, r.Content, formatter.TimeAgo(r.CreatedAt))
		}
	}

	c.reply(chatID, strings.TrimSpace(b.String()))
}
