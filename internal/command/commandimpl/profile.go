package commandimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/micro-blogger/telegram-client/internal/domain"
	apperrors "github.com/micro-blogger/telegram-client/pkg/errors"
	"github.com/micro-blogger/telegram-client/pkg/formatter"
)

func (c *CommandImpl) handleMe(ctx context.Context, chatID int64) {
	profile, err := c.Gate.ResolveSelf(ctx)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.reply(chatID, "Profile not found.")
			return
		}
		c.reply(chatID, c.errorText(err))
		return
	}
	c.renderProfile(chatID, profile)
}

func (c *CommandImpl) handleUser(ctx context.Context, chatID int64, args string) {
	username := strings.TrimSpace(args)
	if username == "" {
		c.reply(chatID, "Usage: /user <username>")
		return
	}

	profile, err := c.API.Profile(ctx, strings.TrimPrefix(username, "@"))
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.reply(chatID, "Profile not found.")
			return
		}
		c.reply(chatID, c.errorText(err))
		return
	}
	c.renderProfile(chatID, profile)
}

func (c *CommandImpl) handleSetProfile(ctx context.Context, chatID int64, args string) {
	parts := strings.SplitN(args, "|", 3)
	if len(parts) != 3 {
		c.reply(chatID, "Usage: /setprofile <display name> | <bio> | <avatar url>")
		return
	}

	update := domain.ProfileUpdate{
		DisplayName: strings.TrimSpace(parts[0]),
		Bio:         strings.TrimSpace(parts[1]),
		AvatarURL:   strings.TrimSpace(parts[2]),
	}

	profile, err := c.Mutations.UpdateProfile(ctx, update)
	if err != nil {
		c.reply(chatID, c.errorText(err))
		return
	}

	c.reply(chatID, "Profile saved.")
	c.renderProfile(chatID, profile)
}

func (c *CommandImpl) renderProfile(chatID int64, profile *domain.Profile) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (@%s)\n", profile.Label(), profile.Username)
	if profile.Bio != "" {
		b.WriteString(profile.Bio + "\n")
	}

	if len(profile.Posts) == 0 {
		b.WriteString("\nNo posts yet.")
	} else {
		fmt.Fprintf(&b, "\nPosts (%d):\n", len(profile.Posts))
		for _, p := range profile.Posts {
			fmt.Fprintf(&b, "#%d %s · ❤️ %s\n", p.ID, p.Content, formatter.FormatNumber(p.LikesCount))
		}
	}

	c.reply(chatID, strings.TrimSpace(b.String()))
}
