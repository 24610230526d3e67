package commandimpl

import (
	"context"
	"strings"

	"github.com/micro-blogger/telegram-client/internal/gate"
)

func (c *CommandImpl) handleLogin(ctx context.Context, chatID int64, args string) {
	if c.Gate.GateEntry() == gate.DecisionRedirectProfile {
		// Already signed in: straight to the profile, credentials are
		// not resent.
		c.handleMe(ctx, chatID)
		return
	}

	parts := strings.Fields(args)
	if len(parts) != 2 {
		c.reply(chatID, "Usage: /login <email> <password>")
		return
	}

	if err := c.Gate.Login(ctx, parts[0], parts[1]); err != nil {
		c.reply(chatID, c.errorText(err))
		return
	}
	c.reply(chatID, "Signed in. /feed to catch up.")
}

func (c *CommandImpl) handleRegister(ctx context.Context, chatID int64, args string) {
	if c.Gate.GateEntry() == gate.DecisionRedirectProfile {
		c.handleMe(ctx, chatID)
		return
	}

	parts := strings.Fields(args)
	if len(parts) != 3 {
		c.reply(chatID, "Usage: /register <username> <email> <password>")
		return
	}

	if err := c.Gate.Register(ctx, parts[0], parts[1], parts[2]); err != nil {
		c.reply(chatID, c.errorText(err))
		return
	}
	c.reply(chatID, "Account created. Sign in with /login <email> <password>.")
}

func (c *CommandImpl) handleLogout(chatID int64) {
	c.Gate.Logout()
	c.reply(chatID, "Signed out.")
}
