package commandimpl

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/micro-blogger/telegram-client/internal/command"
	"github.com/micro-blogger/telegram-client/internal/feed"
	"github.com/micro-blogger/telegram-client/internal/gate"
	"github.com/micro-blogger/telegram-client/internal/microblog"
	"github.com/micro-blogger/telegram-client/internal/mutation"
	"github.com/micro-blogger/telegram-client/internal/ratelimit"
	"github.com/micro-blogger/telegram-client/internal/telegram"
	"github.com/micro-blogger/telegram-client/pkg/config"
	"github.com/micro-blogger/telegram-client/pkg/logger"
	"go.uber.org/fx"
)

const commandTimeout = 30 * time.Second

type Opts struct {
	fx.In

	Telegram  telegram.Client
	API       microblog.Client
	Feed      feed.Synchronizer
	Mutations mutation.Coordinator
	Gate      gate.Controller
	Limiter   ratelimit.Limiter
	Logger    logger.Logger
	Config    *config.Config
}

type CommandImpl struct {
	Telegram  telegram.Client
	API       microblog.Client
	Feed      feed.Synchronizer
	Mutations mutation.Coordinator
	Gate      gate.Controller
	Limiter   ratelimit.Limiter
	Logger    logger.Logger
	Config    *config.Config
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		Telegram:  opts.Telegram,
		API:       opts.API,
		Feed:      opts.Feed,
		Mutations: opts.Mutations,
		Gate:      opts.Gate,
		Limiter:   opts.Limiter,
		Logger:    opts.Logger.WithComponent("Commands"),
		Config:    opts.Config,
	}
}

var _ command.Client = (*CommandImpl)(nil)

func (c *CommandImpl) HandleUpdates(ctx context.Context) error {
	updates := c.Telegram.UpdatesChan()

	for {
		select {
		case <-ctx.Done():
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			chatID := update.Message.Chat.ID
			if c.Config.Telegram.Owner != 0 && chatID != c.Config.Telegram.Owner {
				c.Logger.Warn("Ignoring command from unknown chat", "chat_id", chatID)
				continue
			}
			if !c.Limiter.Allow(chatID) {
				c.reply(chatID, "Too many commands, give it a moment.")
				continue
			}

			c.dispatch(ctx, update)
		}
	}
}

func (c *CommandImpl) dispatch(ctx context.Context, update tgbotapi.Update) {
	cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	chatID := update.Message.Chat.ID
	args := strings.TrimSpace(update.Message.CommandArguments())

	switch update.Message.Command() {
	case "start", "help":
		c.handleHelp(chatID)
	case "login":
		c.handleLogin(cmdCtx, chatID, args)
	case "register":
		c.handleRegister(cmdCtx, chatID, args)
	case "logout":
		c.handleLogout(chatID)
	case "feed":
		c.handleFeed(cmdCtx, chatID)
	case "post":
		c.handlePost(cmdCtx, chatID, args)
	case "like":
		c.handleLike(cmdCtx, chatID, args)
	case "show":
		c.handleShow(cmdCtx, chatID, args)
	case "reply":
		c.handleReply(cmdCtx, chatID, args)
	case "me":
		c.handleMe(cmdCtx, chatID)
	case "user":
		c.handleUser(cmdCtx, chatID, args)
	case "setprofile":
		c.handleSetProfile(cmdCtx, chatID, args)
	default:
		c.reply(chatID, "Unknown command. Try /help.")
	}
}

func (c *CommandImpl) handleHelp(chatID int64) {
	c.reply(chatID, strings.Join([]string{
		"MicroBlogger commands:",
		"/feed — latest posts",
		"/show <post_id> — one post with replies",
		"/post <text> — publish a post",
		"/like <post_id> — like a post",
		"/reply <post_id> <text> — reply to a post",
		"/me — your profile",
		"/user <username> — someone's profile",
		"/setprofile <display name> | <bio> | <avatar url>",
		"/login <email> <password>",
		"/register <username> <email> <password>",
		"/logout",
	}, "\n"))
}

func (c *CommandImpl) reply(chatID int64, text string) {
	if _, err := c.Telegram.SendMessage(chatID, text); err != nil {
		c.Logger.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}
