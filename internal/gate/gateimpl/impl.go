package gateimpl

import (
	"context"

	"github.com/micro-blogger/telegram-client/internal/domain"
	"github.com/micro-blogger/telegram-client/internal/gate"
	"github.com/micro-blogger/telegram-client/internal/microblog"
	"github.com/micro-blogger/telegram-client/internal/session"
	apperrors "github.com/micro-blogger/telegram-client/pkg/errors"
	"github.com/micro-blogger/telegram-client/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	API     microblog.Client
	Session session.Store
	Logger  logger.Logger
}

type ControllerImpl struct {
	api     microblog.Client
	session session.Store
	logger  logger.Logger
}

func New(opts Opts) *ControllerImpl {
	return &ControllerImpl{
		api:     opts.API,
		session: opts.Session,
		logger:  opts.Logger.WithComponent("SessionGate"),
	}
}

var _ gate.Controller = (*ControllerImpl)(nil)

func (c *ControllerImpl) State() gate.State {
	if _, ok := c.session.Get(); ok {
		return gate.StateAuthenticated
	}
	return gate.StateAnonymous
}

func (c *ControllerImpl) GateEntry() gate.Decision {
	if c.State() == gate.StateAuthenticated {
		return gate.DecisionRedirectProfile
	}
	return gate.DecisionProceed
}

func (c *ControllerImpl) Login(ctx context.Context, email, password string) error {
	token, err := c.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := c.session.Set(token); err != nil {
		return apperrors.Wrap(err, "store session token")
	}
	c.logger.Info("Signed in")
	return nil
}

func (c *ControllerImpl) Register(ctx context.Context, username, email, password string) error {
	// No auto-login: the caller is sent to the login screen afterwards.
	return c.api.Register(ctx, username, email, password)
}

func (c *ControllerImpl) Logout() {
	if err := c.session.Clear(); err != nil {
		c.logger.Error("Failed to clear session", "error", err)
	}
}

func (c *ControllerImpl) ResolveSelf(ctx context.Context) (*domain.Profile, error) {
	username, err := c.api.Me(ctx)
	if err != nil {
		if apperrors.IsServiceUnavailable(err) {
			return nil, err
		}
		// A stale token accepted locally but rejected by the server
		// reads as "no profile". The credential is left in place.
		c.logger.Warn("Self lookup rejected", "error", err)
		return nil, &apperrors.Error{Code: "SELF_LOOKUP", Message: "profile not found", Err: apperrors.ErrNotFound}
	}

	return c.api.Profile(ctx, username)
}
