package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/micro-blogger/telegram-client/internal/command"
	"github.com/micro-blogger/telegram-client/internal/command/commandimpl"
	"github.com/micro-blogger/telegram-client/internal/feed"
	"github.com/micro-blogger/telegram-client/internal/feed/feedimpl"
	"github.com/micro-blogger/telegram-client/internal/gate"
	"github.com/micro-blogger/telegram-client/internal/gate/gateimpl"
	"github.com/micro-blogger/telegram-client/internal/microblog"
	"github.com/micro-blogger/telegram-client/internal/microblog/apiimpl"
	"github.com/micro-blogger/telegram-client/internal/mutation"
	"github.com/micro-blogger/telegram-client/internal/mutation/mutationimpl"
	"github.com/micro-blogger/telegram-client/internal/ratelimit"
	"github.com/micro-blogger/telegram-client/internal/session"
	"github.com/micro-blogger/telegram-client/internal/telegram"
	"github.com/micro-blogger/telegram-client/internal/telegram/telegramimpl"
	"github.com/micro-blogger/telegram-client/pkg/config"
	"github.com/micro-blogger/telegram-client/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
	),
	fx.Provide(
		fx.Annotate(
			session.New,
			fx.As(new(session.Store)),
		),
		fx.Annotate(
			apiimpl.New,
			fx.As(new(microblog.Client)),
		),
		fx.Annotate(
			feedimpl.New,
			fx.As(new(feed.Synchronizer)),
		),
		fx.Annotate(
			mutationimpl.New,
			fx.As(new(mutation.Coordinator)),
		),
		fx.Annotate(
			gateimpl.New,
			fx.As(new(gate.Controller)),
		),
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
		newLimiter,
	),
	fx.Invoke(run),
)

func newLimiter() ratelimit.Limiter {
	return ratelimit.NewInMemoryLimiter(1, 2*time.Second, 5)
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config,
	feedSync feed.Synchronizer, cmdClient command.Client) {
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHTTPServer(log, cfg)

			if err := feedSync.ScheduleRefresh(runCtx); err != nil {
				log.Error("Failed to schedule feed refresh", "error", err)
			}

			go func() {
				if err := cmdClient.HandleUpdates(runCtx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("Command loop stopped", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func startHTTPServer(log logger.Logger, cfg *config.Config) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), nil); err != nil {
		log.Error("Server failed to start", "error", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, log logger.Logger) {
	log.Debug("Health check request received", "method", r.Method, "url", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		log.Error("Failed to write response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
