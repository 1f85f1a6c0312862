package bot

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Dardva/Bot-for-remind/bot/handlers"
	"github.com/Dardva/Bot-for-remind/bot/images"
	"github.com/Dardva/Bot-for-remind/bot/service"
	"github.com/Dardva/Bot-for-remind/bot/storage"
	"github.com/Dardva/Bot-for-remind/bot/sweep"
	"github.com/Dardva/Bot-for-remind/core/bootstrap"
	corecmd "github.com/Dardva/Bot-for-remind/core/cmd"
	tg "github.com/Dardva/Bot-for-remind/core/telegram"
	tghelpers "github.com/Dardva/Bot-for-remind/core/telegram/helpers"
	"github.com/Dardva/Bot-for-remind/core/telegram/router"
	"github.com/Dardva/Bot-for-remind/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// App holds the assembled application.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	fsm      state.Manager
	reg      *tg.Registry
	handlers *handlers.Handlers
	sweeper  *sweep.Sweeper
}

// LoadConfig adapts LoadAppConfig to the runner's contract.
func LoadConfig(path string) (corecmd.ConfigCarrier, error) {
	return LoadAppConfig(path)
}

// Bootstrap initialises infrastructure and wires the domain layers.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   &cfg.Core,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	svc := service.New(storage.New(res.DB))
	fsm := state.NewMemoryManager()
	h := handlers.New(svc, fsm, images.New(), cfg.Core.Telegram.BossIDs)

	sweeper, err := sweep.New(svc.Requests, cfg.Bot.SweepSchedule, cfg.Bot.RequestRetention())
	if err != nil {
		_ = res.DB.Close()
		return nil, err
	}
	h.RunSweep = sweeper.RunOnce

	reg := tg.NewRegistry()
	h.Register(reg)
	reg.SetTextFallback(func(c tele.Context) error {
		return tghelpers.SendText(c, "I did not understand that, press /help.")
	})

	return &App{
		cfg:      cfg,
		db:       res.DB,
		fsm:      fsm,
		reg:      reg,
		handlers: h,
		sweeper:  sweeper,
	}, nil
}

// TelegramRunOptions builds the runtime wiring for the core runner.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	mws := tg.DefaultMiddlewares(&a.cfg.Core, nil)
	mws = append(mws, tg.Middleware{Name: "session", Use: state.WithSession(a.fsm)})

	routes := router.CommandRoutes(a.reg, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes,
		router.TextRoute(a.fsm, a.reg, router.TextOptions{}),
		router.CallbackRoute(router.CallbackOptions{Dispatch: a.handlers.Dispatch}),
	)

	return tg.RunOptions{
		Config:      &a.cfg.Core,
		Registry:    a.reg,
		Middlewares: mws,
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			a.sweeper.Start()
			return nil
		},
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			a.sweeper.Stop()
			return a.db.Close()
		},
	}, nil
}
