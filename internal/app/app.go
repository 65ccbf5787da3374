package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/middleware"
)

type App struct {
	log    *logrus.Logger
	config *config.Config
	router *http.ServeMux
	ws     *config.WebSocket
	rnd    *rand.Rand
}

func New(log *logrus.Logger, c *config.Config, rnd *rand.Rand) *App {
	return &App{
		log:    log,
		config: c,
		router: http.NewServeMux(),
		rnd:    rnd,
	}
}

func (a *App) Handler() (http.Handler, error) {
	ws, err := config.NewWebSocket(a.config.WebSocket)
	if err != nil {
		return nil, err
	}
	a.ws = ws

	a.loadRoutes()

	return middleware.Wrap(
		a.router,
		middleware.Cors(),
		middleware.Logging(a.log),
	), nil
}

// Start serves until ctx is cancelled, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	handler, err := a.Handler()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: handler,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
		ReadHeaderTimeout: time.Second * 15,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Infof("ready to serve @ %s", a.config.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
