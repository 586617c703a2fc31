package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"talent-hub/internal/config"
	"talent-hub/internal/delivery/http/handler"
	"talent-hub/internal/delivery/http/middleware"
	"talent-hub/internal/delivery/http/routes"
	v1 "talent-hub/internal/delivery/http/routes/v1"
	"talent-hub/internal/pkg/validation"
	"talent-hub/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Fiber *fiber.App
	// WS serves the event stream on its own port. Nil when WS_PORT is unset.
	WS *http.Server

	container *Container
	logger    logrus.FieldLogger
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: int(c.Config.Resume.MaxBytes) + 1<<20,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	a := &App{Fiber: f, container: c, logger: c.Logger}
	if port := strings.TrimSpace(c.Config.App.WSPort); port != "" {
		mux := http.NewServeMux()
		mux.Handle("/ws/events", ws.NewHandler(c.Hub, c.Tokens, c.Logger.WithField("component", "ws")))
		a.WS = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	}
	return a
}

func Bootstrap(cfg config.Config, logger *logrus.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *logrus.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger.WithField("component", "http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger.WithField("component", "http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	v := validation.New()
	httpLogger := c.Logger.WithField("component", "http")

	var cachePinger handler.Pinger
	if c.Cache != nil {
		cachePinger = c.Cache
	}

	routes.NewRegistry(v1.Handlers{
		Health:       handler.NewHealthHandler(c.DB, cachePinger, httpLogger),
		Jobs:         handler.NewJobHandler(c.Jobs, v),
		Applications: handler.NewApplicationHandler(c.Applications, v),
		Exports:      handler.NewExportHandler(c.Exports),
		Profiles:     handler.NewProfileHandler(c.Profiles, v),
		Drafts:       handler.NewDraftHandler(c.Drafts),
		Resumes:      handler.NewResumeHandler(c.Resumes),
	}, middleware.NewAuthMiddleware(c.Tokens)).Register(app)
}

// Serve runs the event hub, the API and the websocket listener until ctx is
// cancelled or one of them fails, then shuts everything down.
func (a *App) Serve(ctx context.Context) error {
	cfg := a.container.Config.App
	httpAddr, err := ListenAddr(cfg.HTTPPort)
	if err != nil {
		return err
	}
	var wsAddr string
	if a.WS != nil {
		if wsAddr, err = ListenAddr(cfg.WSPort); err != nil {
			return err
		}
		a.WS.Addr = wsAddr
	}

	g, gctx := errgroup.WithContext(ctx)

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go a.container.Hub.Run(hubCtx)

	g.Go(func() error {
		a.logger.WithField("addr", httpAddr).Info("http listening")
		return a.Fiber.Listen(httpAddr, fiber.ListenConfig{DisableStartupMessage: true})
	})

	if a.WS != nil {
		g.Go(func() error {
			a.logger.WithField("addr", wsAddr).Info("websocket listening")
			if err := a.WS.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := a.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
		if a.WS != nil {
			if err := a.WS.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("websocket shutdown: %w", err))
			}
		}
		stopHub()
		return errors.Join(errs...)
	})

	return g.Wait()
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
