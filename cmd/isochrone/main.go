package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"isochrone/config"
	"isochrone/internal/delivery/http/router/handler"
	"isochrone/internal/delivery/http/validator"
	"isochrone/internal/graphinit"
	logs "isochrone/internal/infra/log"
	"isochrone/internal/roadgraph"
)

// startServerParams holds the dependencies fx.Invoke needs to bring the
// echo server up and the road graph loaded, the same shape as
// cmd/radar/main.go's startServer.
type startServerParams struct {
	fx.In
	fx.Lifecycle

	Config           *config.Config
	Logger           *slog.Logger
	Graph            *graphinit.Handle
	IsochroneHandler *handler.IsochroneHandler
	ScoreHandler     *handler.ScoreHandler
}

func main() {
	fx.New(
		injectInfra(),
		injectGraph(),
		injectHandler(),
		fx.Invoke(startServer),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
	)
}

func injectGraph() fx.Option {
	return fx.Provide(graphinit.New)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewIsochroneHandler,
			handler.NewScoreHandler,
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	params.Graph.Load(func() *roadgraph.Graph {
		cfg := params.Config.Isochrone
		if cfg == nil || cfg.VerticesPath == "" || cfg.EdgesPath == "" {
			params.Logger.Warn("no road graph snapshot configured, starting with an empty graph")

			return roadgraph.Load(func(func(roadgraph.Node) bool) {}, func(func(roadgraph.Edge) bool) {}, params.Logger)
		}

		loader := roadgraph.NewCSVLoader(cfg.VerticesPath, cfg.EdgesPath)

		return roadgraph.Load(loader.Nodes(), loader.Edges(), params.Logger)
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		status := "not_ready"
		if params.Graph.IsReady() {
			status = "ready"
		}

		return c.JSON(200, map[string]string{"status": status})
	})

	apiGroup := e.Group("/api")
	apiGroup.POST("/isochrones", params.IsochroneHandler.Create)
	apiGroup.POST("/isochrones/score", params.ScoreHandler.Score)

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				port := 8080
				if params.Config.HTTP.Port != 0 {
					port = params.Config.HTTP.Port
				}

				if err := e.Start(fmt.Sprintf(":%d", port)); err != nil {
					params.Logger.Error("isochrone HTTP server stopped", slog.Any("error", err))
					os.Exit(1)
				}
			}()

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			return e.Shutdown(stopCtx)
		},
	})
}
