package app

import (
	"net/http"

	"recipe-api-go/internal/config"
	"recipe-api-go/internal/db"
	recipedomain "recipe-api-go/internal/domain/recipe"
	sessiondomain "recipe-api-go/internal/domain/session"
	reciperepo "recipe-api-go/internal/repository/postgres/recipe"
	sessionrepo "recipe-api-go/internal/repository/postgres/session"
	"recipe-api-go/internal/transport/httpserver"
	"recipe-api-go/internal/transport/httpserver/handler"
	"recipe-api-go/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, log); err != nil {
		return nil, err
	}

	sessionService := sessiondomain.NewService(sessionrepo.NewPostgres(dbConn))
	recipeService := recipedomain.NewService(reciperepo.NewPostgres(dbConn))
	handlers := handler.New(recipeService, log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, sessionService, registry, log)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		log:        log,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
