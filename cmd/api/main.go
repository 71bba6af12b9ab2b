package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/google"
	"flex_reviews/internal/adapters/hostaway"
	server "flex_reviews/internal/adapters/http_server"
	"flex_reviews/internal/adapters/observability"
	redisad "flex_reviews/internal/adapters/redis"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/shared"
	filestore "flex_reviews/internal/storage/file"
	mysqlstore "flex_reviews/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// internal dataset: MySQL table when a DSN is set, JSON file otherwise
	var raw domain.RawReviewStore
	if cfg.ReviewsDSN != "" {
		db, err := sql.Open("mysql", cfg.ReviewsDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		raw = mysqlstore.New(db)
	} else {
		log.Info().Str("file", cfg.ReviewsFile).Msg("serving dataset from file")
		raw = filestore.New(cfg.ReviewsFile)
	}

	// deps
	internal := hostaway.New(raw)
	external := google.New(cfg.PlacesBase, cfg.PlacesKey, cfg.PlaceID, cfg.GoogleListing, cfg.GoogleRPS)
	vis := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.HiddenKey)
	svc := app.NewReviewService(internal, external, vis)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Svc: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
