package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bingo/apps/go-server/internal/config"
	"github.com/robalobadob/bingo/apps/go-server/internal/httpserver"
	"github.com/robalobadob/bingo/apps/go-server/internal/results"
	"github.com/robalobadob/bingo/apps/go-server/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := results.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open results database")
	}
	res := results.NewStore(db)
	defer func() { _ = res.Close() }()

	sessions := store.NewMemoryStore()
	srv := httpserver.New(cfg.ClientOrigin, cfg.DailySalt, sessions, res)

	log.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Msg("starting bingo-go")
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
