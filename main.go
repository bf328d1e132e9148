package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/bingo/internal/config"
	"github.com/robalobadob/bingo/internal/database"
	"github.com/robalobadob/bingo/internal/httpserver"
	"github.com/robalobadob/bingo/internal/lists"
	"github.com/robalobadob/bingo/internal/store"
	"github.com/robalobadob/bingo/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	l, err := lists.Load(cfg.LevelsFile, cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load lists")
	}
	levels, words := l.Stats()
	if levels == 0 {
		log.Warn().Msg("levels list is empty; levels boards are disabled")
	}
	if words == 0 {
		log.Warn().Msg("words list is empty; tags boards are disabled")
	}
	log.Info().Int("levels", levels).Int("words", words).Msg("lists loaded")

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()
	if err := database.Migrate(db, migrations.FS); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	srv := httpserver.New(cfg, l, store.NewMemoryStore(), db)
	log.Info().Str("port", cfg.Port).Msg("starting bingo server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
