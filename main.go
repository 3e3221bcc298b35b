package main

import (
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellingbee/internal/daily"
	"github.com/robalobadob/spellingbee/internal/database"
	"github.com/robalobadob/spellingbee/internal/game"
	"github.com/robalobadob/spellingbee/internal/httpserver"
	"github.com/robalobadob/spellingbee/internal/store"
	"github.com/robalobadob/spellingbee/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	db, err := database.Open(getEnv("DB_PATH", "./data/bee.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	var migrations fs.FS = database.Migrations()
	if dir := os.Getenv("SQL_DIR"); dir != "" {
		migrations = os.DirFS(dir)
	}
	if err := database.Migrate(db, migrations); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	corpus := words.Default()
	puzzles := daily.NewStore(db)
	srv := httpserver.New(store.NewMemoryStore(), game.NewEngine(corpus), httpserver.Options{
		Puzzles:    daily.NewProvider(puzzles, corpus, getEnv("DAILY_SALT", "spellingbee")),
		DailyStore: puzzles,
		DB:         db,
	})

	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting spellingbee server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
