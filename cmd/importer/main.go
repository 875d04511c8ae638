package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"chalet_booking/internal/adapters/observability"
	redisad "chalet_booking/internal/adapters/redis"
	"chalet_booking/internal/app"
	"chalet_booking/internal/domain"
	"chalet_booking/internal/shared"
	mysqlrepo "chalet_booking/internal/storage/mysql"
)

// record mirrors one reservation in an exported JSON file.
type record struct {
	Unit      string  `json:"unit"`
	Checkin   string  `json:"checkin"`
	Checkout  string  `json:"checkout"`
	DailyRate float64 `json:"daily_rate"`
	GuestName string  `json:"guest_name"`
	Status    string  `json:"status"`
	Notes     string  `json:"notes"`
}

func main() {
	file := flag.String("file", "", "path to a JSON array of reservation records")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if *file == "" {
		log.Fatal().Msg("-file is required")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("read import file failed")
	}
	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatal().Err(err).Msg("import file is not a JSON array of reservations")
	}

	log.Info().
		Str("file", *file).
		Int("records", len(records)).
		Int("workers", cfg.Workers).
		Int("rate", cfg.ImportRate).
		Msg("importer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	cmd := app.NewCommandService(repo, cache)

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	limiter := rate.NewLimiter(rate.Limit(cfg.ImportRate), cfg.ImportRate)
	var wg sync.WaitGroup

	for i, rec := range records {
		// throttle before dispatching; keeps write pressure bounded
		if err := limiter.Wait(ctx); err != nil {
			log.Fatal().Err(err).Msg("rate limiter wait failed")
		}
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(n int, rec record) {
			defer wg.Done()
			defer sem.Release(1)

			id, err := cmd.ImportReservation(ctx, domain.Reservation{
				Unit:      rec.Unit,
				Checkin:   rec.Checkin,
				Checkout:  rec.Checkout,
				DailyRate: rec.DailyRate,
				GuestName: rec.GuestName,
				Status:    rec.Status,
				Notes:     rec.Notes,
			})
			if err != nil {
				log.Warn().Int("record", n).Str("unit", rec.Unit).Err(err).Msg("import failed")
				return
			}
			log.Info().Int("record", n).Int64("id", id).Str("unit", rec.Unit).Msg("import ok")
		}(i, rec)
	}

	wg.Wait()
	log.Info().Msg("import completed")
}
