package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"abinterior/config"
	"abinterior/db"
	"abinterior/db/mongo"
	"abinterior/db/postgres"
	"abinterior/handlers"
	"abinterior/repository"
	"abinterior/routes"
	"abinterior/service"
	"abinterior/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load config from .env or environment
	cfg := config.LoadConfig()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	ctx := context.Background()

	var (
		store        db.DB
		customerRepo repository.CustomerRepository
		labourRepo   repository.LabourRepository
		profileRepo  repository.ProfileRepository
	)

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		pg := postgres.NewPostgresDB(cfg.PostgresURL, cfg.DBConnectTimeout)
		// Migrations run with the first successful connect, and again on the next dial if they fail.
		pg.OnConnect = func(ctx context.Context, _ *sql.DB) error {
			if err := db.RunMigrations(cfg.PostgresURL); err != nil {
				log.Warn().Err(err).Msg("migrations failed")
				return err
			}
			return nil
		}
		store = pg
		customerRepo = repository.NewPostgresCustomerRepo(pg)
		labourRepo = repository.NewPostgresLabourRepo(pg)
		profileRepo = repository.NewPostgresProfileRepo(pg)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDatabase, cfg.DBConnectTimeout)
		store = mg
		customerRepo = repository.NewMongoCustomerRepo(mg)
		labourRepo = repository.NewMongoLabourRepo(mg)
		profileRepo = repository.NewMongoProfileRepo(mg)

	default:
		log.Fatal().Str("db_type", cfg.DBType).Msg("DB_TYPE not supported")
	}

	// The server starts even when the store is down; requests answer 503 until it is back.
	if err := store.Connect(ctx); err != nil {
		log.Warn().Err(err).Str("db_type", cfg.DBType).Msg("database not reachable at startup")
	} else {
		log.Info().Str("db_type", cfg.DBType).Msg("database connected")
	}

	var summarizer service.Summarizer
	if cfg.OpenAIKey != "" {
		summarizer = utils.NewOpenAISummarizer(cfg.OpenAIKey, cfg.OpenAIModel)
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set, summaries are disabled")
	}
	ledger := service.NewLedgerService(customerRepo, labourRepo, summarizer)

	// Statement handler with combined repository
	statementRepo := repository.NewStatementRepository(customerRepo, profileRepo)
	statementHandler := &handlers.StatementHandler{
		Printer: utils.NewStatementRenderer(statementRepo, cfg.StatementTemplate),
	}
	if cfg.R2Enabled() {
		uploader, err := utils.NewR2Uploader(ctx, utils.R2Config{
			Bucket:          cfg.R2Bucket,
			AccountID:       cfg.R2AccountID,
			PublicURL:       cfg.R2PublicURL,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
		})
		if err != nil {
			log.Error().Err(err).Msg("statement sharing disabled")
		} else {
			statementHandler.Uploader = uploader
		}
	}

	router := routes.SetupRoutes(routes.Handlers{
		Auth:      &handlers.AuthHandler{User: cfg.AuthUser, PasswordHash: cfg.AuthPasswordHash},
		Customer:  &handlers.CustomerHandler{Ledger: ledger},
		Labour:    &handlers.LabourHandler{Ledger: ledger},
		Transfer:  &handlers.TransferHandler{Ledger: ledger},
		Statement: statementHandler,
		Profile:   &handlers.ProfileHandler{Repo: profileRepo},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := store.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("database disconnect failed")
	}
}
