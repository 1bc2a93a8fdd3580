package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/vantagepointcrm/crm-api/internal/api"
	"github.com/vantagepointcrm/crm-api/internal/core/ports"
	"github.com/vantagepointcrm/crm-api/internal/core/service"
	"github.com/vantagepointcrm/crm-api/internal/infrastructure/db/memory"
	mongostore "github.com/vantagepointcrm/crm-api/internal/infrastructure/db/mongo"
	redisstore "github.com/vantagepointcrm/crm-api/internal/infrastructure/db/redis"
	"github.com/vantagepointcrm/crm-api/internal/infrastructure/partner"
	"github.com/vantagepointcrm/crm-api/internal/infrastructure/queue"
	"github.com/vantagepointcrm/crm-api/internal/pkg/config"
	"github.com/vantagepointcrm/crm-api/pkg/logger"
)

// @title           VantagePoint CRM API
// @version         2.0.0
// @description     Role-based CRM backend serving sales-lead records to admin, manager and agent users.
//
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		users ports.UserRepository
		leads ports.LeadRepository
		db    *mongodriver.Database
	)

	switch cfg.Store {
	case "mongo":
		client, database, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		leadRepo := mongostore.NewLeadRepository(database)
		if err := leadRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure lead indexes")
		}
		users = mongostore.NewUserRepository(database)
		leads = leadRepo
		db = database
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo store")

	default:
		users = memory.NewUserRepository(memory.SeedUsers())
		leads = memory.NewLeadRepository(memory.SeedLeads())
		log.Info().Msg("using seeded in-memory store")
	}

	var rdb *redis.Client
	var dedup service.DedupChecker
	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, docs dedup disabled")
		} else {
			rdb = client
			dedup = redisstore.NewDocsDedup(client, cfg.Redis.DocsTTL)
			defer client.Close()
		}
	}

	partnerClient := partner.NewClient(partner.Config{
		URL:         cfg.Partner.URL,
		VendorToken: cfg.Partner.VendorToken,
	}, log)
	docsService := service.NewDocsService(leads, partnerClient, dedup, cfg.Partner.SalesRep, log)
	dispatcher := queue.NewDispatcher(cfg.DocsWorkers, docsService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Config:     cfg,
		Logger:     log,
		Users:      users,
		Leads:      leads,
		Dispatcher: dispatcher,
		Mongo:      db,
		Redis:      rdb,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
