package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/vickeyy980-dotcom/trade-summary-system/internal/config"
	httpapi "github.com/vickeyy980-dotcom/trade-summary-system/internal/http"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/logger"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/repository"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/repository/memory"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/repository/postgres"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Environment, cfg.LogLevel)

	var repoImpl repository.TradeRepository
	if cfg.UseInMemoryStore {
		log.Warn("DATABASE_URL not set, using in-memory store. Data will reset on restart.")
		repoImpl = memory.New()
	} else {
		db, err := sql.Open("postgres", cfg.DBURL)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to postgres")
		}
		if err := db.Ping(); err != nil {
			log.WithError(err).Fatal("postgres ping failed")
		}
		repoImpl = postgres.New(db)
		defer db.Close()
		log.Info("connected to postgres")
	}

	summarySvc := service.NewSummaryService(repoImpl, log)
	if cfg.UseInMemoryStore {
		// The in-memory store starts empty, so seed the configured flat rate.
		if err := summarySvc.SetFlatRate(context.Background(), cfg.FlatRate); err != nil {
			log.WithError(err).Fatal("failed to seed flat rate")
		}
	}

	router := httpapi.Router(summarySvc, log)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Infof("trade summary service listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}
