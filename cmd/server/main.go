package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/healthprice-aggregator/internal/aggregator"
	"github.com/healthprice-aggregator/internal/api"
	"github.com/healthprice-aggregator/internal/cache"
	"github.com/healthprice-aggregator/internal/config"
	"github.com/healthprice-aggregator/internal/domain"
	"github.com/healthprice-aggregator/internal/sources"
)

func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func newCache(cfg *domain.CacheConfig, logger *logrus.Logger) (domain.Cache, error) {
	if cfg.Backend == "redis" {
		return cache.NewRedis(cfg.RedisURL, logger)
	}
	return cache.NewMemory(cfg.MaxEntries, cfg.SweepInterval, logger)
}

func buildSources(cfg *domain.SourcesConfig, logger *logrus.Logger) aggregator.Sources {
	return aggregator.Sources{
		Providers: sources.NewNPIClient(cfg.NPIRegistry, logger),
		Places:    sources.NewPlacesClient(cfg.GooglePlaces, logger),
		Quality:   sources.NewQualityClient(cfg.QualityData, logger),
		Prices: []domain.PriceSource{
			sources.WithPriceBreaker(sources.NewCMSPriceClient(cfg.CMS, logger), logger),
			sources.WithPriceBreaker(sources.NewFairHealthClient(cfg.FairHealth, logger), logger),
			sources.NewUserReportedPrices(logger),
		},
		Pharmacies: []domain.PharmacyPriceSource{
			sources.WithPharmacyBreaker(sources.NewGoodRxClient(cfg.GoodRx, logger), logger),
			sources.WithPharmacyBreaker(sources.NewRxSaverClient(cfg.RxSaver, logger), logger),
			sources.WithPharmacyBreaker(sources.NewBlinkHealthClient(cfg.BlinkHealth, logger), logger),
		},
		Drugs:        sources.NewFDAClient(cfg.FDA, logger),
		Telemedicine: sources.NewTelemedicineClient(cfg.Telemedicine, logger),
		Emergency:    sources.NewEmergencyFeedClient(cfg.EmergencyFeed, logger),
		Trials:       sources.NewTrialsClient(cfg.Trials, logger),
		Tourism:      sources.NewTourismClient(cfg.Tourism, logger),
		Travel:       sources.NewTravelClient(cfg.Travel, logger),
		Insurance:    sources.NewMarketplaceClient(cfg.HealthcareGov, logger),
		Wearables:    sources.NewWearableConnectors(logger),
	}
}

func main() {
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := newLogger(cfg.Logging)

	store, err := newCache(&cfg.Cache, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize cache")
	}

	ttls := aggregator.TTLs{
		Default:    cfg.Cache.DefaultTTL,
		Emergency:  cfg.Cache.EmergencyTTL,
		DrugPrices: cfg.Cache.DrugPriceTTL,
		Trials:     cfg.Cache.TrialsTTL,
		Insurance:  cfg.Cache.InsuranceTTL,
	}
	agg := aggregator.New(buildSources(&cfg.Sources, logger), store, ttls, logger)
	server := api.NewServer(&cfg.Server, agg, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("Shutdown did not complete cleanly")
		}
	}()

	logger.WithFields(logrus.Fields{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Healthcare price aggregator starting")

	if err := server.Start(); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
	logger.Info("Server stopped")
}
