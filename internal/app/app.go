package app

import (
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/riskibarqy/league-history/external/sleeper"
	"github.com/riskibarqy/league-history/internal/config"
	"github.com/riskibarqy/league-history/internal/domain/eligibility"
	"github.com/riskibarqy/league-history/internal/interfaces/httpapi"
	"github.com/riskibarqy/league-history/internal/platform/cache"
	"github.com/riskibarqy/league-history/internal/platform/logging"
	"github.com/riskibarqy/league-history/internal/platform/resilience"
	"github.com/riskibarqy/league-history/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	gateway := sleeper.NewClient(sleeper.ClientConfig{
		BaseURL:    cfg.SleeperBaseURL,
		Timeout:    cfg.SleeperTimeout,
		MaxRetries: cfg.SleeperMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SleeperCircuitEnabled,
			FailureThreshold: cfg.SleeperCircuitFailureCount,
			OpenTimeout:      cfg.SleeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SleeperCircuitHalfOpenMaxReq,
		},
		Backoff: resilience.BackoffConfig{
			BaseDelay: cfg.SleeperBackoffBase,
			MaxDelay:  cfg.SleeperBackoffMax,
		},
		Caches: newClientCaches(cfg),
	})

	normalizer := usecase.NewNormalizerService(gateway, logger, cfg.NormalizerMaxWorkers)
	timelineSvc := usecase.NewTimelineService(normalizer, logger)
	eligibilitySvc := usecase.NewEligibilityService(normalizer, gateway, logger, usecase.EligibilityConfig{
		Rules: eligibility.Rules{
			MaxSlots:        cfg.TaxiMaxSlots,
			MaxQuarterbacks: cfg.TaxiMaxQuarterbacks,
		},
		PendingWindow: cfg.EligibilityPendingWindow,
	})
	recordBookSvc := usecase.NewRecordBookService(normalizer, logger, cfg.RecordBookMaxWorkers)
	scoringSvc := usecase.NewScoringService(normalizer, gateway, logger)
	awardsSvc := usecase.NewAwardsService(normalizer, scoringSvc, gateway, logger)

	handler := httpapi.NewHandler(gateway, timelineSvc, eligibilitySvc, recordBookSvc, scoringSvc, awardsSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func newClientCaches(cfg config.Config) sleeper.ClientCaches {
	if !cfg.CacheEnabled {
		return sleeper.ClientCaches{}
	}

	newStore := func(ttl time.Duration) *cache.Store {
		return cache.NewStore(ttl, cache.WithEmptyGrace(cfg.CacheEmptyGrace, isEmptyCollection))
	}

	// Settled seasons never change, so league metadata and the heavy
	// players directory get a longer TTL than the per-week resources.
	longTTL := 6 * cfg.CacheTTL

	return sleeper.ClientCaches{
		Leagues:      newStore(longTTL),
		Rosters:      newStore(cfg.CacheTTL),
		Matchups:     newStore(cfg.CacheTTL),
		Transactions: newStore(cfg.CacheTTL),
		Brackets:     newStore(cfg.CacheTTL),
		Stats:        newStore(longTTL),
		Players:      newStore(longTTL),
	}
}

func isEmptyCollection(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}
