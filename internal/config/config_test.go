package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SERVICE_NAME", "league-history-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "league-history-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 10*time.Minute {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
		if cfg.CacheEmptyGrace != time.Minute {
			t.Fatalf("unexpected default cache empty grace: %s", cfg.CacheEmptyGrace)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_SleeperConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SLEEPER_BASE_URL", "")
		t.Setenv("SLEEPER_TIMEOUT", "")
		t.Setenv("SLEEPER_MAX_RETRIES", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SleeperBaseURL != "https://api.sleeper.app" {
			t.Fatalf("unexpected default sleeper base url: %q", cfg.SleeperBaseURL)
		}
		if cfg.SleeperTimeout != 30*time.Second {
			t.Fatalf("unexpected default sleeper timeout: %s", cfg.SleeperTimeout)
		}
		if cfg.SleeperMaxRetries != 3 {
			t.Fatalf("unexpected default sleeper max retries: %d", cfg.SleeperMaxRetries)
		}
		if !cfg.SleeperCircuitEnabled {
			t.Fatalf("expected sleeper circuit enabled by default")
		}
	})

	t.Run("backoff max below base", func(t *testing.T) {
		t.Setenv("SLEEPER_BACKOFF_BASE", "5s")
		t.Setenv("SLEEPER_BACKOFF_MAX", "1s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when SLEEPER_BACKOFF_MAX < SLEEPER_BACKOFF_BASE")
		}
	})

	t.Run("invalid circuit failure count", func(t *testing.T) {
		t.Setenv("SLEEPER_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for SLEEPER_CIRCUIT_FAILURE_COUNT=0")
		}
	})
}

func TestLoad_EligibilityConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("TAXI_MAX_SLOTS", "")
		t.Setenv("TAXI_MAX_QUARTERBACKS", "")
		t.Setenv("ELIGIBILITY_PENDING_WINDOW", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.TaxiMaxSlots != 3 {
			t.Fatalf("unexpected default taxi max slots: %d", cfg.TaxiMaxSlots)
		}
		if cfg.TaxiMaxQuarterbacks != 1 {
			t.Fatalf("unexpected default taxi max quarterbacks: %d", cfg.TaxiMaxQuarterbacks)
		}
		if cfg.EligibilityPendingWindow != 168*time.Hour {
			t.Fatalf("unexpected default pending window: %s", cfg.EligibilityPendingWindow)
		}
	})

	t.Run("negative slots rejected", func(t *testing.T) {
		t.Setenv("TAXI_MAX_SLOTS", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for TAXI_MAX_SLOTS=-1")
		}
	})
}

func TestLoad_WorkerPoolValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("NORMALIZER_MAX_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for NORMALIZER_MAX_WORKERS=0")
	}
}
