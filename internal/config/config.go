package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/league-history/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string

	CacheEnabled    bool
	CacheTTL        time.Duration
	CacheEmptyGrace time.Duration

	SleeperBaseURL               string
	SleeperTimeout               time.Duration
	SleeperMaxRetries            int
	SleeperBackoffBase           time.Duration
	SleeperBackoffMax            time.Duration
	SleeperCircuitEnabled        bool
	SleeperCircuitFailureCount   int
	SleeperCircuitOpenTimeout    time.Duration
	SleeperCircuitHalfOpenMaxReq int

	NormalizerMaxWorkers     int
	RecordBookMaxWorkers     int
	TaxiMaxSlots             int
	TaxiMaxQuarterbacks      int
	EligibilityPendingWindow time.Duration

	UptraceEnabled bool
	UptraceDSN     string

	PprofEnabled bool
	PprofAddr    string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("SERVICE_NAME", "league-history"),
		ServiceVersion:     getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SleeperBaseURL:     strings.TrimSpace(getEnv("SLEEPER_BASE_URL", "https://api.sleeper.app")),
		PprofAddr:          strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		UptraceDSN:         strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}
	if readTimeout <= 0 || writeTimeout <= 0 {
		return Config{}, fmt.Errorf("HTTP timeouts must be > 0")
	}
	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cacheEmptyGrace, err := time.ParseDuration(getEnv("CACHE_EMPTY_GRACE", "1m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_EMPTY_GRACE: %w", err)
	}
	if cacheEmptyGrace < 0 {
		return Config{}, fmt.Errorf("CACHE_EMPTY_GRACE must be >= 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL
	cfg.CacheEmptyGrace = cacheEmptyGrace

	sleeperTimeout, err := time.ParseDuration(getEnv("SLEEPER_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_TIMEOUT: %w", err)
	}
	if sleeperTimeout <= 0 {
		return Config{}, fmt.Errorf("SLEEPER_TIMEOUT must be > 0")
	}
	sleeperMaxRetries, err := getEnvAsInt("SLEEPER_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_MAX_RETRIES: %w", err)
	}
	if sleeperMaxRetries < 0 {
		return Config{}, fmt.Errorf("SLEEPER_MAX_RETRIES must be >= 0")
	}
	sleeperBackoffBase, err := time.ParseDuration(getEnv("SLEEPER_BACKOFF_BASE", "500ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_BACKOFF_BASE: %w", err)
	}
	sleeperBackoffMax, err := time.ParseDuration(getEnv("SLEEPER_BACKOFF_MAX", "8s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_BACKOFF_MAX: %w", err)
	}
	if sleeperBackoffBase <= 0 || sleeperBackoffMax < sleeperBackoffBase {
		return Config{}, fmt.Errorf("SLEEPER_BACKOFF_MAX must be >= SLEEPER_BACKOFF_BASE > 0")
	}
	cfg.SleeperTimeout = sleeperTimeout
	cfg.SleeperMaxRetries = sleeperMaxRetries
	cfg.SleeperBackoffBase = sleeperBackoffBase
	cfg.SleeperBackoffMax = sleeperBackoffMax

	sleeperCircuitEnabled, err := strconv.ParseBool(getEnv("SLEEPER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_ENABLED: %w", err)
	}
	sleeperCircuitFailureCount, err := getEnvAsInt("SLEEPER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if sleeperCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	sleeperCircuitOpenTimeout, err := time.ParseDuration(getEnv("SLEEPER_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if sleeperCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	sleeperCircuitHalfOpenMaxReq, err := getEnvAsInt("SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if sleeperCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	cfg.SleeperCircuitEnabled = sleeperCircuitEnabled
	cfg.SleeperCircuitFailureCount = sleeperCircuitFailureCount
	cfg.SleeperCircuitOpenTimeout = sleeperCircuitOpenTimeout
	cfg.SleeperCircuitHalfOpenMaxReq = sleeperCircuitHalfOpenMaxReq

	normalizerMaxWorkers, err := getEnvAsInt("NORMALIZER_MAX_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse NORMALIZER_MAX_WORKERS: %w", err)
	}
	if normalizerMaxWorkers < 1 {
		return Config{}, fmt.Errorf("NORMALIZER_MAX_WORKERS must be >= 1")
	}
	recordBookMaxWorkers, err := getEnvAsInt("RECORDBOOK_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECORDBOOK_MAX_WORKERS: %w", err)
	}
	if recordBookMaxWorkers < 1 {
		return Config{}, fmt.Errorf("RECORDBOOK_MAX_WORKERS must be >= 1")
	}
	cfg.NormalizerMaxWorkers = normalizerMaxWorkers
	cfg.RecordBookMaxWorkers = recordBookMaxWorkers

	taxiMaxSlots, err := getEnvAsInt("TAXI_MAX_SLOTS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse TAXI_MAX_SLOTS: %w", err)
	}
	if taxiMaxSlots < 0 {
		return Config{}, fmt.Errorf("TAXI_MAX_SLOTS must be >= 0")
	}
	taxiMaxQuarterbacks, err := getEnvAsInt("TAXI_MAX_QUARTERBACKS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse TAXI_MAX_QUARTERBACKS: %w", err)
	}
	if taxiMaxQuarterbacks < 0 {
		return Config{}, fmt.Errorf("TAXI_MAX_QUARTERBACKS must be >= 0")
	}
	pendingWindow, err := time.ParseDuration(getEnv("ELIGIBILITY_PENDING_WINDOW", "168h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ELIGIBILITY_PENDING_WINDOW: %w", err)
	}
	if pendingWindow <= 0 {
		return Config{}, fmt.Errorf("ELIGIBILITY_PENDING_WINDOW must be > 0")
	}
	cfg.TaxiMaxSlots = taxiMaxSlots
	cfg.TaxiMaxQuarterbacks = taxiMaxQuarterbacks
	cfg.EligibilityPendingWindow = pendingWindow

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	if uptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	cfg.UptraceEnabled = uptraceEnabled

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	if pprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	cfg.PprofEnabled = pprofEnabled

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}
	cfg.PyroscopeEnabled = pyroscopeEnabled
	cfg.PyroscopeServerAddress = pyroscopeServerAddress
	cfg.PyroscopeAppName = getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	cfg.PyroscopeUploadRate = pyroscopeUploadRate

	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
