package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
	"github.com/robfig/cron/v3"
)

// Config stores runtime configuration for the pipeline.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level
	LogFormat      logging.Format

	DataDir             string
	SourceBaseURL       string
	SourceToken         string
	SourceTimeout       time.Duration
	SourceMaxRetries    int
	SourceCircuit       CircuitConfig
	ReferenceTablesPath string
	WriteWorkers        int

	IdentityFuzzyThreshold float64
	SurfaceFuzzyThreshold  float64
	DateFuzzyThreshold     float64

	ArchiveDBEnabled        bool
	DBURL                   string
	DBDisablePreparedBinary bool

	ScheduleCron string

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	PprofEnabled               bool
	PprofAddr                  string
}

type CircuitConfig struct {
	Enabled        bool
	FailureCount   int
	OpenTimeout    time.Duration
	HalfOpenMaxReq int
}

// LoadDotEnv preloads variables from a .env file. Variables already set in
// the environment win, and a missing file is not an error.
func LoadDotEnv(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	sourceTimeout, err := time.ParseDuration(getEnv("SOURCE_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_TIMEOUT: %w", err)
	}
	if sourceTimeout <= 0 {
		return Config{}, fmt.Errorf("SOURCE_TIMEOUT must be > 0")
	}
	sourceMaxRetries, err := getEnvAsInt("SOURCE_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SOURCE_MAX_RETRIES: %w", err)
	}
	if sourceMaxRetries < 0 {
		return Config{}, fmt.Errorf("SOURCE_MAX_RETRIES must be >= 0")
	}
	sourceCircuit, err := loadCircuit("SOURCE_CIRCUIT")
	if err != nil {
		return Config{}, err
	}

	writeWorkers, err := getEnvAsInt("WRITE_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse WRITE_WORKERS: %w", err)
	}
	if writeWorkers < 1 {
		return Config{}, fmt.Errorf("WRITE_WORKERS must be >= 1")
	}

	identityThreshold, err := getEnvAsThreshold("IDENTITY_FUZZY_THRESHOLD", 70)
	if err != nil {
		return Config{}, err
	}
	surfaceThreshold, err := getEnvAsThreshold("SURFACE_FUZZY_THRESHOLD", 75)
	if err != nil {
		return Config{}, err
	}
	dateThreshold, err := getEnvAsThreshold("DATE_FUZZY_THRESHOLD", 95)
	if err != nil {
		return Config{}, err
	}

	archiveDBEnabled, err := strconv.ParseBool(getEnv("ARCHIVE_DB_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ARCHIVE_DB_ENABLED: %w", err)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if archiveDBEnabled && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when ARCHIVE_DB_ENABLED=true")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	scheduleCron := strings.TrimSpace(getEnv("SCHEDULE_CRON", ""))
	if scheduleCron != "" {
		if _, err := cron.ParseStandard(scheduleCron); err != nil {
			return Config{}, fmt.Errorf("parse SCHEDULE_CRON: %w", err)
		}
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

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

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "matchedge-pipeline"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:                  logging.ParseFormat(getEnv("APP_LOG_FORMAT", string(logging.FormatJSON))),
		DataDir:                    strings.TrimSpace(getEnv("DATA_DIR", "data")),
		SourceBaseURL:              strings.TrimSpace(getEnv("SOURCE_BASE_URL", "")),
		SourceToken:                strings.TrimSpace(getEnv("SOURCE_TOKEN", "")),
		SourceTimeout:              sourceTimeout,
		SourceMaxRetries:           sourceMaxRetries,
		SourceCircuit:              sourceCircuit,
		ReferenceTablesPath:        strings.TrimSpace(getEnv("REFERENCE_TABLES_PATH", "")),
		WriteWorkers:               writeWorkers,
		IdentityFuzzyThreshold:     identityThreshold,
		SurfaceFuzzyThreshold:      surfaceThreshold,
		DateFuzzyThreshold:         dateThreshold,
		ArchiveDBEnabled:           archiveDBEnabled,
		DBURL:                      dbURL,
		DBDisablePreparedBinary:    dbDisablePreparedBinary,
		ScheduleCron:               scheduleCron,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
	}
	if cfg.DataDir == "" {
		return Config{}, fmt.Errorf("DATA_DIR cannot be empty")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

func loadCircuit(prefix string) (CircuitConfig, error) {
	enabled, err := strconv.ParseBool(getEnv(prefix+"_ENABLED", "true"))
	if err != nil {
		return CircuitConfig{}, fmt.Errorf("parse %s_ENABLED: %w", prefix, err)
	}
	failureCount, err := getEnvAsInt(prefix+"_FAILURE_COUNT", 5)
	if err != nil {
		return CircuitConfig{}, fmt.Errorf("parse %s_FAILURE_COUNT: %w", prefix, err)
	}
	if failureCount < 1 {
		return CircuitConfig{}, fmt.Errorf("%s_FAILURE_COUNT must be >= 1", prefix)
	}
	openTimeout, err := time.ParseDuration(getEnv(prefix+"_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return CircuitConfig{}, fmt.Errorf("parse %s_OPEN_TIMEOUT: %w", prefix, err)
	}
	if openTimeout <= 0 {
		return CircuitConfig{}, fmt.Errorf("%s_OPEN_TIMEOUT must be > 0", prefix)
	}
	halfOpenMaxReq, err := getEnvAsInt(prefix+"_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return CircuitConfig{}, fmt.Errorf("parse %s_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if halfOpenMaxReq < 1 {
		return CircuitConfig{}, fmt.Errorf("%s_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}
	return CircuitConfig{
		Enabled:        enabled,
		FailureCount:   failureCount,
		OpenTimeout:    openTimeout,
		HalfOpenMaxReq: halfOpenMaxReq,
	}, nil
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

// getEnvAsThreshold reads a fuzzy-match score cut-off in (0, 100].
func getEnvAsThreshold(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 || out > 100 {
		return 0, fmt.Errorf("%s must be in (0, 100]", key)
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
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
