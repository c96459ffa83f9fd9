package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all viewer settings, populated from environment variables.
type Config struct {
	FaultThreshold   float64
	ViewportHalfSpan float64
	PickRadius       float64

	SimPoints int
	SimSeed   uint64

	ThemeFile string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	LogFile         string
	ShutdownTimeout time.Duration

	// Fault publishing configuration.
	KafkaBrokers    []string
	KafkaFaultTopic string
	FaultsEnabled   bool

	// Mapbox reverse geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file in the working directory is honoured if present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	threshold, err := parseFloat("FAULT_THRESHOLD", 70)
	if err != nil {
		return nil, err
	}
	halfSpan, err := parsePositiveFloat("VIEWPORT_HALF_SPAN", 0.001)
	if err != nil {
		return nil, err
	}
	pickRadius, err := parsePositiveFloat("PICK_RADIUS", 0.0005)
	if err != nil {
		return nil, err
	}

	simPoints, err := strconv.Atoi(sharedcfg.EnvOrDefault("SIM_POINTS", "100"))
	if err != nil || simPoints <= 0 {
		return nil, errors.New("invalid SIM_POINTS")
	}
	simSeed, err := strconv.ParseUint(sharedcfg.EnvOrDefault("SIM_SEED", "0"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid SIM_SEED")
	}

	mapboxTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", "5s"))
	if err != nil || mapboxTimeout <= 0 {
		return nil, errors.New("invalid MAPBOX_TIMEOUT")
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		FaultThreshold:   threshold,
		ViewportHalfSpan: halfSpan,
		PickRadius:       pickRadius,
		SimPoints:        simPoints,
		SimSeed:          simSeed,
		ThemeFile:        os.Getenv("THEME_FILE"),
		HTTPAddr:         os.Getenv("HTTP_ADDR"),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		LogFile:          os.Getenv("LOG_FILE"),
		ShutdownTimeout:  shutdownTimeout,

		KafkaBrokers:    sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaFaultTopic: sharedcfg.EnvOrDefault("KAFKA_FAULT_TOPIC", "thermal-faults"),
		FaultsEnabled:   os.Getenv("FAULTS_ENABLED") == "true",

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),
	}

	if cfg.FaultsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("FAULTS_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.FaultsEnabled && cfg.KafkaFaultTopic == "" {
		return nil, errors.New("KAFKA_FAULT_TOPIC is required")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

func parsePositiveFloat(key string, def float64) (float64, error) {
	v, err := parseFloat(key, def)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return v, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
