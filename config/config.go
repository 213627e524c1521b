package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mart     MartConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
	Scoring  ScoringConfig
	Ranking  RankingConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	URL string
}

type MartConfig struct {
	// CSVPath is the fallback source when no database URL is configured.
	CSVPath         string
	CacheTTLSeconds int
}

type RedisConfig struct {
	Addr               string
	Password           string
	DB                 int
	ResponseTTLSeconds int
}

type KafkaConfig struct {
	Brokers       []string
	TopicRefresh  string
	TopicReports  string
	ConsumerGroup string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
	PrometheusPort string
}

// ScoringConfig holds the composite performance score weights. The score is
// 100 * (WeightSales*sales/maxSales + WeightRating*rating/RatingScale +
// WeightOrders*orders/maxOrders), with the max terms taken from the current
// subset rather than a global baseline.
type ScoringConfig struct {
	WeightSales  float64
	WeightRating float64
	WeightOrders float64
	RatingScale  float64
}

type RankingConfig struct {
	TopN     int
	BottomN  int
	TrendTop int
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	cacheTTL, _ := strconv.Atoi(getEnv("MART_CACHE_TTL_SECONDS", "3600"))
	responseTTL, _ := strconv.Atoi(getEnv("RESPONSE_CACHE_TTL_SECONDS", "300"))
	topN, _ := strconv.Atoi(getEnv("RANKING_TOP_N", "8"))
	bottomN, _ := strconv.Atoi(getEnv("RANKING_BOTTOM_N", "5"))
	trendTop, _ := strconv.Atoi(getEnv("RANKING_TREND_TOP", "5"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Mart: MartConfig{
			CSVPath:         getEnv("MART_CSV_PATH", "dashboard_mart.csv"),
			CacheTTLSeconds: cacheTTL,
		},
		Redis: RedisConfig{
			Addr:               getEnv("REDIS_ADDR", "localhost:6379"),
			Password:           getEnv("REDIS_PASSWORD", ""),
			DB:                 redisDB,
			ResponseTTLSeconds: responseTTL,
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicRefresh:  getEnv("KAFKA_TOPIC_MART_REFRESH", "mart-refresh"),
			TopicReports:  getEnv("KAFKA_TOPIC_REPORT_EVENTS", "report-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "analytics-service-group"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
			PrometheusPort: getEnv("PROMETHEUS_PORT", "9090"),
		},
		Scoring: ScoringConfig{
			WeightSales:  getEnvFloat("SCORE_WEIGHT_SALES", 0.4),
			WeightRating: getEnvFloat("SCORE_WEIGHT_RATING", 0.3),
			WeightOrders: getEnvFloat("SCORE_WEIGHT_ORDERS", 0.3),
			RatingScale:  getEnvFloat("SCORE_RATING_SCALE", 5),
		},
		Ranking: RankingConfig{
			TopN:     topN,
			BottomN:  bottomN,
			TrendTop: trendTop,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
