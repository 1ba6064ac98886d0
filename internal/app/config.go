package app

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/metinatakli/screening-reservation/internal/events"
)

const (
	ArbiterGlobal   = "global"
	ArbiterSchedule = "schedule"
	ArbiterRedis    = "redis"
)

type Config struct {
	Port             int
	Env              string
	Arbiter          string
	OtelCollectorUrl string
	DisplayVersion   bool
	DB               DBConfig
	Redis            RedisConfig
	AMQP             AMQPConfig
	Stripe           StripeConfig
	SeatBlock        SeatBlockConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
	LockTTL      time.Duration
}

type AMQPConfig struct {
	URL   string
	Queue string
}

type StripeConfig struct {
	SecretKey  string
	SuccessUrl string
	FailureUrl string
}

type SeatBlockConfig struct {
	MaxStrandedRun int
	EdgesAsWalls   bool
}

// parseConfig reads flags from args. Every flag defaults to its environment variable,
// so a .env file loaded before Run configures the service without arguments.
func parseConfig(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("api", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	fs.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")
	fs.StringVar(&cfg.Arbiter, "arbiter", envString("ARBITER", ArbiterGlobal), "Reservation arbiter (global|schedule|redis)")
	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", envString("DB_DSN", ""), "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	fs.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", ""), "Redis URL")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")
	fs.DurationVar(&cfg.Redis.LockTTL, "redis-lock-ttl", envDuration("REDIS_LOCK_TTL", 30*time.Second), "Expiry of the Redis reservation lock")

	fs.StringVar(&cfg.AMQP.URL, "amqp-url", envString("AMQP_URL", ""), "RabbitMQ URL; events are dropped when empty")
	fs.StringVar(&cfg.AMQP.Queue, "amqp-queue", envString("AMQP_QUEUE", events.DefaultQueue), "RabbitMQ queue for reservation events")

	fs.StringVar(&cfg.Stripe.SecretKey, "stripe-key", envString("STRIPE_KEY", ""), "Stripe secret key")
	fs.StringVar(&cfg.Stripe.SuccessUrl, "stripe-success-url", envString("STRIPE_SUCCESS_URL", "https://example.com/success.html"), "Stripe payment success page")
	fs.StringVar(&cfg.Stripe.FailureUrl, "stripe-failure-url", envString("STRIPE_FAILURE_URL", "https://example.com/failure.html"), "Stripe payment failure page")

	fs.IntVar(&cfg.SeatBlock.MaxStrandedRun, "seat-block-max-run", envInt("SEAT_BLOCK_MAX_RUN", 1), "Longest run of free seats a selection may not strand; 0 disables the rule")
	fs.BoolVar(&cfg.SeatBlock.EdgesAsWalls, "seat-block-edges", envBool("SEAT_BLOCK_EDGES", false), "Treat row ends and aisles as taken seats")

	fs.BoolVar(&cfg.DisplayVersion, "version", false, "Display version and exit")

	err := fs.Parse(args)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}
