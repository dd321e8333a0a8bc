package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config holds all runtime options. Values come from the environment
// (optionally seeded from a .env file).
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN"`
	StoragePath  string `env:"STORAGE_PATH" envDefault:"data/marketmind.json"`

	// Market data
	MarketAPIURL     string `env:"MARKET_API_URL" envDefault:"https://api.coingecko.com/api/v3/simple/price?ids=solana&vs_currencies=usd&include_24hr_change=true&include_market_cap=true&include_24hr_vol=true"`
	MarketCacheTTLMs int    `env:"MARKET_CACHE_TTL_MS" envDefault:"60000"`

	// Response behavior. ANTI_REPEAT_WINDOW=0 disables anti-repetition.
	AntiRepeatWindow    int     `env:"ANTI_REPEAT_WINDOW" envDefault:"2"`
	QuestionProbability float64 `env:"QUESTION_PROBABILITY" envDefault:"0.2"`
	ResponseThreshold   float64 `env:"RESPONSE_THRESHOLD" envDefault:"0.45"`

	// RandomSeed fixes the rng when non-zero. Leave 0 in production.
	RandomSeed int64 `env:"RANDOM_SEED" envDefault:"0"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// New parses config from the environment. DISCORD_TOKEN is only required by
// the Discord entrypoint, so it is validated there, not here.
func New() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	if cfg.MarketCacheTTLMs <= 0 {
		cfg.MarketCacheTTLMs = 60000
	}
	if cfg.AntiRepeatWindow < 0 {
		cfg.AntiRepeatWindow = 0
	}
	return &cfg, nil
}
