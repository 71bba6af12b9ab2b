package shared

import (
	"github.com/caarlos0/env/v8"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"prod"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR"`

	// Internal dataset: JSON file by default, MySQL when a DSN is set.
	ReviewsFile string `env:"REVIEWS_FILE" envDefault:"data/reviews.json"`
	ReviewsDSN  string `env:"REVIEWS_DSN"`

	PlacesBase    string `env:"GOOGLE_PLACES_BASE_URL" envDefault:"https://places.googleapis.com/v1"`
	PlacesKey     string `env:"GOOGLE_PLACES_API_KEY"`
	PlaceID       string `env:"GOOGLE_PLACE_ID" envDefault:"ChIJPVqlfGyuEmsRHPcnCX1X1OE"`
	GoogleListing string `env:"GOOGLE_LISTING_NAME" envDefault:"Art Gallery of New South Wales"`
	GoogleRPS     int    `env:"GOOGLE_RPS" envDefault:"5"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB"`
	HiddenKey string `env:"HIDDEN_KEY" envDefault:"hiddenReviews"`
}

func Load() Config {
	var c Config
	if err := env.Parse(&c); err != nil {
		log.Fatal().Err(err).Msg("config parse failed")
	}
	if c.PlacesKey == "" {
		// Upstream rejects unauthenticated calls; surfaces as an upstream
		// failure, not a local validation error.
		log.Warn().Msg("GOOGLE_PLACES_API_KEY is empty")
	}
	return c
}
