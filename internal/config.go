package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

type Config struct {
	Host     string `env:"HOST,default=0.0.0.0" validate:"required"`
	Port     int    `env:"PORT,default=8000" validate:"min=1,max=65535"`
	LogLevel string `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true" validate:"required"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true" validate:"required"`
	CatalogPath    string `env:"CATALOG_PATH"`

	ClassifierBackend string        `env:"CLASSIFIER_BACKEND,default=lexicon" validate:"oneof=lexicon grpc huggingface"`
	ClassifierTimeout time.Duration `env:"CLASSIFIER_TIMEOUT,default=5s" validate:"gt=0"`
	ClassifierBinPath string        `env:"CLASSIFIER_BIN_PATH"`
	ClassifierHost    string        `env:"CLASSIFIER_HOST,default=localhost"`
	ClassifierPort    int           `env:"CLASSIFIER_PORT,default=50051" validate:"min=1,max=65535"`
	ClassifierBoot    time.Duration `env:"CLASSIFIER_BOOT_TIMEOUT,default=10s" validate:"gt=0"`

	HuggingFaceURL   string `env:"HUGGINGFACE_URL"`
	HuggingFaceModel string `env:"HUGGINGFACE_MODEL"`
	HuggingFaceToken string `env:"HUGGINGFACE_TOKEN"`

	BreakerFailureThreshold int           `env:"BREAKER_FAILURE_THRESHOLD,default=5" validate:"min=1"`
	BreakerTimeout          time.Duration `env:"BREAKER_TIMEOUT,default=30s" validate:"gt=0"`

	SafeguardKeywords     string `env:"SAFEGUARD_KEYWORDS"`
	SafeguardTriggerAbove int    `env:"SAFEGUARD_TRIGGER_ABOVE,default=2" validate:"min=0,max=5"`
	CharReplacement       string `env:"CHARACTER_REPLACEMENT,default=*"`

	RandomSeed    *int `env:"RANDOM_SEED"`
	MaxTextLength int  `env:"MAX_TEXT_LENGTH,default=5000" validate:"min=1"`

	CORSAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS"`
	RateLimitRequests  int           `env:"RATE_LIMIT_REQUESTS,default=100" validate:"min=0"`
	RateLimitWindow    time.Duration `env:"RATE_LIMIT_WINDOW,default=1m"`

	AnalysisBufferSize int           `env:"ANALYSIS_BUFFER_SIZE,default=1024" validate:"min=1"`
	MaxAnalyzedEvent   int           `env:"MAX_ANALYZED_EVENT,default=100" validate:"min=1"`
	BufferTimeout      time.Duration `env:"BUFFER_TIMEOUT,default=2s" validate:"gt=0"`
	SinkTimeout        time.Duration `env:"SINK_TIMEOUT,default=5s" validate:"gt=0"`
	MetricInterval     time.Duration `env:"METRIC_INTERVAL,default=5s" validate:"gt=0"`
	BatchConcurrency   int           `env:"BATCH_CONCURRENCY,default=4" validate:"min=1"`
	LimitAnalyses      *int          `env:"LIMIT_ANALYSES"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s" validate:"gt=0"`
	DebugPort          int           `env:"DEBUG_PORT,default=8081" validate:"min=1,max=65535"`
}

// Load reads an optional .env file, then the environment, then validates the result.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return config, nil
}

// Keywords returns the configured safeguard vocabulary, nil when unset.
func (c Config) Keywords() []string {
	return SplitList(c.SafeguardKeywords)
}

func (c Config) AllowedOrigins() []string {
	return SplitList(c.CORSAllowedOrigins)
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(raw string) []string {
	return lo.FilterMap(strings.Split(raw, ","), func(item string, _ int) (string, bool) {
		item = strings.TrimSpace(item)
		return item, item != ""
	})
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
