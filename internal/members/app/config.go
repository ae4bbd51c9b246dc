package app

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Issuer          string `env:"MEMBERS_ISSUER, default=rendezvous-members"`
	TokenSecret     string `env:"MEMBERS_TOKEN_SECRET"`      // Optional: HS512 secret, at least 64 bytes
	TokenSecretFile string `env:"MEMBERS_TOKEN_SECRET_FILE"` // Optional: file holding the secret
	BootstrapToken  string `env:"BOOTSTRAP_TOKEN"`           // Optional: if set, required to perform bootstrap

	DatabaseFile string `env:"MEMBERS_DATABASE_FILE, default=members.db"`
	PepperFile   string `env:"MEMBERS_PEPPER_FILE, default=pepper"`

	BlobDir           string        `env:"MEMBERS_BLOB_DIR, default=media"`
	BlobBaseURL       string        `env:"MEMBERS_BLOB_BASE_URL, default=http://localhost:8080/media"`
	BlobDeleteTimeout time.Duration `env:"MEMBERS_BLOB_DELETE_TIMEOUT, default=10s"`
	RejectedRetention time.Duration `env:"MEMBERS_REJECTED_RETENTION, default=720h"`
	MaxUploadBytes    int64         `env:"MAX_UPLOAD_BYTES, default=10485760"`

	Env                  string        `env:"ENV, default=dev"`          // dev, staging, prod
	LogLevel             string        `env:"LOG_LEVEL, default=info"`   // debug, info, warn, error
	LogFormat            string        `env:"LOG_FORMAT, default=json"`  // json, text
	Port                 int           `env:"PORT, default=8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD, default=10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL, default=1h"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	return loadConfig(context.Background(), envconfig.OsLookuper())
}

func loadConfig(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("config: PORT %d out of range", cfg.Port)
	}
	if cfg.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("config: MAX_UPLOAD_BYTES must be positive")
	}
	return cfg, nil
}
