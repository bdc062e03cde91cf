package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ProviderKeys lists the identity providers whose credentials are read from
// {PROVIDER}_CLIENT_ID and {PROVIDER}_CLIENT_SECRET.
var ProviderKeys = []string{"microsoft", "autodesk", "asta", "solibri", "whatsapp", "bluebeam"}

func Default() Configs {
	return Configs{
		Env:      EnvLocal,
		LogLevel: "info",
		Database: DatabaseConfigs{
			Driver:   "sqlite",
			Database: "bouwconnect.db",
			LogLevel: "error",
		},
		ApiServer: ServerConfigs{
			Port: "4000",
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 24 * time.Hour,
			},
		},
		Session: SessionConfigs{
			Name: "bouwconnect_session",
		},
		Relay: RelayConfigs{
			StateTTL:        10 * time.Minute,
			ExchangeTimeout: 10 * time.Second,
			ProxyTimeout:    10 * time.Second,
		},
		Providers: map[string]OAuth2Config{},
		Catalog: CatalogConfigs{
			GraphURL: "https://graph.microsoft.com",
		},
		Storage: S3Configs{
			Region:         "eu-west-1",
			PresignExpires: 15 * time.Minute,
		},
		Kafka: KafkaConfigs{
			Topic: "integration",
		},
		Cors: CorsConfigs{
			AllowedOrigins: []string{"http://localhost:5173"},
		},
	}
}

// Load builds the configs from the defaults, the TOML file named by
// CONFIG_FILE and finally the environment, a .env file included. Later
// sources override earlier ones.
func Load() (Configs, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Configs{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

// MinSecretLength is the minimum size in bytes of the HMAC keys signing
// access tokens and session cookies.
const MinSecretLength = 32

func (c Configs) Validate() error {
	if len(c.Auth.TokenSecret) < MinSecretLength {
		return fmt.Errorf("TOKEN_SECRET must be at least %d bytes", MinSecretLength)
	}

	if len(c.Session.Secret) < MinSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", MinSecretLength)
	}

	return nil
}

func applyEnv(cfg *Configs) error {
	setString(&cfg.Env, "ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.PublicURL, "PUBLIC_URL")
	setString(&cfg.TunnelURL, "TUNNEL_URL")

	setString(&cfg.ApiServer.Host, "API_HOST")
	setString(&cfg.ApiServer.Port, "PORT")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.Database, "DB_DATABASE")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")

	setString(&cfg.Auth.TokenSecret, "TOKEN_SECRET")
	setString(&cfg.Session.Secret, "SESSION_SECRET")

	if err := setDuration(&cfg.Auth.AccessToken.Expiration, "ACCESS_TOKEN_EXPIRATION"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Relay.StateTTL, "STATE_TTL"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Relay.ExchangeTimeout, "EXCHANGE_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Relay.ProxyTimeout, "PROXY_TIMEOUT"); err != nil {
		return err
	}

	if cfg.Providers == nil {
		cfg.Providers = map[string]OAuth2Config{}
	}
	for _, key := range ProviderKeys {
		provider := cfg.Providers[key]
		prefix := strings.ToUpper(key)
		setString(&provider.ClientID, prefix+"_CLIENT_ID")
		setString(&provider.ClientSecret, prefix+"_CLIENT_SECRET")
		setString(&provider.Issuer, prefix+"_ISSUER")
		cfg.Providers[key] = provider
	}

	setString(&cfg.Catalog.GraphURL, "GRAPH_URL")

	setString(&cfg.Storage.Region, "S3_REGION")
	setString(&cfg.Storage.Endpoint, "S3_ENDPOINT")
	setString(&cfg.Storage.Bucket, "S3_BUCKET")
	setString(&cfg.Storage.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "S3_SECRET_KEY")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Kafka.Addr, "KAFKA_ADDR")
	setString(&cfg.Kafka.Topic, "KAFKA_TOPIC")

	if v, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok {
		cfg.Cors.AllowedOrigins = splitList(v)
	}

	setString(&cfg.Demo.Email, "DEMO_EMAIL")
	setString(&cfg.Demo.Password, "DEMO_PASSWORD")
	setString(&cfg.Demo.Name, "DEMO_NAME")

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = strings.TrimSpace(v)
	}
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return err
	}

	*dst = d
	return nil
}

func splitList(v string) []string {
	result := []string{}
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}

	return result
}
