package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	EnvLocal      = "local"
	EnvTunnel     = "tunnel"
	EnvProduction = "production"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	// PublicURL is the externally reachable base URL of the relay in
	// production, TunnelURL the one used when ENV=tunnel.
	PublicURL string `toml:"public_url"`
	TunnelURL string `toml:"tunnel_url"`

	Database  DatabaseConfigs         `toml:"database"`
	ApiServer ServerConfigs           `toml:"api_server"`
	Auth      AuthConfigs             `toml:"auth"`
	Session   SessionConfigs          `toml:"session"`
	Relay     RelayConfigs            `toml:"relay"`
	Providers map[string]OAuth2Config `toml:"providers"`
	Catalog   CatalogConfigs          `toml:"catalog"`
	Storage   S3Configs               `toml:"storage"`
	Redis     RedisConfigs            `toml:"redis"`
	Kafka     KafkaConfigs            `toml:"kafka"`
	Cors      CorsConfigs             `toml:"cors"`
	Demo      DemoUserConfigs         `toml:"demo"`
}

// RedirectBaseURL resolves the base of every OAuth2 redirect_uri from the
// deployment environment.
func (c Configs) RedirectBaseURL() string {
	switch c.Env {
	case EnvProduction:
		return strings.TrimSuffix(c.PublicURL, "/")
	case EnvTunnel:
		return strings.TrimSuffix(c.TunnelURL, "/")
	default:
		return fmt.Sprintf("http://localhost:%s", c.ApiServer.Port)
	}
}

type DatabaseConfigs struct {
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `toml:"log_level"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Host,
			d.Port,
			d.User,
			d.Password,
			d.Database,
		)
	case "sqlite":
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User,
			d.Password,
			d.Host,
			d.Port,
			d.Database,
		)
	}
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type SessionConfigs struct {
	Secret string `toml:"secret"`
	Name   string `toml:"name"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type RelayConfigs struct {
	// StateTTL bounds how long an authorization attempt may stay pending.
	StateTTL        time.Duration `toml:"state_ttl"`
	ExchangeTimeout time.Duration `toml:"exchange_timeout"`
	ProxyTimeout    time.Duration `toml:"proxy_timeout"`
}

// OAuth2Config holds the credentials of one provider. The endpoints default to
// the provider's public ones and are only set to override them.
type OAuth2Config struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	Issuer       string `toml:"issuer"`
	AuthURL      string `toml:"auth_url"`
	TokenURL     string `toml:"token_url"`
}

type CatalogConfigs struct {
	GraphURL string `toml:"graph_url"`
}

type S3Configs struct {
	Region         string        `toml:"region"`
	Endpoint       string        `toml:"endpoint"`
	Bucket         string        `toml:"bucket"`
	AccessKey      string        `toml:"access_key"`
	SecretKey      string        `toml:"secret_key"`
	SSLDisabled    bool          `toml:"ssl_disabled"`
	PresignExpires time.Duration `toml:"presign_expires"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type KafkaConfigs struct {
	Addr  string `toml:"addr"`
	Topic string `toml:"topic"`
}

type CorsConfigs struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type DemoUserConfigs struct {
	Email    string `toml:"email"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
}
