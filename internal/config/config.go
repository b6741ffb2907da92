package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/securecookie"
)

type Secret struct {
	Bytes []byte
}

type CacheBackend string

const (
	NoCache     CacheBackend = "none"
	MemoryCache CacheBackend = "memory"
	RedisCache  CacheBackend = "redis"
)

type Config struct {
	// Running localy or not
	Debug   bool   `env:"DEBUG" envDefault:"false"`
	AppName string `env:"APP_NAME" envDefault:"GitHub Repository Sitemap Generator"`
	Domain  string `env:"DOMAIN"`

	// Sessions
	CsrfKey          Secret `env:"CSRF_KEY"`
	FlashKey         Secret `env:"FLASH_KEY"`
	CsrfSessionName  string `env:"CSRF_SESSION_NAME" envDefault:"_sitemap_csrf"`
	FlashSessionName string `env:"FLASH_SESSION_NAME" envDefault:"_sitemap_flash"`

	// GitHub
	GithubAPIURL           string        `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`
	GithubRawURL           string        `env:"GITHUB_RAW_URL" envDefault:"https://raw.githubusercontent.com"`
	GithubToken            string        `env:"GITHUB_TOKEN"`
	GithubFallbackBranches []string      `env:"GITHUB_FALLBACK_BRANCHES" envDefault:"main,master"`
	GithubTimeout          time.Duration `env:"GITHUB_TIMEOUT" envDefault:"30s"`

	// S3 compatible object storage
	S3AccountID       string        `env:"S3_ACCOUNT_ID"`
	S3Endpoint        string        `env:"S3_ENDPOINT"`
	S3Region          string        `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket          string        `env:"S3_BUCKET"`
	S3AccessKeyID     string        `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string        `env:"S3_SECRET_ACCESS_KEY"`
	S3PublicURL       string        `env:"S3_PUBLIC_URL"`
	S3PublicRead      bool          `env:"S3_PUBLIC_READ" envDefault:"true"`
	S3UsePathStyle    bool          `env:"S3_USE_PATH_STYLE" envDefault:"false"`
	S3WaitTimeout     time.Duration `env:"S3_WAIT_TIMEOUT" envDefault:"1m"`

	// Sitemap protocol limit
	SitemapMaxURLs int `env:"SITEMAP_MAX_URLS" envDefault:"50000"`

	// Tree listing cache
	CacheBackend CacheBackend  `env:"CACHE_BACKEND" envDefault:"memory"`
	CacheTimeout time.Duration `env:"CACHE_TIMEOUT" envDefault:"10m"`

	// Redis
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisUsername string `env:"REDIS_USERNAME"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Local app host and port
	Host string `env:"HOST" envDefault:"localhost"`
	Port int    `env:"PORT" envDefault:"5000"`
}

// New creates new config object.
// Terminates the process if the environment can't be parsed.
func New() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to parse the config; %v", err)
	}
	return cfg
}

// Load parses the config from the environment and fills in the derived values
func Load() (*Config, error) {

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	switch cfg.CacheBackend {
	case NoCache, MemoryCache, RedisCache:
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}

	if cfg.SitemapMaxURLs <= 0 {
		return nil, fmt.Errorf("invalid sitemap max URLs: %d", cfg.SitemapMaxURLs)
	}

	// Drop empty entries such as the ones produced by "main,,master"
	branches := cfg.GithubFallbackBranches[:0]
	for _, b := range cfg.GithubFallbackBranches {
		if b = strings.TrimSpace(b); b != "" {
			branches = append(branches, b)
		}
	}
	cfg.GithubFallbackBranches = branches

	// Account based AWS layout: the bucket is named after the account
	if cfg.S3Endpoint == "" && cfg.S3AccountID != "" {
		cfg.S3Endpoint = fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.S3AccountID)
		if cfg.S3Bucket == "" {
			cfg.S3Bucket = cfg.S3AccountID
		}
	}

	if cfg.S3PublicURL == "" {
		cfg.S3PublicURL = cfg.S3Endpoint
	}

	cfg.GithubAPIURL = strings.TrimRight(cfg.GithubAPIURL, "/")
	cfg.GithubRawURL = strings.TrimRight(cfg.GithubRawURL, "/")
	cfg.S3PublicURL = strings.TrimRight(cfg.S3PublicURL, "/")

	// Uploads are useless without a bucket and an address to link to
	if cfg.S3Bucket == "" {
		return nil, errors.New("no bucket configured, set S3_BUCKET or S3_ACCOUNT_ID")
	}

	if cfg.S3PublicURL == "" {
		return nil, errors.New("no public URL configured, set S3_PUBLIC_URL, S3_ENDPOINT or S3_ACCOUNT_ID")
	}

	// Sessions still work without the keys, they just won't survive a restart
	if len(cfg.CsrfKey.Bytes) == 0 {
		log.Println("CSRF_KEY not set, generating a random one")
		cfg.CsrfKey.Bytes = securecookie.GenerateRandomKey(32)
	}

	if len(cfg.FlashKey.Bytes) == 0 {
		log.Println("FLASH_KEY not set, generating a random one")
		cfg.FlashKey.Bytes = securecookie.GenerateRandomKey(32)
	}

	return &cfg, nil
}

// Addr is the address the HTTP server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// It's called by the env library to decode the Secret,
func (s *Secret) UnmarshalText(text []byte) error {

	s.Bytes = make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(s.Bytes, text)
	if err != nil {
		return fmt.Errorf("error decoding a secret key; %w", err)
	}

	s.Bytes = s.Bytes[:n]
	return nil
}
