package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// setStorageEnv sets the minimal object storage settings Load requires
func setStorageEnv(t *testing.T) {
	t.Helper()
	t.Setenv("S3_BUCKET", "sitemaps")
	t.Setenv("S3_PUBLIC_URL", "https://cdn.example.com")
}

func TestLoadDefaults(t *testing.T) {

	setStorageEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("got error = %v, want no error", err)
	}

	if diff := cmp.Diff([]string{"main", "master"}, cfg.GithubFallbackBranches); diff != "" {
		t.Errorf("fallback branches mismatch (-want +got):\n%s", diff)
	}

	if cfg.SitemapMaxURLs != 50000 {
		t.Errorf("got max URLs = %d, want 50000", cfg.SitemapMaxURLs)
	}

	if cfg.GithubTimeout != 30*time.Second {
		t.Errorf("got GitHub timeout = %s, want 30s", cfg.GithubTimeout)
	}

	if len(cfg.CsrfKey.Bytes) != 32 || len(cfg.FlashKey.Bytes) != 32 {
		t.Error("expected generated 32 bytes session keys")
	}
}

func TestLoad(t *testing.T) {

	tests := []struct {
		name     string
		env      map[string]string
		wantErr  bool
		validate func(t *testing.T, cfg *Config)
	}{
		{
			"account layout",
			map[string]string{"S3_ACCOUNT_ID": "acme", "S3_BUCKET": "", "S3_PUBLIC_URL": ""},
			false,
			func(t *testing.T, cfg *Config) {
				if cfg.S3Endpoint != "https://acme.s3.amazonaws.com" {
					t.Errorf("got endpoint %q", cfg.S3Endpoint)
				}
				if cfg.S3Bucket != "acme" {
					t.Errorf("got bucket %q, want acme", cfg.S3Bucket)
				}
				if cfg.S3PublicURL != cfg.S3Endpoint {
					t.Errorf("got public URL %q, want %q", cfg.S3PublicURL, cfg.S3Endpoint)
				}
			},
		},
		{
			"explicit endpoint wins",
			map[string]string{
				"S3_ACCOUNT_ID": "acme",
				"S3_ENDPOINT":   "http://localhost:9000",
				"S3_BUCKET":     "sitemaps",
				"S3_PUBLIC_URL": "https://cdn.example.com/",
			},
			false,
			func(t *testing.T, cfg *Config) {
				if cfg.S3Endpoint != "http://localhost:9000" {
					t.Errorf("got endpoint %q", cfg.S3Endpoint)
				}
				if cfg.S3Bucket != "sitemaps" {
					t.Errorf("got bucket %q, want sitemaps", cfg.S3Bucket)
				}
				if cfg.S3PublicURL != "https://cdn.example.com" {
					t.Errorf("got public URL %q", cfg.S3PublicURL)
				}
			},
		},
		{
			"fallback branches cleanup",
			map[string]string{"GITHUB_FALLBACK_BRANCHES": "trunk,, develop "},
			false,
			func(t *testing.T, cfg *Config) {
				want := []string{"trunk", "develop"}
				if diff := cmp.Diff(want, cfg.GithubFallbackBranches); diff != "" {
					t.Errorf("branches mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			"secret decoding",
			map[string]string{"CSRF_KEY": "c2VjcmV0"},
			false,
			func(t *testing.T, cfg *Config) {
				if string(cfg.CsrfKey.Bytes) != "secret" {
					t.Errorf("got secret %q, want %q", cfg.CsrfKey.Bytes, "secret")
				}
			},
		},
		{"invalid secret", map[string]string{"FLASH_KEY": "%%%"}, true, nil},
		{"unknown cache backend", map[string]string{"CACHE_BACKEND": "disk"}, true, nil},
		{"invalid max URLs", map[string]string{"SITEMAP_MAX_URLS": "0"}, true, nil},
		{"invalid timeout", map[string]string{"GITHUB_TIMEOUT": "soon"}, true, nil},
		{"missing bucket", map[string]string{"S3_BUCKET": ""}, true, nil},
		{"missing public URL", map[string]string{"S3_PUBLIC_URL": ""}, true, nil},
		{
			"public URL from endpoint",
			map[string]string{"S3_PUBLIC_URL": "", "S3_ENDPOINT": "http://localhost:9000/"},
			false,
			func(t *testing.T, cfg *Config) {
				if cfg.S3PublicURL != "http://localhost:9000" {
					t.Errorf("got public URL %q", cfg.S3PublicURL)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setStorageEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Fatalf("got error = %v, want error = %t", err, tt.wantErr)
			}

			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}
