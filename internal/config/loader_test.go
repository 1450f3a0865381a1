package config

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_ParsesConfig(t *testing.T) {
	yaml := `
backup:
  org: "myorg"
  repo: "myrepo"
  path: "de/products"
  manifest_dir: "/tmp/manifests"
api:
  timeout: 45s
credentials:
  client_id: "ims-client"
  client_secret: "ims-secret"
  token_url: "https://ims.example.com/token"
vault:
  address: "https://vault.example.com"
  token_path: "secret/data/da/token"
`
	tmp, err := os.CreateTemp("", "cfg-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(yaml); err != nil {
		t.Fatalf("failed to write YAML: %v", err)
	}
	tmp.Close()

	var cfg Config
	if err := cfg.Load(tmp.Name()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Backup.Org != "myorg" || cfg.Backup.Repo != "myrepo" {
		t.Errorf("unexpected backup config: %+v", cfg.Backup)
	}
	if cfg.API.Timeout != 45*time.Second {
		t.Errorf("expected 45s timeout, got %v", cfg.API.Timeout)
	}
	// Defaults still apply for fields the file leaves out
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.Credentials.ServiceTokenEnv != DefaultServiceTokenEnv {
		t.Errorf("expected default service token env, got %q", cfg.Credentials.ServiceTokenEnv)
	}
	if cfg.Vault.TokenField != "token" {
		t.Errorf("expected default vault token field, got %q", cfg.Vault.TokenField)
	}
}

func TestLoad_NoFileGivesDefaults(t *testing.T) {
	var cfg Config
	if err := cfg.Load(""); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.API.BaseURL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DABACKUP_BACKUP_ORG", "envorg")
	t.Setenv("DABACKUP_CREDENTIALS_TOKEN", "env-token")

	var cfg Config
	if err := cfg.Load(""); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backup.Org != "envorg" {
		t.Errorf("expected env org, got %q", cfg.Backup.Org)
	}
	if cfg.Credentials.Token != "env-token" {
		t.Errorf("expected env token, got %q", cfg.Credentials.Token)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg Config
	err := cfg.Load("/nonexistent/cfg.yaml")
	if !errors.Is(err, ErrLoadConfig) {
		t.Fatalf("expected ErrLoadConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{Backup: BackupConfig{Org: "  o  ", Repo: " r ", Path: " de "}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	// Inputs are trimmed in place
	if cfg.Backup.Org != "o" || cfg.Backup.Repo != "r" || cfg.Backup.Path != "de" {
		t.Errorf("inputs not trimmed: %+v", cfg.Backup)
	}
}

func TestValidate_MissingInputs(t *testing.T) {
	cases := []struct {
		name    string
		org     string
		repo    string
		mention string
	}{
		{"missing org", "", "r", "org"},
		{"missing repo", "o", "", "repo"},
		{"missing both", "  ", "", "org, repo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{Backup: BackupConfig{Org: tc.org, Repo: tc.repo}}
			err := cfg.Validate()
			if !errors.Is(err, ErrValidateConfig) {
				t.Fatalf("expected ErrValidateConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.mention) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.mention)
			}
		})
	}
}
