package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrLoadConfig indicates a failure to read or parse the YAML configuration.
var ErrLoadConfig = errors.New("config load failed")

// ErrValidateConfig indicates that the loaded configuration is invalid.
var ErrValidateConfig = errors.New("configuration validation failed")

// DefaultBaseURL is the da.live content-admin API endpoint.
const DefaultBaseURL = "https://admin.da.live"

// DefaultServiceTokenEnv names the environment variable checked for a
// service token when the config does not override it.
const DefaultServiceTokenEnv = "DA_SERVICE_TOKEN"

// Config represents the top-level YAML configuration file.
type Config struct {
	Include     []string          `mapstructure:"include"     yaml:"include,omitempty"`
	Backup      BackupConfig      `mapstructure:"backup"      yaml:"backup"`
	API         APIConfig         `mapstructure:"api"         yaml:"api"`
	Credentials CredentialsConfig `mapstructure:"credentials" yaml:"credentials"`
	Vault       VaultConfig       `mapstructure:"vault"       yaml:"vault"`
}

// BackupConfig identifies the remote location to back up and where to
// write the local run manifest.
type BackupConfig struct {
	Org         string `mapstructure:"org"          yaml:"org"`
	Repo        string `mapstructure:"repo"         yaml:"repo"`
	Path        string `mapstructure:"path"         yaml:"path,omitempty"`
	ManifestDir string `mapstructure:"manifest_dir" yaml:"manifest_dir,omitempty"`
}

// APIConfig holds connection settings for the content-admin API.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"  yaml:"timeout,omitempty"`
}

// CredentialsConfig lists the token sources tried in order: a direct
// token, a service token environment variable, and an IMS client
// credentials exchange.
type CredentialsConfig struct {
	Token           string   `mapstructure:"token"             yaml:"token,omitempty"`
	ServiceTokenEnv string   `mapstructure:"service_token_env" yaml:"service_token_env,omitempty"`
	ClientID        string   `mapstructure:"client_id"         yaml:"client_id,omitempty"`
	ClientSecret    string   `mapstructure:"client_secret"     yaml:"client_secret,omitempty"`
	TokenURL        string   `mapstructure:"token_url"         yaml:"token_url,omitempty"`
	Scopes          []string `mapstructure:"scopes"            yaml:"scopes,omitempty"`
}

// VaultConfig holds connection settings for HashiCorp Vault, the last
// token source in the chain. Address empty means Vault is not used.
type VaultConfig struct {
	Address    string `mapstructure:"address"     yaml:"address,omitempty"`
	RoleID     string `mapstructure:"role_id"     yaml:"role_id,omitempty"`
	RoleName   string `mapstructure:"role_name"   yaml:"role_name,omitempty"`
	TokenPath  string `mapstructure:"token_path"  yaml:"token_path,omitempty"`
	TokenField string `mapstructure:"token_field" yaml:"token_field,omitempty"`
}

// Load reads the configuration from the given YAML file using Viper,
// merges any included files, and unmarshals into the Config struct.
// An empty path skips the file read and yields defaults plus environment
// overrides (prefix DABACKUP, dots replaced with underscores).
func (c *Config) Load(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("DABACKUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("credentials.service_token_env", DefaultServiceTokenEnv)
	v.SetDefault("vault.token_field", "token")

	// AutomaticEnv only resolves keys viper already knows about, so bind
	// the env-overridable ones explicitly.
	for _, key := range []string{
		"backup.org", "backup.repo", "backup.path", "backup.manifest_dir",
		"credentials.token", "credentials.client_id", "credentials.client_secret",
		"credentials.token_url",
		"vault.address", "vault.role_id", "vault.role_name", "vault.token_path",
	} {
		_ = v.BindEnv(key)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w: read base config %s: %v", ErrLoadConfig, path, err)
		}

		// Merge include files (if any)
		for _, inc := range v.GetStringSlice("include") {
			data, err := os.ReadFile(inc)
			if err != nil {
				return fmt.Errorf("%w: read include %s: %v", ErrLoadConfig, inc, err)
			}
			if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
				return fmt.Errorf("%w: merge include %s: %v", ErrLoadConfig, inc, err)
			}
		}
	}

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("%w: unmarshal config: %v", ErrLoadConfig, err)
	}

	return nil
}

// Validate checks the required inputs, trimming surrounding whitespace
// first. Org and repo must be present; path stays optional.
func (c *Config) Validate() error {
	c.Backup.Org = strings.TrimSpace(c.Backup.Org)
	c.Backup.Repo = strings.TrimSpace(c.Backup.Repo)
	c.Backup.Path = strings.TrimSpace(c.Backup.Path)

	var missing []string
	if c.Backup.Org == "" {
		missing = append(missing, "org")
	}
	if c.Backup.Repo == "" {
		missing = append(missing, "repo")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required input(s): %s",
			ErrValidateConfig, strings.Join(missing, ", "))
	}
	return nil
}
