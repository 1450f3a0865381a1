package operations

import (
	"context"
	"net/http"

	"github.com/kebairia/dabackup/internal/config"
	"github.com/kebairia/dabackup/internal/credentials"
	"github.com/kebairia/dabackup/internal/daadmin"
	"github.com/kebairia/dabackup/internal/logger"
	"github.com/kebairia/dabackup/internal/report"
	"github.com/kebairia/dabackup/internal/vault"
)

// Operator runs backup and restore operations against one org/repo.
type Operator struct {
	cfg    config.Config
	tokens daadmin.TokenSource
	client *daadmin.Client
	rep    report.Reporter
	log    logger.Logger
}

// NewOperator wires an Operator from its collaborators. Tests inject a
// client pointed at a fake server and a capturing reporter.
func NewOperator(
	cfg config.Config,
	tokens daadmin.TokenSource,
	client *daadmin.Client,
	rep report.Reporter,
	log logger.Logger,
) *Operator {
	if log == nil {
		log = logger.Global()
	}
	return &Operator{
		cfg:    cfg,
		tokens: tokens,
		client: client,
		rep:    rep,
		log:    log,
	}
}

// Setup builds the credential chain and API client from configuration and
// returns a ready Operator.
func Setup(ctx context.Context, cfg config.Config, rep report.Reporter, log logger.Logger) *Operator {
	if log == nil {
		log = logger.Global()
	}

	chain := credentials.NewChain(log, tokenProviders(ctx, cfg, log)...)
	httpClient := &http.Client{Timeout: cfg.API.Timeout}
	client := daadmin.NewClient(cfg.API.BaseURL, httpClient, chain, log)

	return NewOperator(cfg, chain, client, rep, log)
}

// tokenProviders assembles the fallback chain in resolution order: direct
// token, service token env var, IMS client credentials, then Vault.
// Providers left unconfigured report absence and the chain moves on.
func tokenProviders(ctx context.Context, cfg config.Config, log logger.Logger) []credentials.Provider {
	providers := []credentials.Provider{
		credentials.Static{Value: cfg.Credentials.Token},
		credentials.EnvToken{Var: cfg.Credentials.ServiceTokenEnv},
		credentials.ClientCredentials{
			ClientID:     cfg.Credentials.ClientID,
			ClientSecret: cfg.Credentials.ClientSecret,
			TokenURL:     cfg.Credentials.TokenURL,
			Scopes:       cfg.Credentials.Scopes,
		},
	}

	if cfg.Vault.Address != "" && cfg.Vault.TokenPath != "" {
		vaultOpts := []vault.Option{
			vault.WithAddress(cfg.Vault.Address),
		}
		if cfg.Vault.RoleID != "" && cfg.Vault.RoleName != "" {
			vaultOpts = append(vaultOpts, vault.WithAppRole(cfg.Vault.RoleID, cfg.Vault.RoleName))
		}
		vaultClient, err := vault.NewClient(ctx, vaultOpts...)
		if err != nil {
			log.Warn("vault client init failed, skipping vault token source",
				"error", err.Error(),
			)
		} else {
			providers = append(providers, &vault.TokenProvider{
				Client: vaultClient,
				Path:   cfg.Vault.TokenPath,
				Field:  cfg.Vault.TokenField,
			})
		}
	}

	return providers
}
