// Package credentials resolves the bearer token used against the
// content-admin API. Several token sources are tried in order and the
// first one that yields a token wins.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/kebairia/dabackup/internal/logger"
)

// ErrNoToken signals that a provider has nothing configured, or that the
// whole chain was exhausted without producing a token.
var ErrNoToken = errors.New("credentials: no token available")

// Provider is one source of a bearer token. Implementations return
// ErrNoToken when they are not configured for this run; any other error
// is a real failure of a configured source.
type Provider interface {
	Name() string
	Token(ctx context.Context) (string, error)
}

// Chain tries its providers in order. A provider reporting absence moves
// the chain along silently; a provider failing outright is logged as a
// warning and the chain continues. The first token found is cached for
// the rest of the run.
type Chain struct {
	providers []Provider
	log       logger.Logger

	mu    sync.Mutex
	token string
}

// NewChain builds a provider chain. Order matters: providers are
// consulted first to last.
func NewChain(log logger.Logger, providers ...Provider) *Chain {
	if log == nil {
		log = logger.Global()
	}
	return &Chain{providers: providers, log: log}
}

// Token resolves a bearer token through the chain.
func (c *Chain) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	for _, p := range c.providers {
		tok, err := p.Token(ctx)
		if errors.Is(err, ErrNoToken) {
			c.log.Debug("token source not configured", "provider", p.Name())
			continue
		}
		if err != nil {
			c.log.Warn("token source failed, trying next",
				"provider", p.Name(),
				"error", err.Error(),
			)
			continue
		}
		c.log.Info("token resolved", "provider", p.Name())
		c.token = tok
		return tok, nil
	}
	return "", fmt.Errorf("%w: all sources exhausted", ErrNoToken)
}

// Static is a directly supplied token (flag, env override, or config).
type Static struct {
	Value string
}

func (s Static) Name() string { return "static" }

func (s Static) Token(_ context.Context) (string, error) {
	if strings.TrimSpace(s.Value) == "" {
		return "", ErrNoToken
	}
	return strings.TrimSpace(s.Value), nil
}

// EnvToken reads a service token from the named environment variable.
type EnvToken struct {
	Var string
}

func (e EnvToken) Name() string { return "env:" + e.Var }

func (e EnvToken) Token(_ context.Context) (string, error) {
	if e.Var == "" {
		return "", ErrNoToken
	}
	tok := strings.TrimSpace(os.Getenv(e.Var))
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// ClientCredentials exchanges an IMS client id/secret pair for an access
// token via the OAuth2 client-credentials grant.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
}

func (c ClientCredentials) Name() string { return "client-credentials" }

func (c ClientCredentials) Token(ctx context.Context) (string, error) {
	if c.ClientID == "" || c.ClientSecret == "" || c.TokenURL == "" {
		return "", ErrNoToken
	}
	cfg := clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL,
		Scopes:       c.Scopes,
	}
	tok, err := cfg.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("client credentials exchange: %w", err)
	}
	return tok.AccessToken, nil
}
