package vault

import (
	"context"

	"github.com/kebairia/dabackup/internal/credentials"
)

// TokenProvider serves API tokens stored in Vault as the last link of the
// credential chain.
type TokenProvider struct {
	Client *Client
	Path   string
	Field  string
}

var _ credentials.Provider = (*TokenProvider)(nil)

func (p *TokenProvider) Name() string { return "vault" }

// Token reads the configured secret field. A missing path means Vault is
// not configured for tokens on this run.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	if p.Client == nil || p.Path == "" {
		return "", credentials.ErrNoToken
	}
	return p.Client.ReadSecretField(ctx, p.Path, p.Field)
}
