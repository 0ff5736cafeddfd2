// Package auth authenticates outbound provider requests with the OAuth2
// client credentials flow.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Conf represents the configuration needed for authentication.
// It includes the client ID, client secret, and the token URL.
type Conf struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	TokenURL     string   `json:"token_url"`
	Scopes       []string `json:"scopes"`
}

// Enabled reports whether client credentials are configured.
func (c Conf) Enabled() bool { return c.ClientID != "" }

// Validate checks that an enabled configuration is complete.
func (c Conf) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.ClientSecret == "" || c.TokenURL == "" {
		return fmt.Errorf("auth requires client_secret and token_url")
	}
	return nil
}

func (c Conf) toOauth2Config() clientcredentials.Config {
	return clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL,
		Scopes:       c.Scopes,
	}
}

// ClientCred fetches and caches access tokens.
type ClientCred struct {
	src oauth2.TokenSource
}

// NewClientCred returns a ClientCred whose token requests go through base.
func NewClientCred(conf Conf, base *http.Client) *ClientCred {
	ctx := context.Background()
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	cc := conf.toOauth2Config()
	return &ClientCred{src: oauth2.ReuseTokenSource(nil, cc.TokenSource(ctx))}
}

// GetToken returns a valid access token, requesting a new one when the cached
// token has expired.
func (c *ClientCred) GetToken() (string, error) {
	tok, err := c.src.Token()
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	return tok.AccessToken, nil
}

// Client wraps base so that every request carries a bearer token. The
// timeout of base is preserved.
func (c *ClientCred) Client(base *http.Client) *http.Client {
	if base == nil {
		base = http.DefaultClient
	}
	return &http.Client{
		Timeout: base.Timeout,
		Transport: &oauth2.Transport{
			Source: c.src,
			Base:   base.Transport,
		},
	}
}
