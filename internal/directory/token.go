package directory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/concave-dev/attest/internal/apierror"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

// tokenSkew is subtracted from token expiry so a token is never used in its
// last moments.
const tokenSkew = time.Minute

// TokenSource returns a bearer token for the directory and mail services.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Credentials are the client-credentials grant parameters.
type Credentials struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scope        string
}

// ClientCredentials fetches access tokens with the OAuth2 client-credentials
// grant and caches them until shortly before they expire. It is safe for
// concurrent use; concurrent callers share one in-flight fetch.
type ClientCredentials struct {
	client *resty.Client
	creds  Credentials
	now    func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// NewClientCredentials creates a token source. client is used as-is; it needs
// no base URL since the token URL is absolute.
func NewClientCredentials(client *resty.Client, creds Credentials) *ClientCredentials {
	return &ClientCredentials{client: client, creds: creds, now: time.Now}
}

// Token returns a cached token or fetches a new one.
func (c *ClientCredentials) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expires) {
		return c.token, nil
	}

	var result tokenResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     c.creds.ClientID,
			"client_secret": c.creds.ClientSecret,
			"scope":         c.creds.Scope,
		}).
		SetResult(&result).
		Post(c.creds.TokenURL)
	if err != nil {
		return "", apierror.Transport(err, "failed to reach token endpoint")
	}
	if err := apierror.FromResponse(resp, "Failed to acquire directory token"); err != nil {
		return "", err
	}
	if strings.TrimSpace(result.AccessToken) == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}

	c.token = result.AccessToken
	c.expires = tokenExpiry(result.AccessToken, result.ExpiresIn, c.now()).Add(-tokenSkew)
	return c.token, nil
}

// tokenExpiry prefers the JWT exp claim and falls back to expires_in. The
// signature is not verified; the token is only forwarded, never trusted.
func tokenExpiry(token string, expiresIn int, now time.Time) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err == nil {
		if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	if expiresIn > 0 {
		return now.Add(time.Duration(expiresIn) * time.Second)
	}
	return now
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token(context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("no directory token configured")
	}
	return string(s), nil
}
