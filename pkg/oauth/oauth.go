package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	jwthandling "github.com/helpdesk-tools/survey-report/pkg/jwt-handling"
	"golang.org/x/oauth2"
)

const (
	DEFAULT_STATE_TTL = 10 * time.Minute

	API_KEY_PARAM = "api_key"
)

type Config struct {
	AuthURL      string        `json:"auth_url" yaml:"auth_url"`
	TokenURL     string        `json:"token_url" yaml:"token_url"`
	ClientID     string        `json:"client_id" yaml:"client_id"`
	ClientSecret string        `json:"client_secret" yaml:"client_secret"`
	RedirectURI  string        `json:"redirect_uri" yaml:"redirect_uri"`
	APIKey       string        `json:"api_key" yaml:"api_key"`
	StateSignKey string        `json:"state_sign_key" yaml:"state_sign_key"`
	StateTTL     time.Duration `json:"state_ttl" yaml:"state_ttl"`
}

// AuthorizationError is the error the provider reports on the redirect.
type AuthorizationError struct {
	Code        string
	Description string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization failed: %s: %s", e.Code, e.Description)
}

var ErrInvalidState = errors.New("invalid or expired oauth state")

// Client runs the authorization code flow. The provider wants the API key
// on both the authorization and the token URL.
type Client struct {
	conf   Config
	oauth2 *oauth2.Config
}

func NewClient(conf Config) (*Client, error) {
	if conf.StateTTL <= 0 {
		conf.StateTTL = DEFAULT_STATE_TTL
	}
	if conf.StateSignKey == "" {
		return nil, errors.New("oauth: state sign key is required")
	}

	tokenURL, err := withAPIKey(conf.TokenURL, conf.APIKey)
	if err != nil {
		return nil, fmt.Errorf("oauth: invalid token url: %w", err)
	}

	return &Client{
		conf: conf,
		oauth2: &oauth2.Config{
			ClientID:     conf.ClientID,
			ClientSecret: conf.ClientSecret,
			RedirectURL:  conf.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   conf.AuthURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}, nil
}

func withAPIKey(rawURL string, apiKey string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if apiKey != "" {
		q := u.Query()
		q.Set(API_KEY_PARAM, apiKey)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// AuthCodeURL is where the user is sent to log in.
func (c *Client) AuthCodeURL(state string) string {
	opts := []oauth2.AuthCodeOption{}
	if c.conf.APIKey != "" {
		opts = append(opts, oauth2.SetAuthURLParam(API_KEY_PARAM, c.conf.APIKey))
	}
	return c.oauth2.AuthCodeURL(state, opts...)
}

// NewState returns a signed, expiring state value.
func (c *Client) NewState(returnTo string) (string, error) {
	return jwthandling.GenerateOAuthStateToken(c.conf.StateTTL, uuid.NewString(), returnTo, c.conf.StateSignKey)
}

// ValidateState checks a state value returned by the provider.
func (c *Client) ValidateState(state string) (*jwthandling.OAuthStateClaims, error) {
	claims, valid, err := jwthandling.ValidateOAuthStateToken(state, c.conf.StateSignKey)
	if err != nil || !valid {
		return nil, ErrInvalidState
	}
	return claims, nil
}

// Exchange trades an authorization code for an access token.
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", errors.New("oauth: empty authorization code")
	}
	token, err := c.oauth2.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("oauth: token exchange: %w", err)
	}
	if token.AccessToken == "" {
		return "", errors.New("oauth: provider returned no access token")
	}
	return token.AccessToken, nil
}
