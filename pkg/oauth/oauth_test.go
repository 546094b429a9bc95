package oauth

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"
)

func testConfig() Config {
	return Config{
		AuthURL:      "https://provider.test/oauth/authorize",
		TokenURL:     "https://provider.test/oauth/token",
		ClientID:     "helpdesk",
		ClientSecret: "s3cret",
		RedirectURI:  "https://reports.test/v1/oauth/callback",
		APIKey:       "key123",
		StateSignKey: "state-key",
	}
}

func TestAuthCodeURL(t *testing.T) {
	c, err := NewClient(testConfig())
	require.NoError(t, err)

	u, err := url.Parse(c.AuthCodeURL("xyz"))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "provider.test", u.Host)
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "helpdesk", q.Get("client_id"))
	assert.Equal(t, "key123", q.Get("api_key"))
	assert.Equal(t, "xyz", q.Get("state"))
	assert.Equal(t, "https://reports.test/v1/oauth/callback", q.Get("redirect_uri"))
}

func TestState(t *testing.T) {
	c, err := NewClient(testConfig())
	require.NoError(t, err)

	state, err := c.NewState("/v1/responses")
	require.NoError(t, err)

	claims, err := c.ValidateState(state)
	require.NoError(t, err)
	assert.Equal(t, "/v1/responses", claims.ReturnTo)
	assert.NotEmpty(t, claims.Nonce)

	_, err = c.ValidateState(state + "x")
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestNewClientRequiresSignKey(t *testing.T) {
	conf := testConfig()
	conf.StateSignKey = ""
	_, err := NewClient(conf)
	assert.Error(t, err)
}

func TestExchange(t *testing.T) {
	defer gock.Off()

	gock.New("https://provider.test").
		Post("/oauth/token").
		MatchParam("api_key", "key123").
		Reply(200).
		JSON(map[string]string{"access_token": "abc.def", "token_type": "bearer"})

	c, err := NewClient(testConfig())
	require.NoError(t, err)

	token, err := c.Exchange(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)
	assert.True(t, gock.IsDone())
}

func TestExchangeRejected(t *testing.T) {
	defer gock.Off()

	gock.New("https://provider.test").
		Post("/oauth/token").
		Reply(400).
		JSON(map[string]string{"error": "invalid_grant", "error_description": "code expired"})

	c, err := NewClient(testConfig())
	require.NoError(t, err)

	_, err = c.Exchange(context.Background(), "old-code")
	assert.Error(t, err)

	_, err = c.Exchange(context.Background(), "")
	assert.Error(t, err)
}
