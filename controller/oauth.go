package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

type oauthState struct {
	expiry time.Time
}

func (c *controller) OAuthStart() (string, error) {
	if c.yahooConfig == nil {
		return "", errors.New("yahoo oauth client is not configured")
	}

	state := generateRandomState()
	c.oauthStates[state] = &oauthState{
		expiry: c.clock.Now().Add(5 * time.Minute),
	}
	return c.yahooConfig.AuthCodeURL(state), nil
}

func (c *controller) OAuthExchange(ctx context.Context, state, code string) error {
	s, ok := c.oauthStates[state]
	if !ok || c.clock.Now().After(s.expiry) {
		return errors.New("state is not valid")
	}

	token, err := c.yahooConfig.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("error exchanging code: %w", err)
	}

	return c.tokens.Save(token)
}

func (c *controller) HasToken() bool {
	_, err := c.tokens.Get()
	return err == nil
}

// getToken loads the saved token and refreshes it when expired. We must refresh
// manually in order to persist the new token; the oauth2 auto-refreshing client
// never hands the refreshed token back.
func (c *controller) getToken(ctx context.Context) (*oauth2.Token, error) {
	t, err := c.tokens.Get()
	if err != nil {
		return nil, err
	}

	if t.Expiry.Before(c.clock.Now()) {
		log.Printf("refreshing yahoo access token")
		tknSrc := c.yahooConfig.TokenSource(ctx, t)

		t, err = tknSrc.Token()
		if err != nil {
			return nil, fmt.Errorf("error refreshing token: %w", err)
		}

		if err := c.tokens.Save(t); err != nil {
			return nil, fmt.Errorf("error saving refreshed token: %w", err)
		}
	}

	return t, nil
}

// authClient returns an http client that attaches the bearer token to every request.
func (c *controller) authClient(ctx context.Context) (*http.Client, error) {
	if c.yahooConfig == nil {
		return nil, errors.New("yahoo oauth client is not configured")
	}

	t, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}
	return c.yahooConfig.Client(ctx, t), nil
}

func generateRandomState() string {
	var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	b := make([]rune, 15)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
