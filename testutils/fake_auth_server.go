package testutils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"golang.org/x/oauth2"
)

// FakeAuth provides an oauth2 config pointed at a fake token endpoint so tests can
// exercise the token exchange and refresh paths without Yahoo.
type FakeAuth struct {
	Config *oauth2.Config
	server *httptest.Server
}

func NewFakeAuth() *FakeAuth {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"access_token": "access_token",
			"refresh_token": "refresh_token",
			"token_type": "bearer",
			"expires_in": 3600
		}`))
	}))

	return &FakeAuth{
		Config: &oauth2.Config{
			ClientID:     "fakeClientID",
			ClientSecret: "fakeClientSecret",
			Endpoint: oauth2.Endpoint{
				AuthURL:  fmt.Sprintf("%s/auth", server.URL),
				TokenURL: fmt.Sprintf("%s/token", server.URL),
			},
			RedirectURL: fmt.Sprintf("%s/redirect", server.URL),
		},
		server: server,
	}
}

func (f *FakeAuth) Close() {
	f.server.Close()
}

// Token returns a token that is valid for the next hour, so tests skip the
// refresh path unless they want it.
func (f *FakeAuth) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  "access_token",
		RefreshToken: "refresh_token",
		TokenType:    "bearer",
		Expiry:       time.Now().Add(1 * time.Hour),
	}
}
