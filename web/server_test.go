package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/benaicompanion/fantasy-101-dashboard/controller"
	"github.com/benaicompanion/fantasy-101-dashboard/platforms/yahoo"
	"github.com/benaicompanion/fantasy-101-dashboard/testutils"
	"github.com/benaicompanion/fantasy-101-dashboard/tokenstore"
	"github.com/itbasis/go-clock"
)

func newTestControllerAndServer(t *testing.T) (controller.C, *Server, *httptest.Server) {
	t.Helper()

	fakeAuth := testutils.NewFakeAuth()
	t.Cleanup(fakeAuth.Close)

	tokens := tokenstore.New(filepath.Join(t.TempDir(), "token.json"))

	yahooClient, err := yahoo.New()
	if err != nil {
		t.Fatalf("error creating a new yahoo client: %v", err)
	}

	ctrl, err := controller.New(clock.New(), yahooClient, fakeAuth.Config, tokens, controller.DefaultConfig())
	if err != nil {
		t.Fatalf("error creating a new controller: %v", err)
	}

	s, err := NewServer(0, ctrl)
	if err != nil {
		t.Fatalf("error creating a new server: %v", err)
	}

	ts := httptest.NewServer(s.server.Handler)
	t.Cleanup(ts.Close)

	return ctrl, s, ts
}

// noRedirectClient returns redirects to the caller instead of following them,
// since the auth url points at the fake Yahoo endpoint.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestOauthLinkHandler(t *testing.T) {
	_, _, ts := newTestControllerAndServer(t)

	resp, err := noRedirectClient().Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("unexpected error requesting the login page: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected a 303, got %d", resp.StatusCode)
	}

	location, err := url.Parse(resp.Header.Get("Location"))
	if err != nil {
		t.Fatalf("error parsing the redirect location: %v", err)
	}
	if location.Query().Get("state") == "" {
		t.Error("expected the auth url to carry a state parameter")
	}
}

func TestOauthRedirectHandler(t *testing.T) {
	ctrl, s, ts := newTestControllerAndServer(t)

	// Start the flow to obtain a valid state.
	resp, err := noRedirectClient().Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("unexpected error requesting the login page: %v", err)
	}
	resp.Body.Close()

	location, err := url.Parse(resp.Header.Get("Location"))
	if err != nil {
		t.Fatalf("error parsing the redirect location: %v", err)
	}
	state := location.Query().Get("state")

	resp, err = http.Get(ts.URL + "/auth/callback?state=" + state + "&code=fake-code")
	if err != nil {
		t.Fatalf("unexpected error requesting the callback: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected a 200, got %d", resp.StatusCode)
	}
	if !ctrl.HasToken() {
		t.Error("expected a token to be saved after the exchange")
	}

	select {
	case <-s.AuthDone():
	default:
		t.Error("expected the auth done channel to be closed")
	}
}

func TestOauthRedirectHandler_badState(t *testing.T) {
	_, s, ts := newTestControllerAndServer(t)

	resp, err := http.Get(ts.URL + "/auth/callback?state=never-issued&code=fake-code")
	if err != nil {
		t.Fatalf("unexpected error requesting the callback: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected a 500, got %d", resp.StatusCode)
	}

	select {
	case <-s.AuthDone():
		t.Error("expected the auth done channel to stay open")
	default:
	}
}

func TestSignalAuthDoneIsIdempotent(t *testing.T) {
	_, s, _ := newTestControllerAndServer(t)

	s.signalAuthDone()
	s.signalAuthDone()

	select {
	case <-s.AuthDone():
	default:
		t.Error("expected the auth done channel to be closed")
	}
}
