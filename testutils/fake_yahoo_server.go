package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

// YahooGameID is the only game id the fake server has leagues for.
const YahooGameID = 390

// YahooLeagueKey identifies the fake league whose endpoints are populated.
const YahooLeagueKey = "390.l.112233"

//go:embed yahoodata
var yahoodata embed.FS

type FakeYahooServer struct {
	s *httptest.Server
}

func NewFakeYahooServer() *FakeYahooServer {
	r := chi.NewRouter()
	// https://fantasysports.yahooapis.com/fantasy/v2/league/390.l.112233/standings?format=json
	r.Route("/fantasy/v2", func(r chi.Router) {
		r.Get("/users;use_login=1/games;game_keys={gameID}/leagues", userLeaguesHandler)
		r.Route("/league/{leagueKey}", func(r chi.Router) {
			r.Get("/settings", leagueSettingsHandler)
			r.Get("/standings", leagueStandingsHandler)
			r.Get("/scoreboard;week={week}", leagueScoreboardHandler)
		})
	})

	return &FakeYahooServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeYahooServer) Close() {
	f.s.Close()
}

func (f *FakeYahooServer) URL() string {
	return f.s.URL
}

func userLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if gameID == fmt.Sprintf("%d", YahooGameID) {
		serveYahooFile(w, "leagues.json")
		return
	}

	// Yahoo answers 400 for game ids the user has no leagues in.
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte(noLeaguesMessage))
}

func leagueSettingsHandler(w http.ResponseWriter, r *http.Request) {
	leagueKey := chi.URLParam(r, "leagueKey")
	if leagueKey == YahooLeagueKey {
		serveYahooFile(w, "settings.json")
		return
	}

	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("error"))
}

func leagueStandingsHandler(w http.ResponseWriter, r *http.Request) {
	leagueKey := chi.URLParam(r, "leagueKey")
	if leagueKey == YahooLeagueKey {
		serveYahooFile(w, "standings.json")
		return
	}

	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("error"))
}

func leagueScoreboardHandler(w http.ResponseWriter, r *http.Request) {
	leagueKey := chi.URLParam(r, "leagueKey")
	week := chi.URLParam(r, "week")
	if leagueKey == YahooLeagueKey && week == "1" {
		serveYahooFile(w, "scoreboard_week1.json")
		return
	}

	// Other weeks are unavailable so callers exercise the empty-week degradation.
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte("error"))
}

func serveYahooFile(w http.ResponseWriter, name string) {
	b, err := yahoodata.ReadFile(fmt.Sprintf("yahoodata/%s", name))
	if err != nil {
		log.Printf("error reading yahoodata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

const noLeaguesMessage = `{"error":{"description":"The game_keys parameter contained invalid values."}}`
