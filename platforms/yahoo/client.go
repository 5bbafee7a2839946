package yahoo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/benaicompanion/fantasy-101-dashboard/model"
)

const YahooURL = "https://fantasysports.yahooapis.com"

// Client fetches and decodes responses from the Yahoo fantasy API. Authentication
// comes from the *http.Client passed to each call, so the same Client works against
// the real service and test servers alike.
type Client struct {
	url string
}

func New() (*Client, error) {
	return &Client{url: YahooURL}, nil
}

func NewForTest(url string) *Client {
	return &Client{url: url}
}

// StatusError is returned for non-200 responses. Discovery needs to tell a 400
// (Yahoo's "no leagues for this game") apart from real failures.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code from yahoo: %d", e.Code)
}

// GetUserLeagues returns the leagues the logged-in user participated in for one
// NFL game id (Yahoo assigns a new game id every season).
func (c *Client) GetUserLeagues(httpClient *http.Client, gameID int) ([]model.League, error) {
	raw, err := c.yahooRequest(httpClient, "/fantasy/v2/users;use_login=1/games;game_keys=%d/leagues", gameID)
	if err != nil {
		return nil, err
	}
	return ParseLeagues(raw), nil
}

// GetLeagueSettings returns the schedule shape for a league-season. Parse failures
// degrade to defaults inside ParseLeagueSettings; only transport failures error.
func (c *Client) GetLeagueSettings(httpClient *http.Client, leagueKey string) (model.LeagueSettings, error) {
	raw, err := c.yahooRequest(httpClient, "/fantasy/v2/league/%s/settings", leagueKey)
	if err != nil {
		return model.DefaultLeagueSettings(), err
	}
	return ParseLeagueSettings(raw), nil
}

// GetStandings returns the flat team records for a league-season.
func (c *Client) GetStandings(httpClient *http.Client, leagueKey string) ([]model.TeamRecord, error) {
	raw, err := c.yahooRequest(httpClient, "/fantasy/v2/league/%s/standings", leagueKey)
	if err != nil {
		return nil, err
	}
	return ParseStandings(raw)
}

// GetScoreboard returns the flat matchup entries for one week.
func (c *Client) GetScoreboard(httpClient *http.Client, leagueKey string, week int, rosterIDs map[string]int) ([]model.MatchupEntry, error) {
	raw, err := c.yahooRequest(httpClient, "/fantasy/v2/league/%s/scoreboard;week=%d", leagueKey, week)
	if err != nil {
		return nil, err
	}
	return ParseScoreboard(raw, rosterIDs), nil
}

func (c *Client) yahooRequest(httpClient *http.Client, path string, args ...any) (any, error) {
	p := fmt.Sprintf(path, args...)
	sep := "?"
	if strings.Contains(p, "?") {
		sep = "&"
	}

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s%s%sformat=json", c.url, p, sep), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating yahoo http request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending yahoo http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var res any
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("error parsing response from yahoo: %w", err)
	}
	return res, nil
}
