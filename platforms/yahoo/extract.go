package yahoo

import (
	"errors"
	"log"

	"github.com/benaicompanion/fantasy-101-dashboard/model"
	"github.com/benaicompanion/fantasy-101-dashboard/platforms/yahoo/internal"
)

// The extractors in this file work on already-decoded JSON responses. They never
// perform network calls, so tests can feed them raw documents directly.

// leagueCollection returns the elements of fantasy_content.league, the envelope
// shared by the settings, standings and scoreboard endpoints.
func leagueCollection(raw any) []any {
	fc, ok := internal.Get(raw, "fantasy_content")
	if !ok {
		return nil
	}
	l, ok := internal.Get(fc, "league")
	if !ok {
		return nil
	}
	return internal.Sequence(l)
}

// ParseLeagueSettings extracts the schedule shape from a settings response.
// Values are searched in the dedicated settings sub-collection first and in the
// top-level league metadata second, last writer wins. Any failure degrades to
// DefaultLeagueSettings rather than aborting the season.
func ParseLeagueSettings(raw any) model.LeagueSettings {
	s := model.DefaultLeagueSettings()

	league := leagueCollection(raw)
	if len(league) == 0 {
		return s
	}

	apply := func(m map[string]any) {
		if v, ok := internal.AsInt(m["num_teams"]); ok {
			s.NumTeams = v
		}
		if v, ok := internal.AsInt(m["start_week"]); ok {
			s.StartWeek = v
		}
		if v, ok := internal.AsInt(m["end_week"]); ok {
			s.EndWeek = v
		}
		if v, ok := internal.AsInt(m["playoff_start_week"]); ok {
			s.PlayoffStartWeek = v
		}
	}

	for _, item := range league {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, e := range internal.Sequence(m["settings"]) {
			if sm, ok := e.(map[string]any); ok {
				apply(sm)
			}
		}
	}

	// League metadata overrides the settings list.
	for _, item := range league {
		if m, ok := item.(map[string]any); ok {
			apply(m)
		}
	}

	return s
}

// ParseStandings extracts the flat team records from a standings response, in
// discovery order. The league collection holds metadata in its first element and a
// standings-bearing collection in its second. Teams without a team_key are dropped.
// An error is returned only when no teams at all can be parsed; the caller treats
// that as the season being unrecoverable.
func ParseStandings(raw any) ([]model.TeamRecord, error) {
	league := leagueCollection(raw)
	if len(league) < 2 {
		return nil, errors.New("standings response has no league collection")
	}

	teams := make([]model.TeamRecord, 0, 12)
	if m, ok := league[1].(map[string]any); ok {
		for _, item := range internal.Sequence(m["standings"]) {
			im, ok := item.(map[string]any)
			if !ok {
				continue
			}
			ts, ok := im["teams"]
			if !ok {
				continue
			}
			for _, te := range internal.Sequence(ts) {
				entry, _ := internal.Get(te, "team")
				if t, ok := parseTeamEntry(internal.Sequence(entry)); ok {
					teams = append(teams, t)
				}
			}
		}
	}

	if len(teams) == 0 {
		return nil, errors.New("no teams found in standings")
	}
	return teams, nil
}

// parseTeamEntry merges one team's fields from its ragged entry: identity and
// manager info live in list-typed siblings, rank and point totals in object-typed
// ones. Only team_key is required.
func parseTeamEntry(items []any) (model.TeamRecord, bool) {
	var t model.TeamRecord

	for _, item := range items {
		switch v := item.(type) {
		case []any:
			for _, sub := range v {
				m, ok := sub.(map[string]any)
				if !ok {
					continue
				}
				if s, ok := internal.AsString(m["team_key"]); ok {
					t.TeamKey = s
				}
				if s, ok := internal.AsString(m["team_id"]); ok {
					t.TeamID = s
				}
				if s, ok := internal.AsString(m["name"]); ok {
					t.TeamName = s
				}
				if logo := teamLogoURL(m["team_logos"]); logo != "" {
					t.TeamLogo = logo
				}
				if mgr, ok := m["managers"]; ok {
					t.ManagerName, t.ManagerGUID = managerInfo(mgr)
				}
			}
		case map[string]any:
			if ts, ok := v["team_standings"].(map[string]any); ok {
				if r, ok := internal.AsInt(ts["rank"]); ok {
					t.Rank = r
				}
				if ot, ok := ts["outcome_totals"].(map[string]any); ok {
					t.Wins, _ = internal.AsInt(ot["wins"])
					t.Losses, _ = internal.AsInt(ot["losses"])
					t.Ties, _ = internal.AsInt(ot["ties"])
				}
				t.PointsFor, _ = internal.AsFloat(ts["points_for"])
				t.PointsAgainst, _ = internal.AsFloat(ts["points_against"])
			}
			if tp, ok := v["team_points"].(map[string]any); ok {
				t.PointsTotal, _ = internal.AsFloat(tp["total"])
			}
		}
	}

	if t.TeamKey == "" {
		return model.TeamRecord{}, false
	}
	return t, true
}

func teamLogoURL(v any) string {
	logos := internal.Sequence(v)
	if len(logos) == 0 {
		return ""
	}
	logo, ok := internal.Get(logos[0], "team_logo")
	if !ok {
		return ""
	}
	url, _ := internal.Get(logo, "url")
	s, _ := internal.AsString(url)
	return s
}

func managerInfo(v any) (name, guid string) {
	name = "Unknown"
	managers := internal.Sequence(v)
	if len(managers) == 0 {
		return name, ""
	}
	mgr, ok := internal.Get(managers[0], "manager")
	if !ok {
		return name, ""
	}
	if n, ok := internal.Get(mgr, "nickname"); ok {
		if s, ok := internal.AsString(n); ok && s != "" {
			name = s
		}
	}
	if g, ok := internal.Get(mgr, "guid"); ok {
		guid, _ = internal.AsString(g)
	}
	return name, guid
}

// ParseScoreboard extracts one week's matchups as a flat entry list, two entries per
// matchup. Matchup ids are 1-based in encounter order and shared by both
// participants. A matchup is emitted only when exactly two participants resolve a
// team key; anything else is skipped so a malformed matchup never poisons the week.
// A team key missing from rosterIDs falls back to its position within the matchup.
func ParseScoreboard(raw any, rosterIDs map[string]int) []model.MatchupEntry {
	entries := make([]model.MatchupEntry, 0, 24)

	league := leagueCollection(raw)
	if len(league) < 2 {
		return entries
	}
	sb, ok := internal.Get(league[1], "scoreboard")
	if !ok {
		return entries
	}
	matchups, ok := internal.NamedCollection(sb, "matchups")
	if !ok {
		return entries
	}

	matchupID := 1
	for _, m := range internal.Sequence(matchups) {
		entry, ok := internal.Get(m, "matchup")
		if !ok {
			continue
		}
		teams, ok := internal.NamedCollection(entry, "teams")
		if !ok {
			continue
		}

		pair := make([]model.MatchupEntry, 0, 2)
		for pos, te := range internal.Sequence(teams) {
			team, _ := internal.Get(te, "team")
			key, points := teamKeyAndPoints(internal.Sequence(team))
			if key == "" {
				continue
			}

			rosterID, ok := rosterIDs[key]
			if !ok {
				rosterID = pos + 1
				log.Printf("team key %s is not in the roster map, using position %d", key, rosterID)
			}

			pair = append(pair, model.MatchupEntry{
				RosterID:  rosterID,
				MatchupID: matchupID,
				Points:    points,
			})
		}

		if len(pair) == 2 {
			entries = append(entries, pair...)
			matchupID++
		}
	}

	return entries
}

func teamKeyAndPoints(items []any) (string, float64) {
	key := ""
	if v, ok := internal.FindInSiblings(items, "team_key"); ok {
		key, _ = internal.AsString(v)
	}

	points := 0.0
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if tp, ok := m["team_points"].(map[string]any); ok {
			points, _ = internal.AsFloat(tp["total"])
		}
	}
	return key, points
}

// ParseLeagues extracts the discovered leagues from a users/games/leagues response.
func ParseLeagues(raw any) []model.League {
	leagues := make([]model.League, 0, 4)

	fc, _ := internal.Get(raw, "fantasy_content")
	users, _ := internal.Get(fc, "users")
	seq := internal.Sequence(users)
	if len(seq) == 0 {
		return leagues
	}
	user, _ := internal.Get(seq[0], "user")
	items := internal.Sequence(user)
	if len(items) < 2 {
		return leagues
	}

	games, _ := internal.Get(items[1], "games")
	for _, g := range internal.Sequence(games) {
		game, _ := internal.Get(g, "game")
		entry := internal.Sequence(game)
		if len(entry) < 2 {
			continue
		}
		ld, ok := internal.Get(entry[1], "leagues")
		if !ok {
			continue
		}
		for _, l := range internal.Sequence(ld) {
			league, _ := internal.Get(l, "league")
			parts := internal.Sequence(league)
			if len(parts) == 0 {
				continue
			}
			m, ok := parts[0].(map[string]any)
			if !ok {
				continue
			}

			var found model.League
			found.Name, _ = internal.AsString(m["name"])
			found.LeagueKey, _ = internal.AsString(m["league_key"])
			found.LeagueID, _ = internal.AsString(m["league_id"])
			found.Season, _ = internal.AsString(m["season"])
			if found.LeagueKey != "" {
				leagues = append(leagues, found)
			}
		}
	}

	return leagues
}
