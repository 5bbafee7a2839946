package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// The output file is consumed by the dashboard as-is, so the serialized field
// names are a contract.
func TestSeasonRecordSerialization(t *testing.T) {
	rec := SeasonRecord{
		League: LeagueInfo{
			LeagueID:     "390.l.112233",
			Name:         "Football101 Legends",
			Season:       "2019",
			TotalRosters: 4,
			Settings:     LeagueInfoSettings{PlayoffWeekStart: 14, Leg: 1},
		},
		Users: []User{
			{UserID: "GUID1", DisplayName: "Alice", Metadata: UserMetadata{TeamName: "Alpha Squad"}},
		},
		Rosters: []Roster{
			{RosterID: 1, OwnerID: "GUID1", LeagueID: "390.l.112233",
				Settings: RosterSettings{Wins: 11, Losses: 2, Fpts: 1301, FptsDecimal: 50}},
		},
		Matchups: [][]MatchupEntry{
			{{RosterID: 1, MatchupID: 1, Points: 142.78}},
			{},
		},
		WinnersBracket: []BracketPlacement{
			{Round: 2, Match: 1, Team1: 1, Team2: 2, Winner: 1, Loser: 2, Placement: 1},
		},
		RosterToOwner: map[string]string{"1": "GUID1"},
	}

	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("unexpected error serializing a season record: %v", err)
	}
	out := string(b)

	for _, field := range []string{
		`"league"`, `"users"`, `"rosters"`, `"matchups"`, `"winnersBracket"`, `"rosterToOwner"`,
		`"league_id"`, `"previous_league_id"`, `"total_rosters"`, `"playoff_week_start"`, `"leg"`, `"avatar"`,
		`"user_id"`, `"display_name"`, `"team_name"`,
		`"roster_id"`, `"owner_id"`, `"fpts"`, `"fpts_decimal"`, `"fpts_against"`, `"fpts_against_decimal"`,
		`"matchup_id"`, `"points"`,
	} {
		if !strings.Contains(out, field) {
			t.Errorf("expected serialized record to contain %s", field)
		}
	}

	// Bracket placements use the single-letter Sleeper keys.
	if !strings.Contains(out, `"winnersBracket":[{"r":2,"m":1,"t1":1,"t2":2,"w":1,"l":2,"p":1}]`) {
		t.Errorf("unexpected bracket serialization: %s", out)
	}

	// An unavailable week serializes as an empty list, never null.
	if !strings.Contains(out, `"matchups":[[{"roster_id":1,"matchup_id":1,"points":142.78}],[]]`) {
		t.Errorf("unexpected matchups serialization: %s", out)
	}
}

func TestTeamRecordOwnerID(t *testing.T) {
	tests := map[string]struct {
		team     TeamRecord
		expected string
	}{
		"with guid":    {team: TeamRecord{TeamKey: "390.l.1.t.7", ManagerGUID: "GUID7"}, expected: "GUID7"},
		"without guid": {team: TeamRecord{TeamKey: "390.l.1.t.7"}, expected: "yahoo_390.l.1.t.7"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tc.team.OwnerID(); got != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestLeagueSeasonYear(t *testing.T) {
	if y := (League{Season: "2019"}).SeasonYear(); y != 2019 {
		t.Errorf("expected 2019, got %d", y)
	}
	if y := (League{Season: "n/a"}).SeasonYear(); y != 0 {
		t.Errorf("expected 0 for an unparseable season, got %d", y)
	}
}

func TestRegularSeasonWeeks(t *testing.T) {
	if got := DefaultLeagueSettings().RegularSeasonWeeks(); got != 13 {
		t.Errorf("expected 13 regular season weeks, got %d", got)
	}
	s := LeagueSettings{NumTeams: 4, StartWeek: 1, PlayoffStartWeek: 3, EndWeek: 4}
	if got := s.RegularSeasonWeeks(); got != 2 {
		t.Errorf("expected 2 regular season weeks, got %d", got)
	}
}
