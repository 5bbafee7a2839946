package model

import "strconv"

// SeasonRecord is one league-season in the dashboard's SeasonData schema. It is
// assembled fresh per extraction run and serialized directly to the output file.
type SeasonRecord struct {
	League         LeagueInfo         `json:"league"`
	Users          []User             `json:"users"`
	Rosters        []Roster           `json:"rosters"`
	Matchups       [][]MatchupEntry   `json:"matchups"`
	WinnersBracket []BracketPlacement `json:"winnersBracket"`
	RosterToOwner  map[string]string  `json:"rosterToOwner"`
}

type LeagueInfo struct {
	LeagueID         string             `json:"league_id"`
	Name             string             `json:"name"`
	Season           string             `json:"season"`
	PreviousLeagueID *string            `json:"previous_league_id"`
	TotalRosters     int                `json:"total_rosters"`
	Settings         LeagueInfoSettings `json:"settings"`
	Avatar           *string            `json:"avatar"`
}

type LeagueInfoSettings struct {
	PlayoffWeekStart int `json:"playoff_week_start"`
	Leg              int `json:"leg"`
}

// User is one distinct manager within a season, keyed by manager guid.
type User struct {
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"display_name"`
	Avatar      string       `json:"avatar"`
	Metadata    UserMetadata `json:"metadata"`
}

type UserMetadata struct {
	TeamName string `json:"team_name"`
}

// Roster is a team's season-long record. RosterID is 1-based in final-rank order,
// so roster 1 is always the season champion.
type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	LeagueID string         `json:"league_id"`
	Settings RosterSettings `json:"settings"`
}

type RosterSettings struct {
	Wins               int `json:"wins"`
	Losses             int `json:"losses"`
	Ties               int `json:"ties"`
	Fpts               int `json:"fpts"`
	FptsDecimal        int `json:"fpts_decimal"`
	FptsAgainst        int `json:"fpts_against"`
	FptsAgainstDecimal int `json:"fpts_against_decimal"`
}

// MatchupEntry is one team's side of a head-to-head matchup. The two entries of a
// matchup share the same MatchupID within their week.
type MatchupEntry struct {
	RosterID  int     `json:"roster_id"`
	MatchupID int     `json:"matchup_id"`
	Points    float64 `json:"points"`
}

// BracketPlacement is a resolved playoff game. Placement 1 is the championship,
// placement 3 the third-place game. Field names follow the Sleeper bracket wire format.
type BracketPlacement struct {
	Round     int `json:"r"`
	Match     int `json:"m"`
	Team1     int `json:"t1"`
	Team2     int `json:"t2"`
	Winner    int `json:"w"`
	Loser     int `json:"l"`
	Placement int `json:"p"`
}

// PlayoffWeek pairs a week number with that week's flat matchup entries. Used by the
// matchup-derived bracket reconstruction.
type PlayoffWeek struct {
	Week     int
	Matchups []MatchupEntry
}

// LeagueSettings is the schedule shape of a league-season.
type LeagueSettings struct {
	NumTeams         int
	StartWeek        int
	PlayoffStartWeek int
	EndWeek          int
}

// RegularSeasonWeeks is the number of weeks before the playoffs start.
func (s LeagueSettings) RegularSeasonWeeks() int {
	return s.PlayoffStartWeek - 1
}

// DefaultLeagueSettings are the conservative values used when a settings response
// cannot be fetched or parsed.
func DefaultLeagueSettings() LeagueSettings {
	return LeagueSettings{
		NumTeams:         10,
		StartWeek:        1,
		PlayoffStartWeek: 14,
		EndWeek:          16,
	}
}

// TeamRecord is one team's row from a standings response. TeamKey is the only
// required field; teams without it are dropped during extraction.
type TeamRecord struct {
	TeamKey       string
	TeamID        string
	TeamName      string
	TeamLogo      string
	ManagerName   string
	ManagerGUID   string
	Rank          int // 0 means unranked, which sorts last
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
	PointsTotal   float64
}

// OwnerID is the manager guid, or a synthesized id derived from the team key when
// the guid is absent.
func (t TeamRecord) OwnerID() string {
	if t.ManagerGUID != "" {
		return t.ManagerGUID
	}
	return "yahoo_" + t.TeamKey
}

// League is a discovered league-season, before extraction.
type League struct {
	Name      string
	LeagueKey string
	LeagueID  string
	Season    string
	GameID    int
}

// SeasonYear returns the season as an int, or 0 if it cannot be parsed.
func (l League) SeasonYear() int {
	y, err := strconv.Atoi(l.Season)
	if err != nil {
		return 0
	}
	return y
}
