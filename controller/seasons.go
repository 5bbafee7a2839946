package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/benaicompanion/fantasy-101-dashboard/model"
	"github.com/benaicompanion/fantasy-101-dashboard/platforms/yahoo"
)

// Rank assigned at sort time to teams whose standings carry no rank; they sort
// after every ranked team but keep their discovery order among themselves.
const unrankedSortKey = 99

func (c *controller) DiscoverLeagues(ctx context.Context) ([]model.League, error) {
	httpClient, err := c.authClient(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]model.League, 0, 16)
	for year := c.cfg.FirstSeason; year <= c.cfg.LastSeason; year++ {
		gameID, ok := c.cfg.GameIDs[year]
		if !ok {
			continue
		}

		leagues, err := c.yahoo.GetUserLeagues(httpClient, gameID)
		if err != nil {
			var se *yahoo.StatusError
			if errors.As(err, &se) && se.Code == http.StatusBadRequest {
				// Yahoo answers 400 when the user has no leagues for this game.
				continue
			}
			log.Printf("error fetching leagues for %d: %v", year, err)
			continue
		}

		for _, l := range leagues {
			if l.Season == "" {
				l.Season = strconv.Itoa(year)
			}
			l.GameID = gameID
			all = append(all, l)
			log.Printf("found league: %s (%s) - %s", l.Name, l.Season, l.LeagueKey)
		}

		c.clock.Sleep(c.cfg.DiscoveryDelay)
	}

	return all, nil
}

func (c *controller) FilterLeagues(leagues []model.League) []model.League {
	filtered := make([]model.League, 0, len(leagues))
	for _, l := range leagues {
		name := strings.ToLower(strings.TrimSpace(l.Name))
		for _, pattern := range c.cfg.NameFilters {
			if strings.Contains(name, pattern) {
				filtered = append(filtered, l)
				break
			}
		}
	}

	slices.SortStableFunc(filtered, func(a, b model.League) int {
		return strings.Compare(a.Season, b.Season)
	})
	return filtered
}

func (c *controller) ExtractAllSeasons(ctx context.Context) ([]model.SeasonRecord, error) {
	leagues, err := c.DiscoverLeagues(ctx)
	if err != nil {
		return nil, fmt.Errorf("error discovering leagues: %w", err)
	}

	matching := c.FilterLeagues(leagues)
	if len(matching) == 0 {
		return nil, errors.New("no leagues matching the name filters found")
	}

	records := make([]model.SeasonRecord, 0, len(matching))
	for _, l := range matching {
		rec, err := c.ExtractSeason(ctx, l)
		if err != nil {
			log.Printf("skipping %s (%s): %v", l.Name, l.Season, err)
			continue
		}
		records = append(records, *rec)
	}

	slices.SortStableFunc(records, func(a, b model.SeasonRecord) int {
		return strings.Compare(a.League.Season, b.League.Season)
	})
	return records, nil
}

// ExtractSeason reconstructs one league-season: standings define the rosters, the
// rank-sorted order defines roster ids (roster 1 is always the champion), regular
// season weeks come from the scoreboard endpoint, and the winners bracket is derived
// from the roster id ordering. A failed week degrades to an empty matchup list so
// week indices stay aligned across seasons; unparseable standings abort this season
// only.
func (c *controller) ExtractSeason(ctx context.Context, league model.League) (*model.SeasonRecord, error) {
	httpClient, err := c.authClient(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := c.yahoo.GetLeagueSettings(httpClient, league.LeagueKey)
	if err != nil {
		log.Printf("could not fetch settings for %s, using defaults: %v", league.LeagueKey, err)
		settings = model.DefaultLeagueSettings()
	}

	teams, err := c.yahoo.GetStandings(httpClient, league.LeagueKey)
	if err != nil {
		return nil, fmt.Errorf("error parsing standings for %s: %w", league.LeagueKey, err)
	}

	// Stable sort by final rank so that roster_id 1 is the champion. Unranked teams
	// go last, ties keep discovery order. The bracket reconstruction depends on this
	// binding; roster ids must never be assigned any other way.
	sorted := slices.Clone(teams)
	slices.SortStableFunc(sorted, func(a, b model.TeamRecord) int {
		return sortRank(a) - sortRank(b)
	})

	users := make([]model.User, 0, len(sorted))
	rosters := make([]model.Roster, 0, len(sorted))
	owners := make(map[int]string, len(sorted))
	rosterIDs := make(map[string]int, len(sorted))
	seen := make(map[string]bool, len(sorted))

	for idx, team := range sorted {
		rosterID := idx + 1
		ownerID := team.OwnerID()

		// One user per distinct manager, first seen wins.
		if !seen[ownerID] {
			seen[ownerID] = true
			name := team.ManagerName
			if name == "" {
				name = fmt.Sprintf("Manager %d", rosterID)
			}
			users = append(users, model.User{
				UserID:      ownerID,
				DisplayName: name,
				Avatar:      team.TeamLogo,
				Metadata:    model.UserMetadata{TeamName: team.TeamName},
			})
		}

		rosters = append(rosters, model.Roster{
			RosterID: rosterID,
			OwnerID:  ownerID,
			LeagueID: league.LeagueKey,
			Settings: rosterSettings(team),
		})

		owners[rosterID] = ownerID
		rosterIDs[team.TeamKey] = rosterID
	}

	weeks := make([][]model.MatchupEntry, 0, settings.RegularSeasonWeeks())
	for week := 1; week <= settings.RegularSeasonWeeks(); week++ {
		entries, err := c.yahoo.GetScoreboard(httpClient, league.LeagueKey, week, rosterIDs)
		if err != nil {
			log.Printf("could not fetch week %d for %s: %v", week, league.LeagueKey, err)
			entries = []model.MatchupEntry{}
		}
		weeks = append(weeks, entries)
		c.clock.Sleep(c.cfg.ScoreboardDelay)
	}

	rec := &model.SeasonRecord{
		League: model.LeagueInfo{
			LeagueID:     league.LeagueKey,
			Name:         league.Name,
			Season:       league.Season,
			TotalRosters: len(sorted),
			Settings: model.LeagueInfoSettings{
				PlayoffWeekStart: settings.PlayoffStartWeek,
				Leg:              1,
			},
		},
		Users:          users,
		Rosters:        rosters,
		Matchups:       weeks,
		WinnersBracket: bracketFromRankings(owners),
		RosterToOwner:  rosterToOwner(owners),
	}

	log.Printf("extracted %s (%s): %d teams, %d weeks, %d playoff placements",
		league.Name, league.Season, len(rosters), len(weeks), len(rec.WinnersBracket))
	return rec, nil
}

func sortRank(t model.TeamRecord) int {
	if t.Rank == 0 {
		return unrankedSortKey
	}
	return t.Rank
}

// rosterSettings converts a team's totals into the Sleeper roster settings shape,
// splitting points into whole and hundredths parts.
func rosterSettings(t model.TeamRecord) model.RosterSettings {
	return model.RosterSettings{
		Wins:               t.Wins,
		Losses:             t.Losses,
		Ties:               t.Ties,
		Fpts:               int(t.PointsFor),
		FptsDecimal:        pointsDecimal(t.PointsFor),
		FptsAgainst:        int(t.PointsAgainst),
		FptsAgainstDecimal: pointsDecimal(t.PointsAgainst),
	}
}

func pointsDecimal(points float64) int {
	_, frac := math.Modf(points)
	return int(math.Round(frac * 100))
}

func rosterToOwner(owners map[int]string) map[string]string {
	out := make(map[string]string, len(owners))
	for id, owner := range owners {
		out[strconv.Itoa(id)] = owner
	}
	return out
}
