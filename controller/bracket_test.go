package controller

import (
	"reflect"
	"testing"

	"github.com/benaicompanion/fantasy-101-dashboard/model"
)

func TestBracketFromRankings(t *testing.T) {
	owners := func(n int) map[int]string {
		m := make(map[int]string, n)
		for i := 1; i <= n; i++ {
			m[i] = "owner"
		}
		return m
	}

	championship := model.BracketPlacement{
		Round: 2, Match: 1, Team1: 1, Team2: 2, Winner: 1, Loser: 2, Placement: 1,
	}
	thirdPlace := model.BracketPlacement{
		Round: 2, Match: 2, Team1: 3, Team2: 4, Winner: 3, Loser: 4, Placement: 3,
	}

	tests := map[string]struct {
		owners   map[int]string
		expected []model.BracketPlacement
	}{
		"four rosters":  {owners: owners(4), expected: []model.BracketPlacement{championship, thirdPlace}},
		"ten rosters":   {owners: owners(10), expected: []model.BracketPlacement{championship, thirdPlace}},
		"two rosters":   {owners: owners(2), expected: []model.BracketPlacement{championship}},
		"three rosters": {owners: owners(3), expected: []model.BracketPlacement{championship}},
		"one roster":    {owners: owners(1), expected: []model.BracketPlacement{}},
		"no rosters":    {owners: owners(0), expected: []model.BracketPlacement{}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := bracketFromRankings(tc.owners)
			if !reflect.DeepEqual(tc.expected, got) {
				t.Errorf("expected %+v, got %+v", tc.expected, got)
			}
		})
	}
}

func TestBracketFromPlayoffWeeks(t *testing.T) {
	// Semifinals: R1 beats R2, R3 beats R4. Final week: R1 beats R3 for the
	// championship; no third-place game was played.
	weeks := []model.PlayoffWeek{
		{Week: 15, Matchups: []model.MatchupEntry{
			{RosterID: 1, MatchupID: 1, Points: 80},
			{RosterID: 2, MatchupID: 1, Points: 60},
			{RosterID: 3, MatchupID: 2, Points: 90},
			{RosterID: 4, MatchupID: 2, Points: 40},
		}},
		{Week: 16, Matchups: []model.MatchupEntry{
			{RosterID: 1, MatchupID: 1, Points: 70},
			{RosterID: 3, MatchupID: 1, Points: 65},
		}},
	}

	got := BracketFromPlayoffWeeks(weeks, 16)
	expected := []model.BracketPlacement{
		{Round: 2, Match: 1, Team1: 1, Team2: 3, Winner: 1, Loser: 3, Placement: 1},
	}
	if !reflect.DeepEqual(expected, got) {
		t.Errorf("expected %+v, got %+v", expected, got)
	}
}

func TestBracketFromPlayoffWeeksWithThirdPlace(t *testing.T) {
	weeks := []model.PlayoffWeek{
		{Week: 15, Matchups: []model.MatchupEntry{
			{RosterID: 1, MatchupID: 1, Points: 80},
			{RosterID: 4, MatchupID: 1, Points: 85},
			{RosterID: 2, MatchupID: 2, Points: 90},
			{RosterID: 3, MatchupID: 2, Points: 40},
		}},
		{Week: 16, Matchups: []model.MatchupEntry{
			// Third-place game listed first to prove the semifinal partition wins
			// over positional order.
			{RosterID: 1, MatchupID: 1, Points: 55},
			{RosterID: 3, MatchupID: 1, Points: 60},
			{RosterID: 4, MatchupID: 2, Points: 95},
			{RosterID: 2, MatchupID: 2, Points: 100},
		}},
	}

	got := BracketFromPlayoffWeeks(weeks, 16)
	expected := []model.BracketPlacement{
		{Round: 2, Match: 1, Team1: 2, Team2: 4, Winner: 2, Loser: 4, Placement: 1},
		{Round: 2, Match: 2, Team1: 3, Team2: 1, Winner: 3, Loser: 1, Placement: 3},
	}
	if !reflect.DeepEqual(expected, got) {
		t.Errorf("expected %+v, got %+v", expected, got)
	}
}

func TestBracketFromPlayoffWeeksNoSemifinalData(t *testing.T) {
	// Without semifinal results the final week's matchups are taken in matchup id
	// order: first championship, second third place.
	weeks := []model.PlayoffWeek{
		{Week: 16, Matchups: []model.MatchupEntry{
			{RosterID: 5, MatchupID: 2, Points: 88},
			{RosterID: 6, MatchupID: 2, Points: 93},
			{RosterID: 7, MatchupID: 1, Points: 110},
			{RosterID: 8, MatchupID: 1, Points: 100},
		}},
	}

	got := BracketFromPlayoffWeeks(weeks, 16)
	expected := []model.BracketPlacement{
		{Round: 2, Match: 1, Team1: 7, Team2: 8, Winner: 7, Loser: 8, Placement: 1},
		{Round: 2, Match: 2, Team1: 6, Team2: 5, Winner: 6, Loser: 5, Placement: 3},
	}
	if !reflect.DeepEqual(expected, got) {
		t.Errorf("expected %+v, got %+v", expected, got)
	}
}

func TestBracketFromPlayoffWeeksDegenerateInput(t *testing.T) {
	tests := map[string]struct {
		weeks []model.PlayoffWeek
	}{
		"no weeks":      {weeks: nil},
		"no final week": {weeks: []model.PlayoffWeek{{Week: 15, Matchups: []model.MatchupEntry{{RosterID: 1, MatchupID: 1, Points: 1}}}}},
		"empty final":   {weeks: []model.PlayoffWeek{{Week: 16, Matchups: []model.MatchupEntry{}}}},
		"unpaired final entry": {weeks: []model.PlayoffWeek{
			{Week: 16, Matchups: []model.MatchupEntry{{RosterID: 1, MatchupID: 1, Points: 50}}},
		}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := BracketFromPlayoffWeeks(tc.weeks, 16); len(got) != 0 {
				t.Errorf("expected no placements, got %+v", got)
			}
		})
	}
}
