package controller

import (
	"slices"

	"github.com/benaicompanion/fantasy-101-dashboard/model"
)

// bracketFromRankings fabricates the winners bracket from the roster id <-> rank
// binding established during assembly: roster 1 is the champion, roster 2 the
// runner-up, rosters 3 and 4 the third-place game. It needs no playoff-week data and
// is immune to scoreboard fetch failures, so the pipeline always uses it.
func bracketFromRankings(owners map[int]string) []model.BracketPlacement {
	bracket := make([]model.BracketPlacement, 0, 2)

	_, ok1 := owners[1]
	_, ok2 := owners[2]
	if ok1 && ok2 {
		bracket = append(bracket, model.BracketPlacement{
			Round: 2, Match: 1,
			Team1: 1, Team2: 2,
			Winner: 1, Loser: 2,
			Placement: 1,
		})
	}

	_, ok3 := owners[3]
	_, ok4 := owners[4]
	if ok3 && ok4 {
		bracket = append(bracket, model.BracketPlacement{
			Round: 2, Match: 2,
			Team1: 3, Team2: 4,
			Winner: 3, Loser: 4,
			Placement: 3,
		})
	}

	return bracket
}

// BracketFromPlayoffWeeks reconstructs the championship and third-place placements
// from raw playoff-week matchups, for callers that do not have authoritative
// standings ranks. Semifinal results identify which final-week matchup is the
// championship (both participants won their semifinal) and which is the third-place
// game (both lost). Without semifinal data the final-week matchups are taken in
// matchup-id order: first championship, second third place. That fallback is a
// heuristic and can misclassify consolation games when more than two final-week
// matchups exist.
func BracketFromPlayoffWeeks(weeks []model.PlayoffWeek, endWeek int) []model.BracketPlacement {
	bracket := make([]model.BracketPlacement, 0, 2)
	if len(weeks) == 0 {
		return bracket
	}

	var finalWeek, semifinalWeek []model.MatchupEntry
	for _, w := range weeks {
		switch w.Week {
		case endWeek:
			finalWeek = w.Matchups
		case endWeek - 1:
			semifinalWeek = w.Matchups
		}
	}
	if len(finalWeek) == 0 {
		return bracket
	}

	semiWinners := make(map[int]bool)
	semiLosers := make(map[int]bool)
	for _, pair := range groupByMatchup(semifinalWeek) {
		if len(pair) != 2 {
			continue
		}
		w, l := winnerAndLoser(pair)
		semiWinners[w.RosterID] = true
		semiLosers[l.RosterID] = true
	}

	finals := groupByMatchup(finalWeek)

	var champ, third []model.MatchupEntry
	if len(semiWinners) > 0 {
		for _, pair := range finals {
			if len(pair) != 2 {
				continue
			}
			switch {
			case semiWinners[pair[0].RosterID] && semiWinners[pair[1].RosterID]:
				champ = pair
			case semiLosers[pair[0].RosterID] && semiLosers[pair[1].RosterID]:
				third = pair
			}
		}
	} else {
		// No semifinal data, fall back to matchup id ordering.
		ids := make([]int, 0, len(finals))
		for id := range finals {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		if len(ids) > 0 {
			champ = finals[ids[0]]
		}
		if len(ids) > 1 {
			third = finals[ids[1]]
		}
	}

	if len(champ) == 2 {
		w, l := winnerAndLoser(champ)
		bracket = append(bracket, model.BracketPlacement{
			Round: 2, Match: 1,
			Team1: w.RosterID, Team2: l.RosterID,
			Winner: w.RosterID, Loser: l.RosterID,
			Placement: 1,
		})
	}
	if len(third) == 2 {
		w, l := winnerAndLoser(third)
		bracket = append(bracket, model.BracketPlacement{
			Round: 2, Match: 2,
			Team1: w.RosterID, Team2: l.RosterID,
			Winner: w.RosterID, Loser: l.RosterID,
			Placement: 3,
		})
	}

	return bracket
}

func groupByMatchup(entries []model.MatchupEntry) map[int][]model.MatchupEntry {
	grouped := make(map[int][]model.MatchupEntry)
	for _, e := range entries {
		grouped[e.MatchupID] = append(grouped[e.MatchupID], e)
	}
	return grouped
}

func winnerAndLoser(pair []model.MatchupEntry) (model.MatchupEntry, model.MatchupEntry) {
	if pair[1].Points > pair[0].Points {
		return pair[1], pair[0]
	}
	return pair[0], pair[1]
}
