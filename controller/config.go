package controller

import "time"

// Config carries the per-run extraction settings. Everything the extractor needs is
// passed in here; there is no module-level state.
type Config struct {
	// GameIDs maps a season year to Yahoo's NFL game id for that year.
	GameIDs map[int]int
	// NameFilters are case-insensitive substrings used to select in-scope leagues.
	NameFilters []string
	// FirstSeason and LastSeason bound the discovery walk, inclusive.
	FirstSeason int
	LastSeason  int
	// Minimal delays between API calls to respect the remote service.
	DiscoveryDelay  time.Duration
	ScoreboardDelay time.Duration
}

// DefaultConfig covers the 2001-2019 Yahoo era of the leagues the dashboard tracks.
// Later seasons live on Sleeper and are exported separately.
func DefaultConfig() Config {
	return Config{
		GameIDs: map[int]int{
			2001: 57, 2002: 49, 2003: 79, 2004: 101, 2005: 124,
			2006: 153, 2007: 175, 2008: 199, 2009: 222, 2010: 242,
			2011: 257, 2012: 273, 2013: 314, 2014: 331, 2015: 348,
			2016: 359, 2017: 371, 2018: 380, 2019: 390, 2020: 399,
			2021: 406, 2022: 414, 2023: 423, 2024: 449, 2025: 461,
		},
		NameFilters:     []string{"football101", "football 1"},
		FirstSeason:     2001,
		LastSeason:      2019,
		DiscoveryDelay:  300 * time.Millisecond,
		ScoreboardDelay: 200 * time.Millisecond,
	}
}
