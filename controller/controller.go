package controller

import (
	"context"

	"github.com/benaicompanion/fantasy-101-dashboard/model"
	"github.com/benaicompanion/fantasy-101-dashboard/platforms/yahoo"
	"github.com/benaicompanion/fantasy-101-dashboard/tokenstore"
	"github.com/itbasis/go-clock"
	"golang.org/x/oauth2"
)

// C encapsulates the extraction logic without worrying about the web or output layers.
type C interface {
	// DiscoverLeagues walks the configured season -> game id table and returns every
	// league the authorized user participated in.
	DiscoverLeagues(ctx context.Context) ([]model.League, error)
	// FilterLeagues keeps the leagues whose names match the configured filters,
	// sorted by season ascending.
	FilterLeagues(leagues []model.League) []model.League
	// ExtractSeason reconstructs one league-season. An unparseable season returns an
	// error and no record; the caller continues with the remaining seasons.
	ExtractSeason(ctx context.Context, league model.League) (*model.SeasonRecord, error)
	// ExtractAllSeasons runs discovery, filtering and per-season extraction,
	// returning the records sorted by season ascending.
	ExtractAllSeasons(ctx context.Context) ([]model.SeasonRecord, error)

	OAuthStart() (url string, err error)
	OAuthExchange(ctx context.Context, state, code string) error
	HasToken() bool
}

type controller struct {
	clock       clock.Clock
	yahoo       *yahoo.Client
	yahooConfig *oauth2.Config
	tokens      tokenstore.Store
	cfg         Config
	oauthStates map[string]*oauthState
}

func New(clock clock.Clock, yahooClient *yahoo.Client, yahooConfig *oauth2.Config, tokens tokenstore.Store, cfg Config) (C, error) {
	c := &controller{
		clock:       clock,
		yahoo:       yahooClient,
		yahooConfig: yahooConfig,
		tokens:      tokens,
		cfg:         cfg,
		oauthStates: make(map[string]*oauthState),
	}
	return c, nil
}
