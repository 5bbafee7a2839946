package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/benaicompanion/fantasy-101-dashboard/controller"
	"github.com/benaicompanion/fantasy-101-dashboard/model"
	"github.com/benaicompanion/fantasy-101-dashboard/platforms/yahoo"
	"github.com/benaicompanion/fantasy-101-dashboard/tokenstore"
	"github.com/benaicompanion/fantasy-101-dashboard/web"
	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	yahooClientID := os.Getenv("YAHOO_CLIENT_ID")
	yahooClientSecret := os.Getenv("YAHOO_CLIENT_SECRET")
	if yahooClientID == "" || yahooClientSecret == "" {
		log.Fatalf("YAHOO_CLIENT_ID and YAHOO_CLIENT_SECRET must be set")
	}

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	tokenPath := envOrDefault("YAHOO_TOKEN_PATH", ".yahoo_token.json")
	outputPath := envOrDefault("OUTPUT_PATH", filepath.Join("src", "data", "yahoo_historical.json"))

	redirectURL := os.Getenv("OAUTH_REDIRECT_URL")
	if redirectURL == "" {
		redirectURL = "http://localhost:" + strconv.Itoa(portNum) + "/auth/callback"
	}

	yahooConfig := &oauth2.Config{
		ClientID:     yahooClientID,
		ClientSecret: yahooClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://api.login.yahoo.com/oauth2/request_auth",
			TokenURL: "https://api.login.yahoo.com/oauth2/get_token",
		},
		RedirectURL: redirectURL,
	}

	yahooClient, err := yahoo.New()
	if err != nil {
		log.Fatalf("error creating yahoo client: %v", err)
	}

	ctrl, err := controller.New(clock.New(), yahooClient, yahooConfig, tokenstore.New(tokenPath), controller.DefaultConfig())
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !ctrl.HasToken() {
		if err := runAuthFlow(ctx, ctrl, portNum); err != nil {
			log.Fatalf("authorization failed: %v", err)
		}
	}

	records, err := ctrl.ExtractAllSeasons(ctx)
	if err != nil {
		log.Fatalf("error extracting seasons: %v", err)
	}
	if len(records) == 0 {
		log.Fatalf("no season data could be extracted")
	}

	if err := writeOutput(outputPath, records); err != nil {
		log.Fatalf("error writing output: %v", err)
	}

	log.Printf("extracted %d seasons to %s", len(records), outputPath)
	printSummary(records)
}

// runAuthFlow serves the local callback endpoint until the browser flow completes.
func runAuthFlow(ctx context.Context, ctrl controller.C, port int) error {
	server, err := web.NewServer(port, ctrl)
	if err != nil {
		return err
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	log.Printf("no saved yahoo token; open http://localhost:%d/ to authorize", port)

	select {
	case <-server.AuthDone():
	case <-ctx.Done():
	}
	close(shutdown)
	wg.Wait()

	return ctx.Err()
}

func writeOutput(path string, records []model.SeasonRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func printSummary(records []model.SeasonRecord) {
	log.Printf("seasons extracted:")
	for _, r := range records {
		log.Printf("  %s (%s) - %d teams, %d weeks",
			r.League.Name, r.League.Season, len(r.Rosters), len(r.Matchups))
	}

	// The manager table feeds the manual Yahoo -> Sleeper identity mapping.
	managers := make(map[string]string)
	for _, r := range records {
		for _, u := range r.Users {
			if _, ok := managers[u.UserID]; !ok {
				managers[u.UserID] = u.DisplayName
			}
		}
	}

	ids := make([]string, 0, len(managers))
	for id := range managers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return managers[ids[i]] < managers[ids[j]] })

	log.Printf("unique managers found (%d):", len(managers))
	for _, id := range ids {
		log.Printf("  %s (ID: %s)", managers[id], id)
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
