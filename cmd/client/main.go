// Package main is the interactive HomeSeek client. It wires the typed
// API clients, the reactive stores, and the local Badger cache together
// and exposes them through a small shell.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/zhaohz/homeseek/internal/api"
	"github.com/zhaohz/homeseek/internal/config"
	"github.com/zhaohz/homeseek/internal/kvstore"
	"github.com/zhaohz/homeseek/internal/logger"
	"github.com/zhaohz/homeseek/internal/models"
	"github.com/zhaohz/homeseek/internal/store"
)

var (
	version   string
	buildDate string
)

// app bundles the stores the shell commands operate on.
type app struct {
	auth   *store.AuthStore
	search *store.SearchStore
	user   *store.UserStore
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func (a *app) printCards(cards []models.PropertyCard) {
	if len(cards) == 0 {
		fmt.Println("No listings")
		return
	}
	for _, c := range cards {
		fmt.Printf("#%d  %s  %.0fw  %s\n", c.PropertyID, c.Title, c.TotalPrice, c.Summary)
	}
}

func (a *app) printResults() {
	results := a.search.Results()
	fmt.Printf("%d listings (%d shown)\n", a.search.Count(), len(results))
	for _, p := range results {
		fmt.Printf("#%d  %s  %s %s  %.0fw  %dbr %.1f㎡\n",
			p.PropertyID, p.Title,
			p.LocationInfo.City, p.LocationInfo.District,
			p.PriceInfo.TotalPrice, p.LayoutInfo.BedroomCount, p.LayoutInfo.Area)
	}
}

// repl runs the interactive shell loop.
func (a *app) repl(ctx context.Context, clients *api.Clients) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("homeseek> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println(`Available commands:
  login <user> <password>        register <user> <password> <phone>
  logout                         whoami
  overview                       like
  search [keyword]               history | history rm <id> | history clear
  me                             favs
  browsed                        fav <propertyId> | unfav <propertyId>
  prefs <city> [district...]     predict <city> <distanceKm> <buildingAge>
  exit`)
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <user> <password>")
				continue
			}
			if _, err := a.auth.Login(ctx, args[1], args[2]); err != nil {
				fmt.Println("Login failed:", err)
				continue
			}
			fmt.Printf("Logged in as %s (user %d)\n", a.auth.Username(), a.auth.UserID())
			a.user.LoadAllUserData(ctx)
		case "register":
			if len(args) < 4 {
				fmt.Println("Usage: register <user> <password> <phone>")
				continue
			}
			if _, err := a.auth.Register(ctx, args[1], args[2], args[3], nil); err != nil {
				fmt.Println("Registration failed:", err)
				continue
			}
			fmt.Printf("Registered and logged in as %s\n", a.auth.Username())
		case "logout":
			a.auth.Logout(ctx)
			fmt.Println("Logged out")
		case "whoami":
			if !a.auth.IsLoggedIn() {
				fmt.Println("Not logged in")
				continue
			}
			fmt.Printf("%s (user %d)\n", a.auth.Username(), a.auth.UserID())
		case "overview":
			ov, err := clients.Auth.HomeOverview(ctx)
			if err != nil {
				fmt.Println("Request failed:", err)
				continue
			}
			printJSON(ov)
		case "like":
			a.search.LoadGuessYouLike(ctx)
			a.printCards(a.search.GuessYouLike())
		case "search":
			a.search.SetQuery(strings.Join(args[1:], " "))
			a.search.PerformSearch(ctx, models.QueryParams{})
			a.printResults()
		case "history":
			if len(args) >= 2 && args[1] == "clear" {
				a.search.ClearSearchHistory()
				fmt.Println("Search history cleared")
				continue
			}
			if len(args) >= 3 && args[1] == "rm" {
				id, err := strconv.ParseInt(args[2], 10, 64)
				if err != nil {
					fmt.Println("Usage: history rm <id>")
					continue
				}
				a.search.DeleteSearchHistory(id)
				continue
			}
			entries := a.search.History()
			if len(entries) == 0 {
				fmt.Println("No search history")
				continue
			}
			for _, e := range entries {
				fmt.Printf("%d  %s  %s\n", e.ID, e.Time, e.Keyword)
			}
		case "me":
			a.user.LoadUserInfo(ctx)
			printJSON(a.user.Profile())
		case "favs":
			a.user.LoadFavorites(ctx)
			items, count := a.user.Favorites()
			fmt.Printf("%d favorites\n", count)
			for _, f := range items {
				fmt.Printf("#%d  %s  %.0fw\n", f.PropertyID, f.Title, f.PriceInfo.TotalPrice)
			}
		case "browsed":
			a.user.LoadHistory(ctx)
			items, count := a.user.History()
			fmt.Printf("%d browsed\n", count)
			for _, b := range items {
				fmt.Printf("#%d  %s  %s\n", b.PropertyID, b.Title, b.CreatedAt)
			}
		case "fav", "unfav":
			if len(args) < 2 {
				fmt.Printf("Usage: %s <propertyId>\n", args[0])
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				fmt.Println("propertyId must be a number")
				continue
			}
			if args[0] == "fav" {
				_, err = a.user.AddFavorite(ctx, id)
			} else {
				_, err = a.user.RemoveFavorite(ctx, id)
			}
			if err != nil {
				fmt.Println("Request failed:", err)
				continue
			}
			fmt.Println("Done")
		case "prefs":
			if len(args) < 2 || !a.auth.IsLoggedIn() {
				fmt.Println("Usage: prefs <city> [district...] (requires login)")
				continue
			}
			resp, err := a.user.SavePreferences(ctx, models.PreferenceData{
				City:      args[1],
				Districts: args[2:],
			})
			if err != nil {
				fmt.Println("Request failed:", err)
				continue
			}
			fmt.Println(resp.Message)
		case "predict":
			if len(args) < 4 {
				fmt.Println("Usage: predict <city> <distanceKm> <buildingAge>")
				continue
			}
			dist, err1 := strconv.ParseFloat(args[2], 64)
			age, err2 := strconv.Atoi(args[3])
			if err1 != nil || err2 != nil {
				fmt.Println("distanceKm and buildingAge must be numbers")
				continue
			}
			resp, err := a.user.PredictPrice(ctx, models.PricePredictionRequest{
				City:     args[1],
				Features: models.PricePredictionFeatures{CenterDistanceKm: &dist, BuildingAge: &age},
			})
			if err != nil {
				fmt.Println("Request failed:", err)
				continue
			}
			fmt.Printf("%s: %.1f %s\n", resp.City, resp.PredictedPricePerSquareMeter, resp.Unit)
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func main() {
	options := config.Parse()

	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("HomeSeek Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Warn"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	kv, err := kvstore.OpenBadger(options.DataDir)
	if err != nil {
		zapLogger.Fatal("failed to open local cache", zap.Error(err))
	}
	defer func() { _ = kv.Close() }()

	client := api.NewClient(options.BaseURL,
		api.WithLogger(zapLogger),
		api.WithBreaker(),
	)
	clients := api.NewClients(client)

	a := &app{
		auth:   store.NewAuthStore(clients, kv, zapLogger),
		search: store.NewSearchStore(clients, kv, zapLogger, store.SearchConfig{Fallback: store.FallbackPlaceholder}),
		user: store.NewUserStore(clients, kv, zapLogger, store.UserConfig{
			Fallback: store.FallbackEmpty,
			Defaults: store.DefaultProfileDefaults(),
		}),
	}

	ctx := context.Background()
	a.auth.Initialize()
	a.search.Initialize(ctx)
	if a.auth.IsLoggedIn() {
		fmt.Printf("Welcome back, %s\n", a.auth.Username())
		a.user.LoadAllUserData(ctx)
	}

	a.repl(ctx, clients)
}
