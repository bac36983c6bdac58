package lesson

import (
	"context"
	"strings"

	"apiexplorer/internal/console"
	"apiexplorer/internal/jsonplaceholder"
	"apiexplorer/internal/store"
)

const (
	topCoins        = 5
	quickCity       = "delhi"
	quickCoin       = "bitcoin"
	timestampLayout = "2006-01-02 15:04:05"
)

var samplePost = jsonplaceholder.NewPost{
	Title:  "My Post",
	Body:   "This is content",
	UserID: 1,
}

// Dashboard runs the weather and crypto dashboard menu
func Dashboard(ctx context.Context, env *Env) error {
	out := env.Out
	out.Blank()
	out.Rule("=", 60)
	out.Linef("  Enhanced Weather & Crypto Dashboard")
	out.Linef("  %s", env.now().Format(timestampLayout))
	out.Rule("=", 60)

	menu := &console.Menu{
		Header:  "Options:",
		Indent:  "  ",
		Prompt:  "\nSelect (1-7): ",
		Invalid: "Invalid option. Try again.",
		Goodbye: "\nGoodbye! Happy coding!",
		Commands: []console.Command{
			{Key: "1", Label: "Check Weather", Run: func(ctx context.Context) error {
				out.Linef("\nAvailable cities: %s", strings.Join(env.Cities.Names(), ", "))
				city, err := env.In.Ask("Enter city name: ")
				if err != nil {
					return err
				}
				showWeather(ctx, env, city)
				return nil
			}},
			{Key: "2", Label: "Check Crypto Price", Run: func(ctx context.Context) error {
				out.Linef("\nAvailable coins: %s", strings.Join(env.Coins.Names(), ", "))
				coin, err := env.In.Ask("Enter crypto name: ")
				if err != nil {
					return err
				}
				showCrypto(ctx, env, coin)
				return nil
			}},
			{Key: "3", Label: "Compare Multiple Cryptos", Run: func(ctx context.Context) error {
				answer, err := env.In.Ask("Enter crypto names (comma-separated): ")
				if err != nil {
					return err
				}
				compareCrypto(ctx, env, strings.Split(answer, ","))
				return nil
			}},
			{Key: "4", Label: "View Top 5 Cryptos", Run: func(ctx context.Context) error {
				showTop(ctx, env)
				return nil
			}},
			{Key: "5", Label: "Quick Dashboard (Delhi + Bitcoin)", Run: func(ctx context.Context) error {
				showWeather(ctx, env, quickCity)
				showCrypto(ctx, env, quickCoin)
				return nil
			}},
			{Key: "6", Label: "Create Sample POST Request", Run: func(ctx context.Context) error {
				createPost(ctx, env)
				return nil
			}},
			{Key: "7", Label: "Exit", Exit: true},
		},
	}
	return menu.Run(ctx, env.In)
}

func showWeather(ctx context.Context, env *Env, city string) {
	at, err := env.Cities.Lookup(city)
	if err != nil {
		env.Out.Linef("\nCity '%s' not found. Available cities: %s",
			strings.TrimSpace(city), strings.Join(env.Cities.Names(), ", "))
		return
	}

	forecast, err := env.Weather.Current(ctx, at)
	if err != nil {
		env.fail("Error fetching weather", err)
		return
	}
	env.Out.Weather(strings.ToLower(strings.TrimSpace(city)), forecast)
}

func showCrypto(ctx context.Context, env *Env, coin string) {
	ticker, err := env.Crypto.Ticker(ctx, env.Coins.Resolve(coin))
	if err != nil {
		env.fail("Error fetching crypto data", err)
		env.Out.Linef("\nCoin '%s' not found. Available: %s",
			strings.TrimSpace(coin), strings.Join(env.Coins.Names(), ", "))
		return
	}
	env.Out.Ticker(ticker)
}

// compareCrypto prints the table header first and each coin as it arrives;
// coins that fail are reported in place of their row
func compareCrypto(ctx context.Context, env *Env, coins []string) {
	env.Out.ComparisonHeader()
	for _, coin := range coins {
		coin = strings.TrimSpace(coin)
		if coin == "" {
			continue
		}
		ticker, err := env.Crypto.Ticker(ctx, env.Coins.Resolve(coin))
		if err != nil {
			env.fail("Error fetching crypto data", err)
			continue
		}
		env.Out.ComparisonRow(ticker)
	}
	env.Out.ComparisonFooter()
}

func showTop(ctx context.Context, env *Env) {
	tickers, err := env.Crypto.Top(ctx, topCoins)
	if err != nil {
		env.fail("Error", err)
		return
	}
	env.Out.Top(tickers)
}

func createPost(ctx context.Context, env *Env) {
	created, err := env.Placeholder.CreatePost(ctx, samplePost)
	if err != nil {
		env.fail("Error creating post", err)
		return
	}

	env.Out.Linef("\nPOST Request successful! Response:")
	env.Out.JSON(created)

	if err := store.SaveJSON(env.OutputFile, created); err != nil {
		env.fail("Error saving results", err)
		return
	}
	env.Logger.Info().Str("file", env.OutputFile).Msg("saved post response")
	env.Out.Linef("Results saved to %s", env.OutputFile)
}
