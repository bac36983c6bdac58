package lesson

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"apiexplorer/internal/console"
	"apiexplorer/internal/jsonplaceholder"
)

const exploreCoinCount = 3

// Explore runs the dynamic query menu: user lookups, post and todo searches,
// crypto prices by raw identifier and city weather.
func Explore(ctx context.Context, env *Env) error {
	env.Out.Banner("Dynamic API Query Demo", 40)

	menu := &console.Menu{
		Header:  "Choose an option:",
		Prompt:  "\nEnter choice (1-6): ",
		Invalid: "Invalid choice. Please try again.",
		Goodbye: "\nGoodbye!",
		Commands: []console.Command{
			{Key: "1", Label: "Look up user info", Run: func(ctx context.Context) error { return lookupUser(ctx, env) }},
			{Key: "2", Label: "Search posts by user", Run: func(ctx context.Context) error { return searchPosts(ctx, env) }},
			{Key: "3", Label: "Check crypto price", Run: func(ctx context.Context) error { return cryptoByID(ctx, env) }},
			{Key: "4", Label: "Check weather", Run: func(ctx context.Context) error { return briefWeather(ctx, env) }},
			{Key: "5", Label: "Search todos by completion", Run: func(ctx context.Context) error { return searchTodos(ctx, env) }},
			{Key: "6", Label: "Exit", Exit: true},
		},
	}
	return menu.Run(ctx, env.In)
}

// askUserID prompts for a user ID; ok is false when the answer was rejected
func askUserID(env *Env, prompt string) (id int, ok bool, err error) {
	answer, err := env.In.Ask(prompt)
	if err != nil {
		return 0, false, err
	}
	id, verr := jsonplaceholder.ValidateUserID(answer)
	if verr != nil {
		env.Out.Linef("Invalid input! %s.", titleCase(verr.Error()))
		return 0, false, nil
	}
	return id, true, nil
}

func lookupUser(ctx context.Context, env *Env) error {
	env.Out.Heading("User Information Lookup")

	id, ok, err := askUserID(env, "Enter user ID (1-10): ")
	if err != nil || !ok {
		return err
	}

	user, err := env.Placeholder.User(ctx, id)
	switch {
	case errors.Is(err, jsonplaceholder.ErrNotFound):
		env.Out.Linef("\nUser with ID %d not found!", id)
	case err != nil:
		env.fail("Error", err)
	default:
		env.Out.UserCard(user)
	}
	return nil
}

func searchPosts(ctx context.Context, env *Env) error {
	env.Out.Blank()
	env.Out.Heading("Post Search")

	id, ok, err := askUserID(env, "Enter user ID to see their posts (1-10): ")
	if err != nil || !ok {
		return err
	}

	posts, err := env.Placeholder.PostsByUser(ctx, id)
	if err != nil {
		env.fail("Error", err)
		return nil
	}
	if len(posts) == 0 {
		env.Out.Linef("No posts found for this user.")
		return nil
	}

	env.Out.Blank()
	env.Out.Section(fmt.Sprintf("Posts by User #%d", id))
	env.Out.PostTitles(posts, 0)
	return nil
}

func cryptoByID(ctx context.Context, env *Env) error {
	env.Out.Blank()
	env.Out.Heading("Cryptocurrency Price Checker")

	ids := sampleCoinIDs(env)
	env.Out.Linef("Available coins: %s", ids)
	answer, err := env.In.Ask("Enter coin ID (e.g., btc-bitcoin): ")
	if err != nil {
		return err
	}

	ticker, err := env.Crypto.Ticker(ctx, answer)
	if err != nil {
		env.Logger.Debug().Err(err).Str("coin", answer).Msg("ticker lookup failed")
		env.Out.Linef("\nCoin '%s' not found!", strings.ToLower(answer))
		env.Out.Linef("Try: %s", ids)
		return nil
	}
	env.Out.TickerBrief(ticker)
	return nil
}

func briefWeather(ctx context.Context, env *Env) error {
	env.Out.Blank()
	env.Out.Heading("Weather Checker")

	city, err := env.In.Ask("Enter city name (e.g., delhi, mumbai): ")
	if err != nil {
		return err
	}

	at, err := env.Cities.Lookup(city)
	if err != nil {
		env.Out.Linef("City not found in database!")
		env.Out.Linef("Available cities: %s", strings.Join(env.Cities.Names(), ", "))
		return nil
	}

	forecast, err := env.Weather.Current(ctx, at)
	if err != nil {
		env.fail("Failed to fetch weather data", err)
		return nil
	}
	env.Out.WeatherBrief(city, forecast)
	return nil
}

func searchTodos(ctx context.Context, env *Env) error {
	env.Out.Blank()
	env.Out.Heading("Todos Filter")

	answer, err := env.In.Ask("Show completed todos? (yes/no): ")
	if err != nil {
		return err
	}

	var completed bool
	switch strings.ToLower(answer) {
	case "yes":
		completed = true
	case "no":
	default:
		env.Out.Linef("Invalid input! Enter 'yes' or 'no'.")
		return nil
	}

	todos, err := env.Placeholder.Todos(ctx, completed)
	if err != nil {
		env.fail("Error", err)
		return nil
	}

	env.Out.Linef("\nTodos with completed=%t: %d found", completed, len(todos))
	env.Out.TodoTitles(todos[:min(5, len(todos))])
	return nil
}

// sampleCoinIDs returns the first provider identifiers of the coin table
func sampleCoinIDs(env *Env) string {
	names := env.Coins.Names()
	ids := make([]string, 0, exploreCoinCount)
	for _, name := range names[:min(exploreCoinCount, len(names))] {
		ids = append(ids, env.Coins.Resolve(name))
	}
	return strings.Join(ids, ", ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
