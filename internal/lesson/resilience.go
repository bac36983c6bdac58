package lesson

import (
	"context"
	"errors"

	"apiexplorer/internal/coinpaprika"
	"apiexplorer/internal/fetcher"
	"apiexplorer/internal/report"
)

var requiredUserFields = []string{"name", "email", "phone"}

// Resilience demonstrates the retrying fetcher against good and bad targets,
// validates the shape of a response and looks up a coin defensively.
func Resilience(ctx context.Context, env *Env) error {
	demoFailures(ctx, env)
	env.Out.Blank()
	env.Out.Rule("=", 40)
	env.Out.Blank()

	validateUser(ctx, env)
	env.Out.Blank()
	env.Out.Rule("=", 40)
	env.Out.Blank()

	return safeCrypto(ctx, env)
}

func demoFailures(ctx context.Context, env *Env) {
	out := env.Out
	out.Heading("Error Handling Demo")

	out.Section("Test 1: Valid URL")
	res := env.Fetcher.Get(ctx, env.Placeholder.URL("/posts/1"), nil)
	if res.IsOk() {
		out.Linef("Success! Got post: %s...", report.Truncate(res.Get("title").String(), 30))
	} else {
		out.Linef("Failed: %s", res.Message())
	}

	out.Blank()
	out.Section("Test 2: Non-existent Resource (404)")
	res = env.Fetcher.Get(ctx, env.Placeholder.URL("/posts/99999"), nil)
	if res.IsOk() {
		out.Linef("Success! Data: %s", res.Payload())
	} else {
		out.Linef("Failed: %s", res.Message())
	}

	out.Blank()
	out.Section("Test 3: Invalid Domain")
	res = env.Fetcher.Get(ctx, env.Demo.UnreachableURL, nil)
	printOutcome(env, res)

	out.Blank()
	out.Section("Test 4: Timeout Simulation")
	res = env.Fetcher.Fetch(ctx, fetcher.Request{
		URL:     env.Demo.SlowURL,
		Timeout: env.Demo.SlowTimeout,
	})
	printOutcome(env, res)
}

func printOutcome(env *Env, res fetcher.Result) {
	if res.IsOk() {
		env.Out.Linef("Success!")
		return
	}
	env.Out.Linef("Failed: %s", res.Message())
}

func validateUser(ctx context.Context, env *Env) {
	out := env.Out
	out.Heading("JSON Validation Demo")

	res := env.Fetcher.Get(ctx, env.Placeholder.URL("/users/1"), nil)
	if !res.IsOk() {
		out.Linef("Error fetching data: %s", res.Message())
		return
	}

	if missing := res.Missing(requiredUserFields...); len(missing) > 0 {
		out.Linef("Warning: Missing fields: %v", missing)
		return
	}
	out.Linef("All required fields present!")
	out.Linef("Name: %s", res.Get("name").String())
	out.Linef("Email: %s", res.Get("email").String())
	out.Linef("Phone: %s", res.Get("phone").String())
}

func safeCrypto(ctx context.Context, env *Env) error {
	out := env.Out
	out.Heading("Safe Crypto Price Checker")

	coin, err := env.In.Ask("Enter coin (btc-bitcoin, eth-ethereum): ")
	if err != nil {
		return err
	}

	ticker, err := env.Crypto.Ticker(ctx, coin)
	switch {
	case errors.Is(err, coinpaprika.ErrEmptyCoin):
		out.Linef("Error: Please enter a coin name.")
	case errors.Is(err, fetcher.ErrUnexpectedShape):
		out.Linef("Error: Unexpected response structure. Missing 'quotes' or 'USD' key.")
	case err != nil:
		out.Linef("\nError: %v", unwrapFetch(err))
		out.Linef("Tip: Try 'btc-bitcoin' or 'eth-ethereum'")
	default:
		out.TickerBrief(ticker)
	}
	return nil
}

// unwrapFetch returns the fetch failure inside err, or err itself
func unwrapFetch(err error) error {
	var ferr *fetcher.FetchError
	if errors.As(err, &ferr) {
		return ferr
	}
	return err
}
