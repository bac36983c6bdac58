package lesson

import (
	"context"

	"github.com/tidwall/gjson"
)

const separatorWidth = 50

// Basics issues plain GET requests and shows status and body of each response
func Basics(ctx context.Context, env *Env) error {
	showRaw(ctx, env, "Basic API Request", "/posts/1")
	showRaw(ctx, env, "Exercise 1: Post #5", "/posts/5")

	env.Out.Heading("Exercise 2: All Users")
	resp, err := env.Placeholder.Raw(ctx, "/users", nil)
	if err != nil {
		env.fail("Failed", err)
	} else {
		env.Out.Linef("URL: %s", resp.URL)
		env.Out.Linef("Status Code: %d", resp.StatusCode)
		users := gjson.ParseBytes(resp.Body)
		if users.IsArray() {
			env.Out.Linef("Number of users fetched: %d", users.Get("#").Int())
			env.Out.Linef("First User:")
			env.Out.JSON([]byte(users.Get("0").Raw))
		} else {
			env.Out.Linef("Response Data:")
			env.Out.JSON(resp.Body)
		}
	}
	separator(env)

	env.Out.Heading("Exercise 3: Nonexistent Post")
	resp, err = env.Placeholder.Raw(ctx, "/posts/999", nil)
	if err != nil {
		env.fail("Failed", err)
		return nil
	}
	// the service answers {} for posts it does not have
	env.Out.Response(resp)
	return nil
}

func showRaw(ctx context.Context, env *Env, title, path string) {
	env.Out.Heading(title)
	resp, err := env.Placeholder.Raw(ctx, path, nil)
	if err != nil {
		env.fail("Failed", err)
	} else {
		env.Out.Response(resp)
	}
	separator(env)
}

func separator(env *Env) {
	env.Out.Blank()
	env.Out.Rule("=", separatorWidth)
	env.Out.Blank()
}
