package lesson

import (
	"context"

	"apiexplorer/internal/report"
)

// StatusCodes compares successful and failed requests, reads fields out of parsed
// JSON and runs a few guarded lookups.
func StatusCodes(ctx context.Context, env *Env) error {
	out := env.Out
	out.Heading("Understanding Status Codes")

	out.Section("Example 1: Valid Request")
	if resp, err := env.Placeholder.Raw(ctx, "/posts/1", nil); err != nil {
		env.fail("Failed", err)
	} else {
		out.Linef("URL: %s", resp.URL)
		out.Linef("Status Code: %d", resp.StatusCode)
		out.Linef("Success? %t", resp.OK())
	}

	out.Blank()
	out.Section("Example 2: Invalid Request (404)")
	if resp, err := env.Placeholder.Raw(ctx, "/posts/99999", nil); err != nil {
		env.fail("Failed", err)
	} else {
		out.Linef("URL: %s", resp.URL)
		out.Linef("Status Code: %d", resp.StatusCode)
		out.Linef("Found? %t", resp.OK())
	}

	out.Blank()
	out.Section("Example 3: Parsing JSON")
	if user, err := env.Placeholder.User(ctx, 1); err != nil {
		env.fail("Failed to fetch user", err)
	} else {
		out.Linef("Full Name: %s", user.Name)
		out.Linef("Username: %s", user.Username)
		out.Linef("Email: %s", user.Email)
		out.Linef("City: %s", user.Address.City)
		out.Linef("Company: %s", user.Company.Name)
	}

	out.Blank()
	out.Section("Example 4: List of Items")
	if posts, err := env.Placeholder.PostsByUser(ctx, 1); err != nil {
		env.fail("Failed to fetch posts", err)
	} else {
		out.Linef("User 1 has %d posts:", len(posts))
		for i, post := range posts[:min(3, len(posts))] {
			out.Linef("  %d. %s...", i+1, report.Truncate(post.Title, 40))
		}
	}

	out.Blank()
	out.Section("Common HTTP Status Codes")
	out.StatusCodes()

	out.Blank()
	out.Section("Exercise 1: User 5 Phone")
	if user, err := env.Placeholder.User(ctx, 5); err != nil {
		out.Linef("User 5 not found!")
	} else {
		out.Linef("Name: %s", user.Name)
		out.Linef("Phone: %s", user.Phone)
	}

	out.Blank()
	out.Section("Exercise 2: Safe Fetch")
	if resp, err := env.Placeholder.Raw(ctx, "/posts/1000", nil); err != nil || !resp.OK() {
		out.Linef("Resource not found!")
	} else {
		out.Linef("Data:")
		out.JSON(resp.Body)
	}

	out.Blank()
	out.Section("Exercise 3: Comments Count on Post 1")
	if comments, err := env.Placeholder.Comments(ctx, 1); err != nil {
		out.Linef("Failed to fetch comments.")
	} else {
		out.Linef("Post 1 has %d comments.", len(comments))
	}
	return nil
}
