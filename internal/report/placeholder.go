package report

import (
	"net/http"

	"apiexplorer/internal/jsonplaceholder"
)

// statusCodes is the reference table of common HTTP status codes
var statusCodes = []int{
	http.StatusOK,
	http.StatusCreated,
	http.StatusBadRequest,
	http.StatusUnauthorized,
	http.StatusForbidden,
	http.StatusNotFound,
	http.StatusInternalServerError,
}

var statusMeanings = map[int]string{
	http.StatusOK:                  "Request successful",
	http.StatusCreated:             "Resource created",
	http.StatusBadRequest:          "Invalid syntax",
	http.StatusUnauthorized:        "Authentication required",
	http.StatusForbidden:           "Access denied",
	http.StatusNotFound:            "Resource doesn't exist",
	http.StatusInternalServerError: "Server problem",
}

// StatusCodes writes the reference table of common HTTP status codes
func (p *Printer) StatusCodes() {
	for _, code := range statusCodes {
		p.Linef("  %d: %s - %s", code, http.StatusText(code), statusMeanings[code])
	}
}

// Response writes the URL, status and indented body of a raw response
func (p *Printer) Response(resp *jsonplaceholder.RawResponse) {
	p.Linef("URL: %s", resp.URL)
	p.Linef("Status Code: %d", resp.StatusCode)
	p.Linef("Response Data:")
	p.JSON(resp.Body)
}

// UserCard writes the contact details of a user
func (p *Printer) UserCard(u *jsonplaceholder.User) {
	p.Blank()
	p.Linef("--- User #%d Info ---", u.ID)
	p.Linef("Name: %s", u.Name)
	p.Linef("Email: %s", u.Email)
	p.Linef("Phone: %s", u.Phone)
	p.Linef("Website: %s", u.Website)
}

// PostTitles writes a numbered list of post titles, each cut to width runes when width > 0
func (p *Printer) PostTitles(posts []jsonplaceholder.Post, width int) {
	for i, post := range posts {
		title := post.Title
		if width > 0 && len([]rune(title)) > width {
			title = Truncate(title, width) + "..."
		}
		p.Linef("%d. %s", i+1, title)
	}
}

// TodoTitles writes a numbered list of todo titles
func (p *Printer) TodoTitles(todos []jsonplaceholder.Todo) {
	for i, todo := range todos {
		p.Linef("%d. %s", i+1, todo.Title)
	}
}
