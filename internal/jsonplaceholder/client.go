package jsonplaceholder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"resty.dev/v3"

	"apiexplorer/internal/fetcher"
)

const (
	minUserID = 1
	maxUserID = 10
)

var (
	// ErrNotFound is returned when the service answers with an empty object
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidUserID is returned by ValidateUserID
	ErrInvalidUserID = fmt.Errorf("user ID must be a number between %d and %d", minUserID, maxUserID)
)

// Address is the postal address of a user
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
}

// Company is the employer of a user
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
}

// User represents a JSONPlaceholder user
type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Address  Address `json:"address"`
	Company  Company `json:"company"`
}

// Post represents a blog post
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Comment represents a comment on a post
type Comment struct {
	ID     int    `json:"id"`
	PostID int    `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// Todo represents a todo item
type Todo struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// NewPost is the body of a create-post request
type NewPost struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// RawResponse is a single unretried response, exposed as-is
type RawResponse struct {
	URL        string
	StatusCode int
	Body       []byte
}

// OK reports whether the status is 200
func (r *RawResponse) OK() bool {
	return r.StatusCode == 200
}

// Client talks to the JSONPlaceholder fake REST service
type Client struct {
	fetcher *fetcher.Fetcher
	http    *resty.Client
	baseURL string
}

// NewClient creates a new JSONPlaceholder client sharing the fetcher's HTTP client
func NewClient(f *fetcher.Fetcher, baseURL string) *Client {
	return &Client{
		fetcher: f,
		http:    f.Client(),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// URL returns the absolute URL of a resource path such as "/posts/1"
func (c *Client) URL(path string) string {
	return c.baseURL + path
}

// Raw performs exactly one GET and returns whatever the server answered.
// Unlike the typed methods it does not retry and treats any status as a response.
// The fetcher's timeout bounds the request.
func (c *Client) Raw(ctx context.Context, path string, query map[string]string) (*RawResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetcher.Timeout())
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(c.URL(path))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, fetcher.Classify(resp, err))
	}

	return &RawResponse{
		URL:        c.URL(path),
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
	}, nil
}

// Post retrieves a single post
func (c *Client) Post(ctx context.Context, id int) (*Post, error) {
	var post Post
	if err := c.getOne(ctx, fmt.Sprintf("/posts/%d", id), &post); err != nil {
		return nil, fmt.Errorf("post %d: %w", id, err)
	}
	return &post, nil
}

// User retrieves a single user
func (c *Client) User(ctx context.Context, id int) (*User, error) {
	var user User
	if err := c.getOne(ctx, fmt.Sprintf("/users/%d", id), &user); err != nil {
		return nil, fmt.Errorf("user %d: %w", id, err)
	}
	return &user, nil
}

// Users retrieves every user
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getList(ctx, "/users", nil, &users); err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	return users, nil
}

// PostsByUser retrieves the posts written by a user
func (c *Client) PostsByUser(ctx context.Context, userID int) ([]Post, error) {
	var posts []Post
	query := map[string]string{"userId": strconv.Itoa(userID)}
	if err := c.getList(ctx, "/posts", query, &posts); err != nil {
		return nil, fmt.Errorf("posts of user %d: %w", userID, err)
	}
	return posts, nil
}

// Comments retrieves the comments on a post
func (c *Client) Comments(ctx context.Context, postID int) ([]Comment, error) {
	var comments []Comment
	if err := c.getList(ctx, fmt.Sprintf("/posts/%d/comments", postID), nil, &comments); err != nil {
		return nil, fmt.Errorf("comments of post %d: %w", postID, err)
	}
	return comments, nil
}

// Todos retrieves the todos with the given completion state
func (c *Client) Todos(ctx context.Context, completed bool) ([]Todo, error) {
	var todos []Todo
	query := map[string]string{"completed": strconv.FormatBool(completed)}
	if err := c.getList(ctx, "/todos", query, &todos); err != nil {
		return nil, fmt.Errorf("todos: %w", err)
	}
	return todos, nil
}

// CreatePost submits a new post and returns the created resource as echoed by the service.
// The POST is sent once within the fetcher's timeout; it is not retried.
func (c *Client) CreatePost(ctx context.Context, post NewPost) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetcher.Timeout())
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(post).
		Post(c.URL("/posts"))

	if ferr := fetcher.Classify(resp, err); ferr != nil {
		return nil, fmt.Errorf("create post: %w", ferr)
	}

	body := resp.Bytes()
	if !json.Valid(body) {
		return nil, fmt.Errorf("create post: %w", fetcher.NewDecodeError(resp.StatusCode()))
	}
	return json.RawMessage(body), nil
}

// ValidateUserID parses console input into a user ID between 1 and 10
func ValidateUserID(input string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || id < minUserID || id > maxUserID {
		return 0, ErrInvalidUserID
	}
	return id, nil
}

func (c *Client) getOne(ctx context.Context, path string, v any) error {
	res := c.fetcher.Get(ctx, c.URL(path), nil)
	if !res.IsOk() {
		return res.Err()
	}
	if !res.Get("id").Exists() {
		return ErrNotFound
	}
	return res.Decode(v)
}

func (c *Client) getList(ctx context.Context, path string, query map[string]string, v any) error {
	res := c.fetcher.Get(ctx, c.URL(path), query)
	if !res.IsOk() {
		return res.Err()
	}
	if !res.Get("@this").IsArray() {
		return fmt.Errorf("%w: expected a list", fetcher.ErrUnexpectedShape)
	}
	return res.Decode(v)
}
