package jsonplaceholder

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiexplorer/internal/fetcher"
	"apiexplorer/internal/testutil"
)

const leanne = `{
	"id": 1,
	"name": "Leanne Graham",
	"username": "Bret",
	"email": "Sincere@april.biz",
	"address": {"street": "Kulas Light", "suite": "Apt. 556", "city": "Gwenborough", "zipcode": "92998-3874"},
	"phone": "1-770-736-8031 x56442",
	"website": "hildegard.org",
	"company": {"name": "Romaguera-Crona", "catchPhrase": "Multi-layered client-server neural-net"}
}`

func newTestClient(baseURL string) *Client {
	f := fetcher.New(
		fetcher.WithTimeout(time.Second),
		fetcher.WithRetryDelay(time.Millisecond),
	)
	return NewClient(f, baseURL)
}

func TestClient_User(t *testing.T) {
	srv := testutil.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/1", r.URL.Path)
		testutil.WriteJSON(w, http.StatusOK, leanne)
	})

	user, err := newTestClient(srv.URL).User(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Leanne Graham", user.Name)
	assert.Equal(t, "Bret", user.Username)
	assert.Equal(t, "Gwenborough", user.Address.City)
	assert.Equal(t, "Romaguera-Crona", user.Company.Name)
	assert.Equal(t, "hildegard.org", user.Website)
}

func TestClient_Post_EmptyObjectIsNotFound(t *testing.T) {
	srv := testutil.NewServer(t, testutil.JSON(http.StatusOK, `{}`))

	_, err := newTestClient(srv.URL).Post(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, srv.Hits())
}

func TestClient_Post_404(t *testing.T) {
	srv := testutil.NewServer(t, testutil.JSON(http.StatusNotFound, `{}`))

	_, err := newTestClient(srv.URL).Post(context.Background(), 99999)

	var fe *fetcher.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
}

func TestClient_PostsByUser(t *testing.T) {
	srv := testutil.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("userId"))
		testutil.WriteJSON(w, http.StatusOK, `[
			{"userId":3,"id":21,"title":"asperiores ea ipsam voluptatibus","body":"..."},
			{"userId":3,"id":22,"title":"dolor sint quo a velit","body":"..."}
		]`)
	})

	posts, err := newTestClient(srv.URL).PostsByUser(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, 21, posts[0].ID)
	assert.Equal(t, 3, posts[1].UserID)
}

func TestClient_Users(t *testing.T) {
	srv := testutil.NewServer(t, testutil.JSON(http.StatusOK, "["+leanne+"]"))

	users, err := newTestClient(srv.URL).Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Leanne Graham", users[0].Name)
}

func TestClient_Comments(t *testing.T) {
	srv := testutil.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/1/comments", r.URL.Path)
		testutil.WriteJSON(w, http.StatusOK, `[{"postId":1,"id":1},{"postId":1,"id":2},{"postId":1,"id":3}]`)
	})

	comments, err := newTestClient(srv.URL).Comments(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, comments, 3)
}

func TestClient_Todos(t *testing.T) {
	for _, completed := range []bool{true, false} {
		srv := testutil.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
			want := "false"
			if completed {
				want = "true"
			}
			assert.Equal(t, want, r.URL.Query().Get("completed"))
			testutil.WriteJSON(w, http.StatusOK, `[{"userId":1,"id":4,"title":"et porro tempora","completed":`+want+`}]`)
		})

		todos, err := newTestClient(srv.URL).Todos(context.Background(), completed)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, completed, todos[0].Completed)
	}
}

func TestClient_ListUnexpectedShape(t *testing.T) {
	srv := testutil.NewServer(t, testutil.JSON(http.StatusOK, `{"not":"a list"}`))

	_, err := newTestClient(srv.URL).Users(context.Background())
	assert.ErrorIs(t, err, fetcher.ErrUnexpectedShape)
}

func TestClient_Raw(t *testing.T) {
	srv := testutil.NewServer(t, testutil.JSON(http.StatusNotFound, `{}`))

	resp, err := newTestClient(srv.URL).Raw(context.Background(), "/posts/99999", nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.Equal(t, srv.URL+"/posts/99999", resp.URL)
	assert.JSONEq(t, `{}`, string(resp.Body))
	assert.Equal(t, 1, srv.Hits(), "raw requests are never retried")
}

func TestClient_CreatePost(t *testing.T) {
	srv := testutil.NewServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		var got NewPost
		assert.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, NewPost{Title: "My Post", Body: "This is content", UserID: 1}, got)

		testutil.WriteJSON(w, http.StatusCreated, `{"title":"My Post","body":"This is content","userId":1,"id":101}`)
	})

	created, err := newTestClient(srv.URL).CreatePost(context.Background(), NewPost{
		Title:  "My Post",
		Body:   "This is content",
		UserID: 1,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"My Post","body":"This is content","userId":1,"id":101}`, string(created))
}

func TestClient_CreatePost_ServerError(t *testing.T) {
	srv := testutil.NewServer(t, testutil.JSON(http.StatusInternalServerError, `{}`))

	_, err := newTestClient(srv.URL).CreatePost(context.Background(), NewPost{Title: "x"})

	var fe *fetcher.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fetcher.KindHTTP, fe.Kind)
	assert.Equal(t, 1, srv.Hits())
}

func TestClient_SingleShotRequestsHonourTimeout(t *testing.T) {
	const timeout = 50 * time.Millisecond

	tests := []struct {
		name string
		call func(c *Client) error
	}{
		{"raw", func(c *Client) error {
			_, err := c.Raw(context.Background(), "/posts/1", nil)
			return err
		}},
		{"create post", func(c *Client) error {
			_, err := c.CreatePost(context.Background(), NewPost{Title: "My Post"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewServer(t, testutil.Slow(2*time.Second, `{}`))
			c := NewClient(fetcher.New(fetcher.WithTimeout(timeout)), srv.URL)

			start := time.Now()
			err := tt.call(c)
			elapsed := time.Since(start)

			var fe *fetcher.FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, fetcher.KindTimeout, fe.Kind)
			assert.Less(t, elapsed, time.Second)
			assert.Equal(t, 1, srv.Hits())
		})
	}
}

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{" 10 ", 10, false},
		{"5", 5, false},
		{"0", 0, true},
		{"11", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ValidateUserID(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidUserID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
