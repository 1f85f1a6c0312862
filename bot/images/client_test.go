package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractImageURL(t *testing.T) {
	url, err := extractImageURL([]byte(`{"image": "https://x/duck.jpg", "message": "ok"}`))
	require.NoError(t, err)
	assert.Equal(t, "https://x/duck.jpg", url)

	url, err = extractImageURL([]byte(`[{"id": "abc", "url": "https://x/cat.png"}]`))
	require.NoError(t, err)
	assert.Equal(t, "https://x/cat.png", url)

	_, err = extractImageURL([]byte(`{"status": "ok"}`))
	assert.Error(t, err, "no image-looking value")

	_, err = extractImageURL([]byte(`not json`))
	assert.Error(t, err)
}

func TestRandomURLPicksSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"url": "https://x/fox.gif"}`))
	}))
	defer srv.Close()

	c := &Client{
		http:    srv.Client(),
		sources: []Source{{Name: "a", URL: srv.URL}, {Name: "b", URL: srv.URL}},
		pick:    func(int) int { return 0 },
	}
	url, err := c.RandomURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://x/fox.gif", url)
}

func TestRandomURLRetriesDifferentSource(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"url": "https://x/dog.jpeg"}`))
	}))
	defer good.Close()

	picks := []int{0, 0, 1} // first source fails, then re-rolls land on the second
	c := &Client{
		http:    http.DefaultClient,
		sources: []Source{{Name: "bad", URL: bad.URL}, {Name: "good", URL: good.URL}},
		pick: func(int) int {
			p := picks[0]
			picks = picks[1:]
			return p
		},
	}
	url, err := c.RandomURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://x/dog.jpeg", url)
}

func TestRandomURLSecondFailurePropagates(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()

	calls := 0
	c := &Client{
		http:    http.DefaultClient,
		sources: []Source{{Name: "a", URL: bad.URL}, {Name: "b", URL: bad.URL}},
		pick: func(int) int {
			calls++
			return calls % 2
		},
	}
	_, err := c.RandomURL(context.Background())
	assert.Error(t, err)
}
