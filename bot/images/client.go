// Package images fetches decorative animal pictures from public APIs.
// Views attach one to every screen; the bot works fine without them.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Dardva/Bot-for-remind/core/logger"
)

// Source is one public image API.
type Source struct {
	Name string
	URL  string
}

var defaultSources = []Source{
	{Name: "cat", URL: "https://api.thecatapi.com/v1/images/search"},
	{Name: "dog", URL: "https://api.thedogapi.com/v1/images/search"},
	{Name: "fox", URL: "https://randomfox.ca/floof/"},
	{Name: "duck", URL: "https://random-d.uk/api/random"},
}

const (
	dialTimeout     = 5 * time.Second
	responseTimeout = 5 * time.Second
	clientTimeout   = 10 * time.Second
)

// Client picks a random source per call. On a failed fetch it retries once
// against a different source; a second failure propagates.
type Client struct {
	http    *http.Client
	sources []Source
	pick    func(n int) int
}

// New builds a client over the default sources.
func New() *Client {
	return &Client{
		http: &http.Client{
			Timeout: clientTimeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: dialTimeout}).DialContext,
				MaxIdleConnsPerHost:   2,
				IdleConnTimeout:       30 * time.Second,
				ResponseHeaderTimeout: responseTimeout,
			},
		},
		sources: defaultSources,
		pick:    rand.IntN,
	}
}

// RandomURL returns the URL of a fresh random picture.
func (c *Client) RandomURL(ctx context.Context) (string, error) {
	first := c.sources[c.pick(len(c.sources))]
	url, err := c.fetch(ctx, first)
	if err == nil {
		return url, nil
	}
	logger.IMG.LogAttrs(ctx, slog.LevelWarn, "source.failed",
		slog.String("source", first.Name),
		slog.String("err", err.Error()),
	)

	second := first
	for second.Name == first.Name {
		second = c.sources[c.pick(len(c.sources))]
	}
	url, err = c.fetch(ctx, second)
	if err != nil {
		return "", fmt.Errorf("images: %s after %s: %w", second.Name, first.Name, err)
	}
	return url, nil
}

func (c *Client) fetch(ctx context.Context, src Source) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status %d", src.Name, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	url, err := extractImageURL(body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", src.Name, err)
	}
	return url, nil
}

// extractImageURL scans a JSON object, or the first element of a JSON
// array, for the first string value that looks like an image URL. The
// sources all answer in one of those two shapes.
func extractImageURL(body []byte) (string, error) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		var list []map[string]any
		if err := json.Unmarshal(body, &list); err != nil || len(list) == 0 {
			return "", fmt.Errorf("unrecognised response shape")
		}
		obj = list[0]
	}
	for _, v := range obj {
		if s, ok := v.(string); ok && isImageURL(s) {
			return s, nil
		}
	}
	return "", fmt.Errorf("no image url in response")
}

func isImageURL(s string) bool {
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif"} {
		if strings.HasSuffix(s, ext) {
			return true
		}
	}
	return false
}
