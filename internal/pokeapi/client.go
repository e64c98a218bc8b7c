package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"pokedex-insights-go/internal/logger"
	"pokedex-insights-go/internal/types"
)

const (
	DefaultBaseURL     = "https://pokeapi.co/api/v2"
	DefaultLimit       = 100
	DefaultConcurrency = 16
	DefaultTimeout     = 12 * time.Second
)

// ErrNotFound is returned when the API has no such creature.
var ErrNotFound = errors.New("pokemon not found")

type Options struct {
	BaseURL     string
	Limit       int
	Concurrency int
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      *logger.Logger
}

// Client talks to the PokéAPI. Failed requests are reported, never retried.
type Client struct {
	baseURL     string
	limit       int
	concurrency int
	http        *http.Client
	log         *logrus.Entry
}

func New(opts Options) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		limit:       opts.Limit,
		concurrency: opts.Concurrency,
		http:        opts.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.limit <= 0 {
		c.limit = DefaultLimit
	}
	if c.concurrency <= 0 {
		c.concurrency = DefaultConcurrency
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	c.log = log.Component("pokeapi")
	return c
}

// Records fetches the first batch; it lets the client act as a dashboard source.
func (c *Client) Records(ctx context.Context) ([]types.Pokemon, error) {
	return c.FetchBatch(ctx)
}

// FetchBatch lists the first page and fetches every entry's details in
// parallel. Output follows listing order. Any failed detail fetch fails
// the whole batch.
func (c *Client) FetchBatch(ctx context.Context) ([]types.Pokemon, error) {
	start := time.Now()
	refs, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	c.log.WithField("entries", len(refs)).Info("listing fetched, loading details")

	out := make([]types.Pokemon, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			var resp pokemonResponse
			if err := c.getJSON(gctx, ref.URL, &resp); err != nil {
				return fmt.Errorf("fetch %s: %w", ref.Name, err)
			}
			out[i] = resp.toRecord()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.log.WithError(err).Error("batch fetch failed")
		return nil, err
	}
	c.log.WithFields(logrus.Fields{
		"records":     len(out),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("batch fetched")
	return out, nil
}

// Fetch loads one creature by id or name.
func (c *Client) Fetch(ctx context.Context, idOrName string) (types.Pokemon, error) {
	key := strings.ToLower(strings.TrimSpace(idOrName))
	if key == "" {
		return types.Pokemon{}, fmt.Errorf("fetch: %w", ErrNotFound)
	}
	var resp pokemonResponse
	if err := c.getJSON(ctx, c.baseURL+"/pokemon/"+url.PathEscape(key), &resp); err != nil {
		return types.Pokemon{}, fmt.Errorf("fetch %s: %w", key, err)
	}
	return resp.toRecord(), nil
}

func (c *Client) list(ctx context.Context) ([]namedResource, error) {
	u := fmt.Sprintf("%s/pokemon?limit=%d", c.baseURL, c.limit)
	var resp listResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return resp.Results, nil
}

func (c *Client) getJSON(ctx context.Context, u string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	return nil
}
